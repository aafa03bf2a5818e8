package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/pkg/errs"
)

// Stage is a step of the fulfillment pipeline with its own movement collection.
type Stage int

const (
	StageUnknown Stage = iota
	StageShipments
	StageDeliveries
	StageInvoices
)

// StageConfig describes how a fulfillment action records a movement.
type StageConfig struct {
	Stage     Stage
	Action    Action
	Namespace sequence.Namespace
	// ModeField and RefField name the request fields carrying mode and reference.
	ModeField string
	RefField  string
}

func getStageConfigs() map[Stage]StageConfig {
	return map[Stage]StageConfig{
		StageShipments: {
			Stage:     StageShipments,
			Action:    ActionShip,
			Namespace: sequence.NamespaceShipment,
			ModeField: "shipping_mode",
			RefField:  "tracking_reference",
		},
		StageDeliveries: {
			Stage:     StageDeliveries,
			Action:    ActionDeliver,
			Namespace: sequence.NamespaceDelivery,
			ModeField: "delivery_mode",
			RefField:  "delivery_reference",
		},
		StageInvoices: {
			Stage:     StageInvoices,
			Action:    ActionInvoice,
			Namespace: sequence.NamespaceInvoice,
			ModeField: "invoice_terms",
			RefField:  "invoice_reference",
		},
	}
}

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageShipments:  "shipments",
		StageDeliveries: "deliveries",
		StageInvoices:   "invoices",
	}
}

// ParseStage resolves a stage key such as "shipments".
func ParseStage(key string) (Stage, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for stage, str := range getStageStrings() {
		if str == normalized {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a known stage", key))
}

func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// Config returns the stage configuration.
func (s Stage) Config() (StageConfig, error) {
	cfg, ok := getStageConfigs()[s]
	if !ok {
		return StageConfig{}, s.Validate()
	}
	return cfg, nil
}

// ConfigForAction resolves a fulfillment action to its stage configuration.
func ConfigForAction(action Action) (StageConfig, error) {
	for _, cfg := range getStageConfigs() {
		if cfg.Action == action {
			return cfg, nil
		}
	}
	return StageConfig{}, errs.NewValueIsInvalidErrorWithCause(
		"action",
		fmt.Errorf("%s does not record a movement", action.String()),
	)
}
