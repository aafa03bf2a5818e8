// Package sequencerepo issues sequence numbers from the sequences table.
// It runs on its own pgx pool, outside any order transaction, so a number is
// consumed even when the caller later rolls back.
package sequencerepo

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/sequence"

	"github.com/jackc/pgx/v5"
)

const nextValueSQL = `
	INSERT INTO sequences (namespace, value)
	VALUES ($1, 1)
	ON CONFLICT (namespace) DO UPDATE SET value = sequences.value + 1
	RETURNING value`

// rowQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxSequenceGenerator implements ports.SequenceGenerator with a single atomic upsert.
type PgxSequenceGenerator struct {
	db rowQuerier
}

func NewPgxSequenceGenerator(db rowQuerier) *PgxSequenceGenerator {
	return &PgxSequenceGenerator{db: db}
}

// Next increments and returns the counter of namespace. The first call returns 1.
func (g *PgxSequenceGenerator) Next(ctx context.Context, namespace sequence.Namespace) (int64, error) {
	if err := namespace.Validate(); err != nil {
		return 0, err
	}

	var value int64
	if err := g.db.QueryRow(ctx, nextValueSQL, namespace.Key()).Scan(&value); err != nil {
		return 0, fmt.Errorf("next %s sequence value: %w", namespace.String(), err)
	}
	return value, nil
}
