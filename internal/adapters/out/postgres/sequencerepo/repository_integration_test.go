package sequencerepo_test

import (
	"context"
	"sync"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/sequencerepo"
	"fulfillment/internal/core/domain/model/sequence"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type SequenceGeneratorIntegrationTestSuite struct {
	suite.Suite
	pg        *pgtest.Database
	pool      *pgxpool.Pool
	generator *sequencerepo.PgxSequenceGenerator
}

func (suite *SequenceGeneratorIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg

	pool, err := pgxpool.New(ctx, pg.DSN)
	suite.Require().NoError(err)
	suite.pool = pool
	suite.generator = sequencerepo.NewPgxSequenceGenerator(pool)
}

func (suite *SequenceGeneratorIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *SequenceGeneratorIntegrationTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *SequenceGeneratorIntegrationTestSuite) TestNext_StartsAtOneAndIncrements() {
	ctx := context.Background()

	first, err := suite.generator.Next(ctx, sequence.NamespaceShipment)
	suite.Require().NoError(err)
	second, err := suite.generator.Next(ctx, sequence.NamespaceShipment)
	suite.Require().NoError(err)

	suite.Equal(int64(1), first)
	suite.Equal(int64(2), second)
}

func (suite *SequenceGeneratorIntegrationTestSuite) TestNext_NamespacesAreIndependent() {
	ctx := context.Background()

	_, err := suite.generator.Next(ctx, sequence.NamespaceShipment)
	suite.Require().NoError(err)
	_, err = suite.generator.Next(ctx, sequence.NamespaceShipment)
	suite.Require().NoError(err)
	invoice, err := suite.generator.Next(ctx, sequence.NamespaceInvoice)
	suite.Require().NoError(err)

	suite.Equal(int64(1), invoice)
}

func (suite *SequenceGeneratorIntegrationTestSuite) TestNext_UnknownNamespace_Fails() {
	_, err := suite.generator.Next(context.Background(), sequence.NamespaceUnknown)

	suite.Require().Error(err)
}

func (suite *SequenceGeneratorIntegrationTestSuite) TestNext_ConcurrentCallersNeverShareAValue() {
	ctx := context.Background()
	const callers = 50

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values = make(map[int64]int)
		errs   = make([]error, 0)
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := suite.generator.Next(ctx, sequence.NamespaceDelivery)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			values[v]++
		}()
	}
	wg.Wait()

	suite.Require().Empty(errs)
	suite.Len(values, callers)
	for v := int64(1); v <= callers; v++ {
		suite.Equal(1, values[v], "value %d issued %d times", v, values[v])
	}
}

func TestSequenceGeneratorIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceGeneratorIntegrationTestSuite))
}
