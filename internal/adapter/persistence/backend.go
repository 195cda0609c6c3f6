// Package persistence selects the storage driver the service runs on.
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"venue_backoffice/internal/adapter/persistence/memory"
	"venue_backoffice/internal/adapter/persistence/postgres"
	"venue_backoffice/internal/adapter/persistence/repository"
	"venue_backoffice/internal/config"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/infrastructure/database"
	"venue_backoffice/internal/usecase/interfaces"
)

// Backend is every repository the use cases and workers need, all backed
// by the same driver.
type Backend struct {
	Driver     string
	Leases     interfaces.IRecordRepository[entities.Lease]
	Invoices   interfaces.IRecordRepository[entities.Invoice]
	Quotations interfaces.IRecordRepository[entities.Quotation]
	Deposits   interfaces.IRecordRepository[entities.Deposit]
	Audit      interfaces.IAuditRepository
	Outbox     interfaces.IOutboxRepository
	Metrics    interfaces.IUtilityMetricRepository

	close func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects the configured driver. Postgres migrations run when
// cfg.Postgres.MigrateOnStart is set.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return NewMemory(), nil

	case config.StorageDynamoDB:
		client, err := database.NewDynamoDBClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, fmt.Errorf("dynamodb client: %w", err)
		}
		tables := PrefixedTables(cfg.DynamoDB.TablePrefix)
		ledger := repository.NewLedgerDynamoRepository(client, tables)
		logger.Info("using dynamodb storage",
			zap.String("region", cfg.DynamoDB.Region),
			zap.String("endpoint", cfg.DynamoDB.Endpoint),
			zap.String("table_prefix", cfg.DynamoDB.TablePrefix))
		return &Backend{
			Driver:     config.StorageDynamoDB,
			Leases:     repository.NewRecordDynamoRepository[entities.Lease](client, tables.Leases, ledger),
			Invoices:   repository.NewRecordDynamoRepository[entities.Invoice](client, tables.Invoices, ledger),
			Quotations: repository.NewRecordDynamoRepository[entities.Quotation](client, tables.Quotations, ledger),
			Deposits:   repository.NewRecordDynamoRepository[entities.Deposit](client, tables.Deposits, ledger),
			Audit:      ledger,
			Outbox:     ledger,
			Metrics:    ledger,
		}, nil

	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		if cfg.Postgres.MigrateOnStart {
			if err := store.Migrate(); err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("postgres migrations applied")
		}
		logger.Info("using postgres storage", zap.Int("max_conns", cfg.Postgres.MaxConns))
		return &Backend{
			Driver:     config.StoragePostgres,
			Leases:     postgres.NewRecords[entities.Lease](store),
			Invoices:   postgres.NewRecords[entities.Invoice](store),
			Quotations: postgres.NewRecords[entities.Quotation](store),
			Deposits:   postgres.NewRecords[entities.Deposit](store),
			Audit:      store,
			Outbox:     store,
			Metrics:    store,
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidStorage, cfg.Storage.Driver)
}

// NewMemory returns a Backend on a fresh in-process database.
func NewMemory() *Backend {
	db := memory.NewDatabase()
	return &Backend{
		Driver:     config.StorageMemory,
		Leases:     memory.NewRecords[entities.Lease](db),
		Invoices:   memory.NewRecords[entities.Invoice](db),
		Quotations: memory.NewRecords[entities.Quotation](db),
		Deposits:   memory.NewRecords[entities.Deposit](db),
		Audit:      db,
		Outbox:     db,
		Metrics:    db,
	}
}

// PrefixedTables returns the default DynamoDB table names with prefix.
func PrefixedTables(prefix string) repository.Tables {
	d := repository.DefaultTables
	return repository.Tables{
		Leases:     prefix + d.Leases,
		Invoices:   prefix + d.Invoices,
		Quotations: prefix + d.Quotations,
		Deposits:   prefix + d.Deposits,
		Audit:      prefix + d.Audit,
		Outbox:     prefix + d.Outbox,
		Metrics:    prefix + d.Metrics,
	}
}
