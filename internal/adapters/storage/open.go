package storage

import (
	"context"
	"fmt"

	"shelter-dashboard/internal/adapters/storage/memory"
	mg "shelter-dashboard/internal/adapters/storage/mongo"
	pg "shelter-dashboard/internal/adapters/storage/postgres"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/logger"
)

// Store es el repositorio abierto más su cierre.
type Store struct {
	Records animals.Repository
	Close   func(ctx context.Context) error
}

// Open abre el backend configurado. La conexión se comparte durante toda la vida del proceso.
func Open(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	noop := func(context.Context) error { return nil }

	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mg.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.Info("store opened", map[string]any{"driver": cfg.Driver, "database": cfg.Database, "collection": cfg.Collection})
		return &Store{
			Records: mg.NewRecordsRepo(client, cfg.Database, cfg.Collection),
			Close:   client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres open: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db, cfg.Collection); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		repo, err := pg.NewRecordsRepo(db, cfg.Collection)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("store opened", map[string]any{"driver": cfg.Driver, "table": cfg.Collection})
		return &Store{
			Records: repo,
			Close:   func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMemory, "":
		log.Info("store opened", map[string]any{"driver": config.DriverMemory})
		return &Store{Records: memory.NewRecordRepo(), Close: noop}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
