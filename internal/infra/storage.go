package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/repository"
)

const disconnectTimeout = 5 * time.Second

// CloseFunc releases storage connections
type CloseFunc func()

// Storage connects to configured storage and builds customer repository on top of it
func Storage(ctx context.Context, cfg config.StorageCfg) (repository.CustomerRepository, CloseFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch cfg.Kind {
	case config.StorageSqlite:
		db, err := Sqlite(ctx, cfg.SqliteCfg)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := db.Close(); err != nil {
				logrus.WithError(err).Error("failed to close sqlite database")
			}
		}
		return repository.NewSqliteCustomerRepository(db), closeFn, nil
	case config.StoragePostgres:
		pool, err := Postgresql(ctx, cfg.PostgresCfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresCustomerRepository(pool), pool.Close, nil
	case config.StorageMongo:
		client, err := Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
			defer cancel()

			if err := client.Disconnect(ctx); err != nil {
				logrus.WithError(err).Error("failed to disconnect from mongo")
			}
		}
		return repository.NewMongoCustomerRepository(client, cfg.MongoCfg.Database), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage %q", cfg.Kind)
	}
}
