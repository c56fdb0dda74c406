package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Supported storages
const (
	StorageSqlite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type SqliteCfg struct {
	Path string `env:"CRM_SQLITE_PATH" envDefault:"crm.db"`
}

type PostgresCfg struct {
	User        string `env:"POSTGRES_USER" envDefault:"crm"`
	Password    string `env:"POSTGRES_PASSWORD" envDefault:"crm"`
	Database    string `env:"POSTGRES_DB" envDefault:"crm"`
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"10"`
}

// DSN builds pgx connection string
func (c PostgresCfg) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s sslmode=%s pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SslMode, c.PoolMaxConn)
}

type MongoCfg struct {
	URI         string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB" envDefault:"crm"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type StorageCfg struct {
	Kind           string        `env:"CRM_STORAGE" envDefault:"sqlite"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	SqliteCfg      SqliteCfg
	PostgresCfg    PostgresCfg
	MongoCfg       MongoCfg
}

type Config struct {
	StorageCfg StorageCfg
	HTTPCfg    HTTPCfg
	LogCfg     LogCfg
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.StorageCfg.Kind {
	case StorageSqlite, StoragePostgres, StorageMongo:
	default:
		return cfg, fmt.Errorf("unsupported storage %q, expected one of %s, %s, %s",
			cfg.StorageCfg.Kind, StorageSqlite, StoragePostgres, StorageMongo)
	}

	return cfg, nil
}
