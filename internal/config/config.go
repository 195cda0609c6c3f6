// Package config loads the service configuration from defaults, an optional
// TOML file, the environment and command line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
)

type Config struct {
	Server        Server
	Storage       Storage
	DynamoDB      DynamoDB
	Postgres      Postgres
	Payments      Payments
	Notifications Notifications
	Sweeper       Sweeper
	Logging       Logging
}

type Server struct {
	Port            int
	ShutdownTimeout time.Duration
}

type Storage struct {
	Driver string
}

type DynamoDB struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	TablePrefix     string
}

type Postgres struct {
	DSN            string
	MaxConns       int
	MigrateOnStart bool
}

type Payments struct {
	MercadoPagoAccessToken string
	Mock                   bool
	DefaultPayerEmail      string
}

type Notifications struct {
	Region        string
	Endpoint      string
	TopicARN      string
	RelayInterval time.Duration
	BatchSize     int
}

type Sweeper struct {
	Schedule string
}

type Logging struct {
	Level  string
	Format string
}

func Default() Config {
	return Config{
		Server: Server{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: Storage{Driver: StorageMemory},
		DynamoDB: DynamoDB{
			Region:          "us-east-1",
			AccessKeyID:     "local",
			SecretAccessKey: "local",
		},
		Postgres: Postgres{
			DSN:      "postgres://localhost:5432/venue_backoffice?sslmode=disable",
			MaxConns: 10,
		},
		Notifications: Notifications{
			Region:        "us-east-1",
			RelayInterval: 5 * time.Second,
			BatchSize:     50,
		},
		Sweeper: Sweeper{Schedule: "@every 15m"},
		Logging: Logging{Level: "info", Format: "json"},
	}
}

var (
	ErrInvalidPort    = errors.New("server port must be between 1 and 65535")
	ErrInvalidStorage = errors.New("storage driver must be memory, dynamodb or postgres")
	ErrMissingDSN     = errors.New("postgres storage requires a dsn")
	ErrInvalidBatch   = errors.New("relay batch size must be positive")
	ErrInvalidLogging = errors.New("log format must be json or console")
)

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageMemory, StorageDynamoDB:
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStorage, c.Storage.Driver)
	}
	if c.Notifications.BatchSize <= 0 {
		return ErrInvalidBatch
	}
	if c.Notifications.RelayInterval <= 0 {
		c.Notifications.RelayInterval = Default().Notifications.RelayInterval
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return ErrInvalidLogging
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "*****"
	}
	c.DynamoDB.SecretAccessKey = mask(c.DynamoDB.SecretAccessKey)
	c.Payments.MercadoPagoAccessToken = mask(c.Payments.MercadoPagoAccessToken)
	c.Postgres.DSN = mask(c.Postgres.DSN)
	return c
}

// setter applies values unless the flag of the same name was set explicitly.
type setter struct {
	changed map[string]bool
}

func (s setter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s setter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s setter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s setter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s setter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, i, dst)
	return nil
}

func (s setter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on", "mock":
		*dst = true
	default:
		*dst = false
	}
}
