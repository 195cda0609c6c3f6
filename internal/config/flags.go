package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// DefaultFile is read when no --config is given and it exists.
const DefaultFile = "venue_backoffice.toml"

// BindFlags registers every option on fs, writing flag values into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "HTTP listen port")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", cfg.Server.ShutdownTimeout, "graceful shutdown timeout")
	fs.StringVar(&cfg.Storage.Driver, "storage", cfg.Storage.Driver, "storage driver: memory, dynamodb or postgres")

	fs.StringVar(&cfg.DynamoDB.Region, "dynamodb-region", cfg.DynamoDB.Region, "DynamoDB region")
	fs.StringVar(&cfg.DynamoDB.Endpoint, "dynamodb-endpoint", cfg.DynamoDB.Endpoint, "DynamoDB endpoint override (local DynamoDB)")
	fs.StringVar(&cfg.DynamoDB.AccessKeyID, "dynamodb-access-key-id", cfg.DynamoDB.AccessKeyID, "static access key id")
	fs.StringVar(&cfg.DynamoDB.SecretAccessKey, "dynamodb-secret-access-key", cfg.DynamoDB.SecretAccessKey, "static secret access key")
	fs.StringVar(&cfg.DynamoDB.TablePrefix, "dynamodb-table-prefix", cfg.DynamoDB.TablePrefix, "prefix added to every table name")

	fs.StringVar(&cfg.Postgres.DSN, "postgres-dsn", cfg.Postgres.DSN, "Postgres connection string")
	fs.IntVar(&cfg.Postgres.MaxConns, "postgres-max-conns", cfg.Postgres.MaxConns, "Postgres pool size")
	fs.BoolVar(&cfg.Postgres.MigrateOnStart, "migrate", cfg.Postgres.MigrateOnStart, "apply Postgres migrations on start")

	fs.StringVar(&cfg.Payments.MercadoPagoAccessToken, "mercadopago-access-token", cfg.Payments.MercadoPagoAccessToken, "Mercado Pago access token")
	fs.BoolVar(&cfg.Payments.Mock, "payment-mock", cfg.Payments.Mock, "approve every payment without calling Mercado Pago")
	fs.StringVar(&cfg.Payments.DefaultPayerEmail, "default-payer-email", cfg.Payments.DefaultPayerEmail, "payer email used when the request has none")

	fs.StringVar(&cfg.Notifications.Region, "sns-region", cfg.Notifications.Region, "SNS region")
	fs.StringVar(&cfg.Notifications.Endpoint, "sns-endpoint", cfg.Notifications.Endpoint, "SNS endpoint override")
	fs.StringVar(&cfg.Notifications.TopicARN, "sns-topic-arn", cfg.Notifications.TopicARN, "SNS topic for outbox messages; empty logs them instead")
	fs.DurationVar(&cfg.Notifications.RelayInterval, "relay-interval", cfg.Notifications.RelayInterval, "outbox poll interval")
	fs.IntVar(&cfg.Notifications.BatchSize, "relay-batch", cfg.Notifications.BatchSize, "outbox messages per poll")

	fs.StringVar(&cfg.Sweeper.Schedule, "sweep-schedule", cfg.Sweeper.Schedule, "cron schedule of the quotation expiry sweep")

	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "debug, info, warn or error")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "json or console")
}

// Load applies the file at path (or DefaultFile when present) and the
// environment on top of cfg, leaving values of flags set on fs untouched,
// then validates the result.
func Load(cfg *Config, path string, fs *pflag.FlagSet) error {
	changed := map[string]bool{}
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	}

	if path == "" && fileExists(DefaultFile) {
		path = DefaultFile
	}
	if path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := applyFile(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := applyEnv(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
