package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config with string durations and optional booleans.
type fileConfig struct {
	Server struct {
		Port            int    `toml:"port"`
		ShutdownTimeout string `toml:"shutdown_timeout"`
	} `toml:"server"`
	Storage struct {
		Driver string `toml:"driver"`
	} `toml:"storage"`
	DynamoDB struct {
		Region          string `toml:"region"`
		Endpoint        string `toml:"endpoint"`
		AccessKeyID     string `toml:"access_key_id"`
		SecretAccessKey string `toml:"secret_access_key"`
		TablePrefix     string `toml:"table_prefix"`
	} `toml:"dynamodb"`
	Postgres struct {
		DSN            string `toml:"dsn"`
		MaxConns       int    `toml:"max_conns"`
		MigrateOnStart *bool  `toml:"migrate_on_start"`
	} `toml:"postgres"`
	Payments struct {
		MercadoPagoAccessToken string `toml:"mercadopago_access_token"`
		Mock                   *bool  `toml:"mock"`
		DefaultPayerEmail      string `toml:"default_payer_email"`
	} `toml:"payments"`
	Notifications struct {
		Region        string `toml:"region"`
		Endpoint      string `toml:"endpoint"`
		TopicARN      string `toml:"topic_arn"`
		RelayInterval string `toml:"relay_interval"`
		BatchSize     int    `toml:"batch_size"`
	} `toml:"notifications"`
	Sweeper struct {
		Schedule string `toml:"schedule"`
	} `toml:"sweeper"`
	Logging struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"logging"`
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func applyFile(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := setter{changed: changed}

	s.setInt("port", fc.Server.Port, &cfg.Server.Port)
	if err := s.setDuration("shutdown-timeout", fc.Server.ShutdownTimeout, &cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	s.setString("storage", fc.Storage.Driver, &cfg.Storage.Driver)

	s.setString("dynamodb-region", fc.DynamoDB.Region, &cfg.DynamoDB.Region)
	s.setString("dynamodb-endpoint", fc.DynamoDB.Endpoint, &cfg.DynamoDB.Endpoint)
	s.setString("dynamodb-access-key-id", fc.DynamoDB.AccessKeyID, &cfg.DynamoDB.AccessKeyID)
	s.setString("dynamodb-secret-access-key", fc.DynamoDB.SecretAccessKey, &cfg.DynamoDB.SecretAccessKey)
	s.setString("dynamodb-table-prefix", fc.DynamoDB.TablePrefix, &cfg.DynamoDB.TablePrefix)

	s.setString("postgres-dsn", fc.Postgres.DSN, &cfg.Postgres.DSN)
	s.setInt("postgres-max-conns", fc.Postgres.MaxConns, &cfg.Postgres.MaxConns)
	s.setBool("migrate", fc.Postgres.MigrateOnStart, &cfg.Postgres.MigrateOnStart)

	s.setString("mercadopago-access-token", fc.Payments.MercadoPagoAccessToken, &cfg.Payments.MercadoPagoAccessToken)
	s.setBool("payment-mock", fc.Payments.Mock, &cfg.Payments.Mock)
	s.setString("default-payer-email", fc.Payments.DefaultPayerEmail, &cfg.Payments.DefaultPayerEmail)

	s.setString("sns-region", fc.Notifications.Region, &cfg.Notifications.Region)
	s.setString("sns-endpoint", fc.Notifications.Endpoint, &cfg.Notifications.Endpoint)
	s.setString("sns-topic-arn", fc.Notifications.TopicARN, &cfg.Notifications.TopicARN)
	if err := s.setDuration("relay-interval", fc.Notifications.RelayInterval, &cfg.Notifications.RelayInterval); err != nil {
		return err
	}
	s.setInt("relay-batch", fc.Notifications.BatchSize, &cfg.Notifications.BatchSize)

	s.setString("sweep-schedule", fc.Sweeper.Schedule, &cfg.Sweeper.Schedule)

	s.setString("log-level", fc.Logging.Level, &cfg.Logging.Level)
	s.setString("log-format", fc.Logging.Format, &cfg.Logging.Format)
	return nil
}
