package config

import "os"

// applyEnv reads the variables the service has always honoured (AWS_*,
// DYNAMODB_ENDPOINT, MERCADOPAGO_*, PAYMENT_GATEWAY_MOCK) plus the
// service-specific ones.
func applyEnv(cfg *Config, changed map[string]bool) error {
	s := setter{changed: changed}

	if err := s.setIntFromString("port", os.Getenv("PORT"), &cfg.Server.Port); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("SHUTDOWN_TIMEOUT"), &cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	s.setString("storage", os.Getenv("STORAGE_DRIVER"), &cfg.Storage.Driver)

	s.setString("dynamodb-region", os.Getenv("AWS_REGION"), &cfg.DynamoDB.Region)
	s.setString("dynamodb-endpoint", os.Getenv("DYNAMODB_ENDPOINT"), &cfg.DynamoDB.Endpoint)
	s.setString("dynamodb-access-key-id", os.Getenv("AWS_ACCESS_KEY_ID"), &cfg.DynamoDB.AccessKeyID)
	s.setString("dynamodb-secret-access-key", os.Getenv("AWS_SECRET_ACCESS_KEY"), &cfg.DynamoDB.SecretAccessKey)
	s.setString("dynamodb-table-prefix", os.Getenv("DYNAMODB_TABLE_PREFIX"), &cfg.DynamoDB.TablePrefix)

	s.setString("postgres-dsn", os.Getenv("DATABASE_URL"), &cfg.Postgres.DSN)
	if err := s.setIntFromString("postgres-max-conns", os.Getenv("DATABASE_MAX_CONNS"), &cfg.Postgres.MaxConns); err != nil {
		return err
	}
	s.setBoolFromString("migrate", os.Getenv("DATABASE_MIGRATE"), &cfg.Postgres.MigrateOnStart)

	s.setString("mercadopago-access-token", os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), &cfg.Payments.MercadoPagoAccessToken)
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		if v := os.Getenv(key); v != "" {
			s.setBoolFromString("payment-mock", v, &cfg.Payments.Mock)
			break
		}
	}
	s.setString("default-payer-email", os.Getenv("PAYMENT_DEFAULT_PAYER_EMAIL"), &cfg.Payments.DefaultPayerEmail)

	s.setString("sns-region", os.Getenv("AWS_REGION"), &cfg.Notifications.Region)
	s.setString("sns-endpoint", os.Getenv("SNS_ENDPOINT"), &cfg.Notifications.Endpoint)
	s.setString("sns-topic-arn", os.Getenv("SNS_TOPIC_ARN"), &cfg.Notifications.TopicARN)
	if err := s.setDuration("relay-interval", os.Getenv("OUTBOX_RELAY_INTERVAL"), &cfg.Notifications.RelayInterval); err != nil {
		return err
	}
	if err := s.setIntFromString("relay-batch", os.Getenv("OUTBOX_BATCH_SIZE"), &cfg.Notifications.BatchSize); err != nil {
		return err
	}

	s.setString("sweep-schedule", os.Getenv("QUOTATION_SWEEP_SCHEDULE"), &cfg.Sweeper.Schedule)

	s.setString("log-level", os.Getenv("LOG_LEVEL"), &cfg.Logging.Level)
	s.setString("log-format", os.Getenv("LOG_FORMAT"), &cfg.Logging.Format)
	return nil
}
