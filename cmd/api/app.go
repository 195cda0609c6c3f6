package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"venue_backoffice/internal/adapter/http/handlers"
	"venue_backoffice/internal/adapter/http/routes"
	"venue_backoffice/internal/adapter/persistence"
	"venue_backoffice/internal/config"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/infrastructure/database"
	"venue_backoffice/internal/infrastructure/metrics"
	"venue_backoffice/internal/infrastructure/notify"
	"venue_backoffice/internal/infrastructure/payments"
	"venue_backoffice/internal/usecase"
	"venue_backoffice/internal/usecase/interfaces"
	"venue_backoffice/internal/worker"
)

// app holds the wired service: storage, use cases and the collaborators
// the HTTP API and the workers share.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	backend  *persistence.Backend
	registry *prometheus.Registry

	leases         *usecase.LeaseUseCase
	invoices       *usecase.InvoiceUseCase
	invoicePayment *usecase.InvoicePaymentUseCase
	quotations     *usecase.QuotationUseCase
	deposits       *usecase.DepositUseCase

	publisher     interfaces.IPublisher
	outboxMetrics *metrics.OutboxMetrics
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	logger.Info("starting", zap.Any("config", cfg.Redacted()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	transitionMetrics, err := metrics.NewTransitionMetrics(registry)
	if err != nil {
		return nil, err
	}
	outboxMetrics, err := metrics.NewOutboxMetrics(registry)
	if err != nil {
		return nil, err
	}

	backend, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments, logger)
	if err != nil {
		logger.Warn("mercado pago gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}

	publisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		backend.Close()
		return nil, err
	}

	opts := []lifecycle.Option{lifecycle.WithObserver(transitionMetrics)}
	invoices := usecase.NewInvoiceUseCase(backend.Invoices, backend.Audit, logger.Named("usecase.invoice"), opts...)
	return &app{
		cfg:            cfg,
		logger:         logger,
		backend:        backend,
		registry:       registry,
		leases:         usecase.NewLeaseUseCase(backend.Leases, backend.Metrics, backend.Audit, logger.Named("usecase.lease"), opts...),
		invoices:       invoices,
		invoicePayment: usecase.NewInvoicePaymentUseCase(invoices, gateway, cfg.Payments.DefaultPayerEmail, logger.Named("usecase.payment")),
		quotations:     usecase.NewQuotationUseCase(backend.Quotations, backend.Audit, logger.Named("usecase.quotation"), opts...),
		deposits:       usecase.NewDepositUseCase(backend.Deposits, backend.Audit, logger.Named("usecase.deposit"), opts...),
		publisher:      publisher,
		outboxMetrics:  outboxMetrics,
	}, nil
}

// newPublisher publishes to SNS when a topic is configured and to the log
// otherwise.
func newPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger) (interfaces.IPublisher, error) {
	n := cfg.Notifications
	if n.TopicARN == "" {
		logger.Warn("no SNS topic configured; outbox messages are only logged")
		return notify.NewLogPublisher(logger), nil
	}
	awsCfg, err := database.LoadAWSConfig(ctx, n.Region, cfg.DynamoDB.AccessKeyID, cfg.DynamoDB.SecretAccessKey)
	if err != nil {
		return nil, fmt.Errorf("sns client: %w", err)
	}
	return notify.NewSNSPublisher(notify.NewSNSClient(awsCfg, n.Endpoint), n.TopicARN, logger), nil
}

func (a *app) Router() *gin.Engine {
	return routes.NewRouter(routes.Handlers{
		Lease:          handlers.NewLeaseHandler(a.leases, a.logger),
		Invoice:        handlers.NewInvoiceHandler(a.invoices, a.logger),
		InvoicePayment: handlers.NewInvoicePaymentHandler(a.invoicePayment, a.cfg.Payments.Mock, a.logger),
		Quotation:      handlers.NewQuotationHandler(a.quotations, a.logger),
		Deposit:        handlers.NewDepositHandler(a.deposits, a.logger),
	}, a.registry, a.logger)
}

func (a *app) Workers() []runner {
	relay := worker.NewOutboxRelay(a.backend.Outbox, a.publisher, a.outboxMetrics, worker.RelayConfig{
		Interval:  a.cfg.Notifications.RelayInterval,
		BatchSize: a.cfg.Notifications.BatchSize,
	}, a.logger)
	sweeper := worker.NewQuotationSweeper(a.quotations, a.cfg.Sweeper.Schedule, a.logger)
	return []runner{
		{name: "outbox relay", run: relay.Run},
		{name: "quotation sweeper", run: sweeper.Run},
	}
}

func (a *app) Close() {
	a.backend.Close()
}

type runner struct {
	name string
	run  func(context.Context) error
}

// runAll runs every runner until ctx is cancelled or one of them fails,
// in which case the others are stopped too.
func runAll(ctx context.Context, logger *zap.Logger, runners []runner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(runners))
	for _, r := range runners {
		go func(r runner) {
			err := r.run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("component stopped", zap.String("component", r.name), zap.Error(err))
				err = fmt.Errorf("%s: %w", r.name, err)
			} else {
				err = nil
			}
			cancel()
			errCh <- err
		}(r)
	}

	var first error
	for range runners {
		if err := <-errCh; err != nil && first == nil {
			first = err
		}
	}
	return first
}
