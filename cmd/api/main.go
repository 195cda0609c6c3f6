package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "venue_backoffice/docs"
	"venue_backoffice/internal/adapter/http/routes"
	"venue_backoffice/internal/adapter/persistence"
	"venue_backoffice/internal/config"
	"venue_backoffice/internal/infrastructure/logging"
)

// @title           Venue Back Office API
// @version         1.0
// @description     Lease, invoice, quotation and deposit lifecycles for venue rentals.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey ActorGroup
// @in header
// @name X-Actor-Group
// @description administrator, manager or employee; X-Actor-ID identifies the user.

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	var (
		cfgPath     string
		withWorkers bool
	)

	load := func(cmd *cobra.Command) (*zap.Logger, error) {
		if err := config.Load(&cfg, cfgPath, cmd.Flags()); err != nil {
			return nil, err
		}
		return logging.New(cfg.Logging)
	}

	serve := func(cmd *cobra.Command, _ []string) error {
		logger, err := load(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		server := routes.NewServer(app.Router(), cfg.Server.Port, cfg.Server.ShutdownTimeout, logger)
		runners := []runner{{name: "http", run: server.Run}}
		if withWorkers {
			runners = append(runners, app.Workers()...)
		}
		return runAll(ctx, logger, runners)
	}

	root := &cobra.Command{
		Use:          "venue-backoffice",
		Short:        "Back office for venue leases, invoices, quotations and deposits",
		SilenceUsage: true,
		RunE:         serve,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file (default "+config.DefaultFile+" when present)")
	config.BindFlags(root.PersistentFlags(), &cfg)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  serve,
	}
	serveCmd.Flags().BoolVar(&withWorkers, "workers", true, "also run the outbox relay and the quotation sweeper")
	root.Flags().BoolVar(&withWorkers, "workers", true, "also run the outbox relay and the quotation sweeper")

	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the outbox relay and the quotation expiry sweeper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()
			return runAll(ctx, logger, app.Workers())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cfg.Storage.Driver != config.StoragePostgres {
				return fmt.Errorf("migrate requires the %s storage driver, got %q", config.StoragePostgres, cfg.Storage.Driver)
			}
			cfg.Postgres.MigrateOnStart = true
			backend, err := persistence.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			backend.Close()
			return nil
		},
	}

	root.AddCommand(serveCmd, workerCmd, migrateCmd)
	return root
}
