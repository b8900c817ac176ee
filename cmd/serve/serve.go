package serve

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

const configFlag = "config"

var serveFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Optional config file (yaml, json, toml or env); environment variables take precedence",
	},
}

var (
	consumeEvents bool
	skipMigrate   bool
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the product and review HTTP API",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(cmd, serveFlags)
	cmd.Flags().BoolVar(&consumeEvents, "consume-events", false, "Also consume catalog events from RabbitMQ and write them to the log")
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on startup")
	return cmd
}

func serveCommand(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveFlags[configFlag].GetString())
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stdout)

	db, err := database.Open(cfg.Database())
	if err != nil {
		return err
	}
	if !skipMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// Leave the interface nil when events are disabled.
	var publisher services.EventPublisher
	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			return err
		}
		publisher = mq
		if consumeEvents {
			if err := mq.ConsumeEvents(rabbitmq.LogEvents(logger)); err != nil {
				return err
			}
		}
	} else {
		logger.Info("RABBITMQ_URL not set, catalog events disabled")
	}

	app := server.New(server.Deps{
		DB:           db,
		Logger:       logger,
		Publisher:    publisher,
		AuthRequired: cfg.AuthRequired,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		RequestLog:   true,
	})

	operations := map[string]gfshutdown.Operation{
		"fiber": func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
		"database": func(ctx context.Context) error {
			return database.Close(db)
		},
	}
	if mq != nil {
		operations["rabbitmq"] = func(ctx context.Context) error {
			return mq.Close()
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)
	logger.Info("starting server", "addr", cfg.AppPort, "auth_required", cfg.AuthRequired)
	listen := func() error { return app.Listen(cfg.AppPort) }
	if err := run(listen, wait, operations, cfg.ShutdownTimeout, logger); err != nil {
		return fmt.Errorf("serve on %s: %w", cfg.AppPort, err)
	}
	return nil
}

// run serves until wait reports the exit code of a signal-triggered
// shutdown. When listen fails first, the shutdown operations are run here
// and the listen error is returned.
func run(listen func() error, wait <-chan int, operations map[string]gfshutdown.Operation, timeout time.Duration, logger *slog.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- listen()
	}()

	select {
	case exitCode := <-wait:
		return exited(exitCode, logger)
	case err := <-listenErr:
		if err == nil {
			// Listen returns nil once a signal-triggered shutdown has begun.
			return exited(<-wait, logger)
		}
		logger.Error("server stopped", "err", err)
		shutdown(operations, timeout, logger)
		return err
	}
}

func exited(exitCode int, logger *slog.Logger) error {
	logger.Info("server exited", "code", exitCode)
	if exitCode != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", exitCode)
	}
	return nil
}

// shutdown runs every operation in name order within timeout.
func shutdown(operations map[string]gfshutdown.Operation, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, name := range slices.Sorted(maps.Keys(operations)) {
		if err := operations[name](ctx); err != nil {
			logger.Error("shutdown operation failed", "operation", name, "err", err)
		}
	}
}
