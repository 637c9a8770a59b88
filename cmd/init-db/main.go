// Command init-db prepares the medicine API database at deployment time.
//
// It waits for MongoDB to accept connections, then creates and seeds the target
// collection and the "status" collection unless both already exist.
//
// Exit codes: 0 on success, on a no-op run and after best-effort seeding errors
// (unless --strict); 1 on configuration errors, failed inspection, a retry
// policy that gave up or a termination signal; 2 on bad flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/undy45/medicine-initdb/app/initdb"
	"github.com/undy45/medicine-initdb/core/config"
	"github.com/undy45/medicine-initdb/core/logger"
	"github.com/undy45/medicine-initdb/integration/database/mongo"
)

const serviceName = "medicine-init-db"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := pflag.NewFlagSet("init-db", pflag.ContinueOnError)
	fs.SetOutput(stdout)
	envFiles := fs.StringSlice("env-file", nil, "additional dotenv file to load (repeatable)")
	strict := fs.Bool("strict", false, "exit with code 1 when seeding fails (overrides INIT_DB_STRICT)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	config.UseEnvFiles(*envFiles...)

	cfg, err := loadConfig()
	if err != nil {
		logger.New(logger.WithOutput(stdout)).Error("Invalid configuration",
			logger.Component("init-db"),
			logger.Error(err),
		)
		return 1
	}
	if fs.Changed("strict") {
		cfg.Strict = *strict
	}

	runID := uuid.NewString()
	log := cfg.Logger(stdout, serviceName, logger.RunID(runID), logger.Version(version))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bootstrap(ctx, cfg, runID, log)
}

func loadConfig() (initdb.Config, error) {
	var cfg initdb.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func bootstrap(ctx context.Context, cfg initdb.Config, runID string, log *slog.Logger) int {
	log.InfoContext(ctx, "Starting database initialization",
		logger.Event("startup"),
		logger.Group("target",
			logger.Host(cfg.Mongo.Addr()),
			logger.Database(cfg.Database),
			logger.Collection(cfg.Collection),
		),
		logger.RetryIn(cfg.Mongo.RetryPolicy().Interval),
	)

	client, err := mongo.ConnectWithRetry(ctx, cfg.Mongo, log)
	if err != nil {
		log.ErrorContext(ctx, "Initialization aborted", logger.Error(err))
		return 1
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn("Failed to disconnect from MongoDB", logger.Error(err))
		}
	}()

	if err := mongo.Healthcheck(client)(ctx); err != nil {
		log.ErrorContext(ctx, "Initialization aborted", logger.Error(err))
		return 1
	}

	store := initdb.NewMongoStore(client, cfg.Mongo.OperationTimeout())
	b, err := initdb.New(store, cfg.Database, cfg.Collection,
		initdb.WithLogger(log),
		initdb.WithRunID(runID),
	)
	if err != nil {
		log.ErrorContext(ctx, "Initialization aborted", logger.Error(err))
		return 1
	}

	res, err := b.Run(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Initialization aborted", logger.Error(err))
		return 1
	}

	return exitCode(ctx, res, cfg.Strict, log)
}

// exitCode maps a finished run to the process exit code. A run interrupted by
// a termination signal always fails, whatever the seeding outcome.
func exitCode(ctx context.Context, res initdb.Result, strict bool, log *slog.Logger) int {
	if err := ctx.Err(); err != nil {
		log.Error("Initialization interrupted", logger.Error(err), logger.Errors(res.Errors()...), logger.Result("failure"))
		return 1
	}

	err := res.Err()
	if err == nil {
		return 0
	}

	if strict {
		log.Error("Seeding finished with errors", logger.Error(err), logger.Result("failure"))
		return 1
	}
	log.Warn("Seeding finished with errors, continuing", logger.Error(err), logger.Result("partial"))
	return 0
}
