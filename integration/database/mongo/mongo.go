package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/undy45/medicine-initdb/core/logger"
)

const appName = "medicine-init-db"

// Connect makes a single connection attempt and verifies it with a ping to the
// primary. The ping is bounded by cfg.OperationTimeout. On failure the client
// is disconnected before returning.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	timeout := cfg.OperationTimeout()

	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelDisconnect()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// ConnectWithRetry repeats Connect at the configured constant interval until it
// succeeds. With RetryAttempts == 0 it only returns early when ctx is canceled.
func ConnectWithRetry(ctx context.Context, cfg Config, log *slog.Logger) (*mongo.Client, error) {
	if log == nil {
		log = slog.Default()
	}

	log.InfoContext(ctx, "Connecting to MongoDB",
		logger.Host(cfg.Addr()),
		logger.Key("uri", cfg.RedactedURI()),
	)

	start := time.Now()
	client, attempts, err := Retry(ctx, cfg.RetryPolicy(), log, func(ctx context.Context) (*mongo.Client, error) {
		return Connect(ctx, cfg)
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	log.InfoContext(ctx, "Connected to MongoDB",
		logger.Host(cfg.Addr()),
		logger.Count("attempts", attempts),
		logger.Elapsed(start),
	)
	return client, nil
}

// Healthcheck returns a function that pings the primary.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
