// Package mongo provides MongoDB client initialization with connection retry
// and health checking for deployment-time jobs.
//
// This package wraps the official MongoDB Go driver (v2). A connection attempt
// creates the client and pings the primary, so a returned client is known to be
// usable. ConnectWithRetry repeats the attempt at a constant interval, which
// covers the common case of a job starting before the database pod is ready.
//
// Basic usage:
//
//	import (
//		"context"
//		"log"
//		"log/slog"
//
//		"github.com/undy45/medicine-initdb/core/config"
//		"github.com/undy45/medicine-initdb/integration/database/mongo"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		var cfg mongo.Config
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal("Failed to parse config:", err)
//		}
//
//		client, err := mongo.ConnectWithRetry(ctx, cfg, slog.Default())
//		if err != nil {
//			log.Fatal("Failed to connect to MongoDB:", err)
//		}
//		defer client.Disconnect(ctx)
//	}
//
// # Configuration
//
//	MEDICINE_API_MONGODB_HOST             (required)
//	MEDICINE_API_MONGODB_PORT             (required)
//	MEDICINE_API_MONGODB_USERNAME         (required, may be empty for no auth)
//	MEDICINE_API_MONGODB_PASSWORD         (required)
//	MEDICINE_API_MONGODB_TIMEOUT_SECONDS  (default: 10)
//	RETRY_CONNECTION_SECONDS              (default: 5)
//	RETRY_CONNECTION_MAX_ATTEMPTS         (default: 0, unbounded)
//
// Second values are parsed leniently (see Seconds); anything that does not
// yield a positive number falls back to the default.
//
// # Retry
//
// The delay between attempts is constant. With RETRY_CONNECTION_MAX_ATTEMPTS=0
// the loop only stops on success or when the context is canceled, so the caller
// should derive the context from signal.NotifyContext to stay killable.
//
// # Error Handling
//
//	ErrFailedToConnectToMongo - retry gave up (attempts exhausted or context done)
//	ErrHealthcheckFailed      - health check ping failed
//	ErrMissingHost, ErrInvalidPort - Config.Validate failures
package mongo
