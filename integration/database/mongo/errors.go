package mongo

import "errors"

// Domain-specific MongoDB errors for consistent error handling across the application.
// Use errors.Is() to check error types.
var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongodb")
	ErrHealthcheckFailed      = errors.New("mongodb healthcheck failed")
	ErrMissingHost            = errors.New("mongodb host is required")
	ErrInvalidPort            = errors.New("mongodb port must be a number between 1 and 65535")
)
