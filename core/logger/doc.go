// Package logger provides structured logging utilities built on Go's standard slog package.
// It offers a small logger factory with environment presets and a set of pre-built
// attributes for common logging scenarios.
//
// # Basic Usage
//
//	import "github.com/undy45/medicine-initdb/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("init-db"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("init-db"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(logger.RunID(runID)),
//		logger.WithOutput(os.Stderr),
//	)
//
// Options are applied in order, so a WithLevel placed after a preset overrides
// the preset level.
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, so they can be passed
// unconditionally:
//
//	log.Warn("Cannot connect to MongoDB",
//		logger.Error(err),
//		logger.RetryCount(attempt),
//		logger.RetryIn(interval),
//	)
//
//	log.Info("Collection seeded",
//		logger.Database("ee-medicine"),
//		logger.Collection("status"),
//		logger.Count("inserted", 4),
//		logger.Elapsed(start),
//	)
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("Test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
