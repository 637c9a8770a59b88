package initdb

import (
	"io"
	"log/slog"
	"strings"

	"github.com/undy45/medicine-initdb/core/logger"
	"github.com/undy45/medicine-initdb/integration/database/mongo"
)

// Config is the complete job configuration read from the environment.
type Config struct {
	Mongo mongo.Config

	Database   string `env:"MEDICINE_API_MONGODB_DATABASE,required,notEmpty"`
	Collection string `env:"MEDICINE_API_MONGODB_COLLECTION,required,notEmpty"`

	// Strict turns best-effort seeding failures into a non-zero exit code.
	Strict bool `env:"INIT_DB_STRICT" envDefault:"false"`

	AppEnv   string `env:"APP_ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL"`
	// LogFormat overrides the environment's output format: json or text.
	LogFormat string `env:"LOG_FORMAT"`
}

// Validate checks cross-field constraints the env tags cannot express.
func (c Config) Validate() error {
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	if c.Database == "" {
		return ErrMissingDatabase
	}
	if c.Collection == "" {
		return ErrMissingCollection
	}
	if c.Collection == StatusCollection {
		return ErrCollectionConflict
	}
	return nil
}

// Logger builds the job logger for the configured environment writing to w.
func (c Config) Logger(w io.Writer, service string, attrs ...slog.Attr) *slog.Logger {
	opts := []logger.Option{logger.WithProduction(service)}
	if strings.EqualFold(c.AppEnv, "development") {
		opts = []logger.Option{logger.WithDevelopment(service)}
	}
	if c.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(c.LogLevel, slog.LevelInfo)))
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	}
	opts = append(opts, logger.WithOutput(w), logger.WithAttr(attrs...))
	return logger.New(opts...)
}
