// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads .env files on first use and uses the caarlos0/env library
// for parsing environment variables into struct fields. Values already present
// in the process environment always win over values from .env files.
//
// Basic usage:
//
//	import "github.com/undy45/medicine-initdb/core/config"
//
//	type DatabaseConfig struct {
//		Host     string `env:"DB_HOST" envDefault:"localhost"`
//		Port     int    `env:"DB_PORT" envDefault:"27017"`
//		Username string `env:"DB_USER,required"`
//		Password string `env:"DB_PASS,required"`
//	}
//
//	func main() {
//		var db DatabaseConfig
//
//		if err := config.Load(&db); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Additional .env files
//
// By default only ./.env is read. Extra files can be registered, e.g. from a
// command line flag, before the configuration types that need them are loaded:
//
//	config.UseEnvFiles("deploy/.env", "deploy/.env.local")
//
// Missing files are ignored.
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 DatabaseConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 DatabaseConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently. Failed loads are not cached,
// so a later call can succeed once the environment is fixed.
package config
