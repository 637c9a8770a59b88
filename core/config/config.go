package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("config: destination must be a non-nil pointer")

var (
	envFilesMu sync.Mutex
	envFiles   = []string{".env"}
	loaded     = map[string]bool{}

	cache sync.Map // reflect.Type -> any (value copy of the loaded config)
)

// UseEnvFiles registers additional dotenv files. They are read by the next
// Load call that parses an uncached type.
func UseEnvFiles(paths ...string) {
	envFilesMu.Lock()
	defer envFilesMu.Unlock()
	for _, p := range paths {
		if p != "" {
			envFiles = append(envFiles, p)
		}
	}
}

func loadDotenv() {
	envFilesMu.Lock()
	defer envFilesMu.Unlock()

	for _, f := range envFiles {
		if loaded[f] {
			continue
		}
		loaded[f] = true
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// godotenv.Load never overrides variables already set.
		_ = godotenv.Load(f)
	}
}

// Load parses environment variables into cfg. The result is cached per type,
// so subsequent calls with the same type return the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	key := reflect.TypeOf(cfg).Elem()
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	loadDotenv()

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*cfg = actual.(T)
	return nil
}
