package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undy45/medicine-initdb/core/config"
)

type cachedConfig struct {
	Name string `env:"CONFIG_TEST_CACHED_NAME" envDefault:"default"`
}

type requiredConfig struct {
	Value string `env:"CONFIG_TEST_REQUIRED_VALUE,required"`
}

type dotenvConfig struct {
	FromFile string `env:"CONFIG_TEST_FROM_FILE"`
	Override string `env:"CONFIG_TEST_OVERRIDE"`
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED_NAME", "first")

	var cfg1 cachedConfig
	require.NoError(t, config.Load(&cfg1))
	assert.Equal(t, "first", cfg1.Name)

	t.Setenv("CONFIG_TEST_CACHED_NAME", "second")

	var cfg2 cachedConfig
	require.NoError(t, config.Load(&cfg2))
	assert.Equal(t, "first", cfg2.Name, "second load must return cached value")
}

func TestLoad_RequiredMissing(t *testing.T) {
	t.Setenv("CONFIG_TEST_REQUIRED_VALUE", "")
	require.NoError(t, os.Unsetenv("CONFIG_TEST_REQUIRED_VALUE"))

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG_TEST_REQUIRED_VALUE")

	// failures are not cached
	t.Setenv("CONFIG_TEST_REQUIRED_VALUE", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	var cfg *cachedConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
}

func TestUseEnvFiles_DoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "CONFIG_TEST_FROM_FILE=file-value\nCONFIG_TEST_OVERRIDE=file-value\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_TEST_OVERRIDE", "process-value")
	t.Cleanup(func() { _ = os.Unsetenv("CONFIG_TEST_FROM_FILE") })

	config.UseEnvFiles(path)

	var cfg dotenvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "file-value", cfg.FromFile)
	assert.Equal(t, "process-value", cfg.Override)
}
