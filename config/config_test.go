package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	BindStoreFlags(flags)
	BindOutputFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t), "", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultSize, cfg.Size)
	assert.Equal(t, DefaultStages, cfg.Stages)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, 0, cfg.PoolSize)
	assert.Equal(t, "none", cfg.Store)
}

func TestLoadWorkersFromEnv(t *testing.T) {
	t.Setenv("QSORT_NWORKERS", "6")
	t.Setenv("QSORT_POOL_SIZE", "3")

	cfg, err := Load(newFlags(t), "", "")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, 3, cfg.PoolSize)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("QSORT_SIZE", "500")

	cfg, err := Load(newFlags(t, "--size", "1000", "--stages", "2", "--nworkers", "12"), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Size)
	assert.Equal(t, 2, cfg.Stages)
	assert.Equal(t, 12, cfg.Workers)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qsort.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 2048\nstore: bbolt\nstore-path: /tmp/runs.db\n"), 0644))

	cfg, err := Load(newFlags(t), "", path)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Size)
	assert.Equal(t, "bbolt", cfg.Store)
	assert.Equal(t, "/tmp/runs.db", cfg.StorePath)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QSORT_STAGES=4\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("QSORT_STAGES") })

	cfg, err := Load(newFlags(t), path, "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Stages)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(newFlags(t), filepath.Join(t.TempDir(), "missing.env"), "")
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Size: 10, Stages: 1, Store: "none"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative stages", func(c *Config) { c.Stages = -1 }},
		{"negative pool", func(c *Config) { c.PoolSize = -2 }},
		{"unknown store", func(c *Config) { c.Store = "sqlite" }},
		{"store without path", func(c *Config) { c.Store = "pebble" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}
