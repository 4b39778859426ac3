package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "./karpeslop.db", c.Database.DSN)
	assert.Equal(t, "./reports", c.Reporting.OutDir)
	assert.Equal(t, ":8787", c.API.Addr)
	assert.Equal(t, "json", c.Logging.Format)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "karpeslop.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  dsn: /tmp/alt.db
analysis:
  sources: ["./app", "./lib"]
  quiet: true
logging:
  level: debug
`), 0o644))

	c, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/alt.db", c.Database.DSN)
	assert.Equal(t, []string{"./app", "./lib"}, c.Analysis.Sources)
	assert.True(t, c.Analysis.Quiet)
	assert.Equal(t, "debug", c.Logging.Level)
	// untouched fields keep their defaults
	assert.Equal(t, ":8787", c.API.Addr)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("KARPESLOP_DB_DSN", "/tmp/env.db")
	t.Setenv("KARPESLOP_LOG_LEVEL", "warn")

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", c.Database.DSN)
	assert.Equal(t, "warn", c.Logging.Level)
}
