package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DSN", "sqlite://fyyur.db")
	t.Setenv("ADDR", ":5000")
	t.Setenv("CACHE_URL", "localhost:6379")
	t.Setenv("RABBIT_MQ_URL", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://example.com ,")
	t.Setenv("SESSION_COOKIE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite://fyyur.db", cfg.DatabaseDSN)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.CacheURL)
	assert.Empty(t, cfg.MQURL)
	assert.Equal(t, "fyyur_session", cfg.SessionCookie)
	assert.Equal(t, []string{"http://localhost:3000", "http://example.com"}, cfg.CORSOrigins)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
