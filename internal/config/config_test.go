package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DRAFT_BACKEND", "DRAFT_DEBOUNCE", "KAFKA_BROKERS", "SUBMIT_ROLLBACK"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, BackendMemory, c.DraftBackend)
	assert.Equal(t, 500*time.Millisecond, c.DraftDebounce)
	assert.Empty(t, c.KafkaBrokers)
	assert.False(t, c.SubmitRollback)
	require.NoError(t, c.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DRAFT_BACKEND", "Postgres")
	t.Setenv("DRAFT_TTL", "48h")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SUBMIT_ROLLBACK", "true")
	t.Setenv("SESSION_CACHE_SIZE", "nope")

	c := Load()
	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, BackendPostgres, c.DraftBackend)
	assert.Equal(t, 48*time.Hour, c.DraftTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaBrokers)
	assert.True(t, c.SubmitRollback)
	assert.Equal(t, 1024, c.SessionCacheSize)
}

func TestValidate(t *testing.T) {
	c := AppConfig{DraftBackend: BackendPostgres, SessionCacheSize: 1}
	assert.Error(t, c.Validate())

	c.DatabaseURL = "postgres://localhost/db"
	assert.NoError(t, c.Validate())

	c.DraftBackend = "sqlite"
	assert.Error(t, c.Validate())
}
