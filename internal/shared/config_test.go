package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "STORAGE_BACKEND", "REDIS_DB", "PROBE_WORKERS", "PROBE_TTL_SECONDS", "REQUEST_TIMEOUT_SECONDS", "DEFAULT_CITY"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "prod", c.AppEnv)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, BackendRedis, c.StorageBackend)
	assert.Equal(t, 0, c.RedisDB)
	assert.Equal(t, 4, c.ProbeWorkers)
	assert.Equal(t, time.Hour, c.ProbeTTL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Empty(t, c.DefaultCity)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "MySQL")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PROBE_WORKERS", "not-a-number")
	t.Setenv("PROBE_TTL_SECONDS", "60")
	t.Setenv("DEFAULT_CITY", "البصرة")

	c := Load()
	assert.Equal(t, BackendMySQL, c.StorageBackend)
	assert.Equal(t, 3, c.RedisDB)
	assert.Equal(t, 4, c.ProbeWorkers, "bad numbers fall back to the default")
	assert.Equal(t, time.Minute, c.ProbeTTL)
	assert.Equal(t, "البصرة", c.DefaultCity)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	assert.Equal(t, BackendMemory, Load().StorageBackend)
}
