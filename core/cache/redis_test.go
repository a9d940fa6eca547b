package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache(t *testing.T) {
	t.Run("Invalid URL", func(t *testing.T) {
		rc, err := NewRedisCache("not a url")
		assert.ErrorContains(t, err, "invalid redis url")
		assert.Nil(t, rc)
	})

	t.Run("Unreachable server", func(t *testing.T) {
		rc, err := NewRedisCache("redis://127.0.0.1:1/0")
		assert.ErrorContains(t, err, "failed to ping redis")
		assert.Nil(t, rc)
	})
}

func TestConfig(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{URL: "redis://localhost:6379"}.Enabled())
	assert.Equal(t, 24*time.Hour, Config{}.TTL())
	assert.Equal(t, time.Minute, Config{TTLSeconds: 60}.TTL())
}
