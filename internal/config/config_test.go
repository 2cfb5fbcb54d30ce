package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RetryDefaults(t *testing.T) {
	t.Setenv("RETRY_MAX_ATTEMPTS", "")
	t.Setenv("RETRY_BASE_DELAY_MS", "")
	t.Setenv("RETRY_MAX_DELAY_MS", "")

	cfg := Load()

	assert.Equal(t, 2, cfg.RetryMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 30*time.Second, cfg.RetryMaxDelay, "retry waits must stay capped")
}

func TestLoad_RetryEnvOverrides(t *testing.T) {
	t.Setenv("RETRY_MAX_ATTEMPTS", "4")
	t.Setenv("RETRY_BASE_DELAY_MS", "100")
	t.Setenv("RETRY_MAX_DELAY_MS", "2000")

	cfg := Load()

	assert.Equal(t, 4, cfg.RetryMaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 2*time.Second, cfg.RetryMaxDelay)
}
