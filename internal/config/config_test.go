package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("JWT_TTL_HOURS", "8")
	t.Setenv("RONDA_TOLERANCIA_MIN", "15")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 8, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 15, cfg.Ronda.ToleranciaMin)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123")
		cfg := Load()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		cfg := Load()
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad whatsapp url", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123")
		t.Setenv("WHATSAPP_API_URL", "not a url")
		cfg := Load()
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123")
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		cfg := Load()
		assert.Error(t, cfg.Validate())
		assert.Equal(t, "UTC", cfg.Location().String())
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
