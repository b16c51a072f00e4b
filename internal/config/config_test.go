package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_DB", "legacy")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 90*time.Second, cfg.OTP.TTL)
	assert.Equal(t, 10*time.Minute, cfg.OTP.ResetTokenTTL)
	assert.False(t, cfg.OTP.RequireResetToken)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "legacy", cfg.Mongo.Database)
	assert.Equal(t, "mongo", cfg.Mongo.Driver)
	assert.Equal(t, []string{"https://uspatentq.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.SMTP.Configured())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
app:
  env: development
  port: "8088"
mongo:
  driver: memory
jwt:
  secret: from-file
  ttl: 30m
otp:
  require_reset_token: true
smtp:
  server: smtp.example.com:587
  user: bot
  password: pw
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Mongo.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.True(t, cfg.OTP.RequireResetToken)
	assert.True(t, cfg.SMTP.Configured())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{
			Mongo:  MongoConfig{Driver: "mongo", URI: "mongodb://x"},
			JWT:    JWTConfig{Secret: "k", TTL: time.Hour},
			OTP:    OTPConfig{TTL: time.Minute},
			Upload: UploadConfig{MaxBytes: 1},
		}
	}

	c := base()
	require.NoError(t, c.Validate())

	c = base()
	c.Mongo.Driver = "postgres"
	assert.Error(t, c.Validate())

	c = base()
	c.OTP.TTL = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Mongo.Driver = "memory"
	c.Mongo.URI = ""
	assert.NoError(t, c.Validate())
}
