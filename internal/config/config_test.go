package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wishlist/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_DSN", "host=127.0.0.1 user=postgres dbname=wishlist")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_DefaultsTokenTTLTo30Minutes(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wishlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("secret_key: from-file\napp_port: \":9090\"\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, ":9090", cfg.AppPort)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		wantErr string
	}{
		{name: "missing secret", set: map[string]any{}, wantErr: "SECRET_KEY"},
		{name: "bad ttl", set: map[string]any{"SECRET_KEY": "x", "ACCESS_TOKEN_EXPIRE_MINUTES": 0}, wantErr: "ACCESS_TOKEN_EXPIRE_MINUTES"},
		{name: "bad driver", set: map[string]any{"SECRET_KEY": "x", "DATABASE_DRIVER": "mysql"}, wantErr: "DATABASE_DRIVER"},
		{name: "empty dsn", set: map[string]any{"SECRET_KEY": "x", "DATABASE_DSN": ""}, wantErr: "DATABASE_DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			for key, value := range tt.set {
				v.Set(key, value)
			}

			_, err := config.FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
