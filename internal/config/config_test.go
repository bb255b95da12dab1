package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 15
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
  connection_name: "test-connection"
auth:
  api_keys:
    - key-one
    - key-two
  webhook_secret: hook-secret
stacks:
  api_url: "https://api.testnet.hiro.so"
  contract: "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.username-registry"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
				assert.Equal(t, "hook-secret", cfg.Auth.WebhookSecret)
				assert.Equal(t, "https://api.testnet.hiro.so", cfg.Stacks.APIURL)
				assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.username-registry", cfg.Stacks.Contract)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
stacks:
  contract: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				// Check defaults
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "USERNAME_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, "https://api.mainnet.hiro.so", cfg.Stacks.APIURL)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  user: testuser
  dbname: testdb
stacks:
  contract: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry"
`,
			expectError: true,
		},
		{
			name: "missing contract",
			configFile: `
database:
  host: localhost
  user: testuser
  dbname: testdb
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadPollerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *IndexerPollerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
stacks:
  contract: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry"
poller:
  interval: "10s"
  page_size: 25
  http_timeout: "15s"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IndexerPollerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "10s", cfg.Poller.Interval.String())
				assert.Equal(t, 25, cfg.Poller.PageSize)
				assert.Equal(t, "15s", cfg.Poller.HTTPTimeout.String())
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  dbname: testdb
stacks:
  contract: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IndexerPollerConfig) {
				assert.Equal(t, "30s", cfg.Poller.Interval.String())
				assert.Equal(t, 50, cfg.Poller.PageSize)
				assert.Equal(t, "30s", cfg.Poller.HTTPTimeout.String())
				assert.Equal(t, "https://api.mainnet.hiro.so", cfg.Stacks.APIURL)
				assert.Equal(t, 10, cfg.RateLimiter.MaxWorkers)
				assert.Equal(t, 1000, cfg.RateLimiter.MaxQueueSize)
				require.Contains(t, cfg.RateLimiter.Providers, "hiro")
				assert.Equal(t, 5, cfg.RateLimiter.Providers["hiro"].RequestsPerSecond)
				assert.Equal(t, 10, cfg.RateLimiter.Providers["hiro"].Burst)
				assert.Equal(t, "1m0s", cfg.RateLimiter.Providers["hiro"].MaxQueueTime.String())
			},
		},
		{
			name: "missing contract",
			configFile: `
database:
  host: localhost
  user: testuser
  dbname: testdb
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadPollerConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "indexer",
		Password: "secret",
		DBName:   "usernames",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=indexer password=secret dbname=usernames sslmode=require",
		cfg.DSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	// No config file; everything comes from the environment
	t.Setenv("STX_INDEXER_DATABASE_HOST", "env-host")
	t.Setenv("STX_INDEXER_DATABASE_DBNAME", "env-db")
	t.Setenv("STX_INDEXER_DATABASE_USER", "env-user")
	t.Setenv("STX_INDEXER_STACKS_CONTRACT", "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry")
	t.Setenv("STX_INDEXER_POLLER_PAGE_SIZE", "75")

	cfg, err := LoadPollerConfig(filepath.Join(tmpDir, "nonexistent.yaml"), tmpDir)
	// An explicitly named but missing config file is an error in viper; fall
	// back to discovery mode by passing no file at all
	if err != nil {
		cfg, err = LoadPollerConfig("", tmpDir)
	}
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, 75, cfg.Poller.PageSize)
}
