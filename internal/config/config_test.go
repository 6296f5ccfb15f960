package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromViper_Defaults(t *testing.T) {
	cfg, err := LoadFromViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "race_results", cfg.ElasticsearchIndex)
	assert.Equal(t, 2009, cfg.Data.MinYear)
	assert.Equal(t, 2025, cfg.Data.MaxYear)
	assert.Equal(t, 20, cfg.Analytics.StartersPerRace)
	assert.Empty(t, cfg.Analytics.DNFPositionText)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 0, cfg.RateLimit.Requests)
}

func TestLoadFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MIN_YEAR", "2015")
	t.Setenv("STARTERS_PER_RACE", "22")
	t.Setenv("DNF_POSITION_TEXT", " DNF ")

	cfg, err := LoadFromViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 2015, cfg.Data.MinYear)
	assert.Equal(t, 22, cfg.Analytics.StartersPerRace)
	assert.Equal(t, "DNF", cfg.Analytics.DNFPositionText)
}

func TestLoadFromViper_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/f1\nmax_year: 2020\nlog_format: json\n"), 0o644))

	v := NewViper()
	v.Set("CONFIG_FILE", path)

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/f1", cfg.Data.Dir)
	assert.Equal(t, 2020, cfg.Data.MaxYear)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromViper_MissingConfigFile(t *testing.T) {
	v := NewViper()
	v.Set("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadFromViper(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"inverted years", func(c *Config) { c.Data.MinYear = 2030 }, true},
		{"zero starters", func(c *Config) { c.Analytics.StartersPerRace = 0 }, true},
		{"negative rate limit", func(c *Config) { c.RateLimit.Requests = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromViper(NewViper())
			require.NoError(t, err)
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestDataConfigPath(t *testing.T) {
	d := DataConfig{Dir: "data"}
	assert.Equal(t, filepath.Join("data", "races.csv"), d.Path("races.csv"))
	assert.Equal(t, "/abs/races.csv", d.Path("/abs/races.csv"))
	assert.Equal(t, "", d.Path(""))
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "f1",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=f1 sslmode=disable", cfg.PostgresDSN())
}
