// Package config предоставляет загрузку конфигурации приложения из переменных окружения
// и необязательного YAML файла.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config содержит все параметры конфигурации приложения.
// Значения загружаются из переменных окружения с fallback на значения по умолчанию.
type Config struct {
	ElasticsearchURL   string // URL для подключения к Elasticsearch/OpenSearch
	ElasticsearchIndex string // Индекс для результатов гонок
	PostgresHost       string // Хост PostgreSQL
	PostgresPort       string // Порт PostgreSQL
	PostgresUser       string // Пользователь PostgreSQL
	PostgresPassword   string // Пароль PostgreSQL
	PostgresDB         string // Имя базы данных PostgreSQL
	AppPort            string // Порт для HTTP сервера

	Data      DataConfig
	Analytics AnalyticsConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig

	ImagesDir string // Каталог для логотипов команд и фото пилотов
}

// DataConfig описывает исходные CSV файлы и диапазон лет.
type DataConfig struct {
	Dir          string
	ResultsFile  string
	RacesFile    string
	CircuitsFile string
	DriversFile  string // пустое значение отключает join с метаданными пилотов
	SampledFile  string
	MinYear      int
	MaxYear      int
}

// AnalyticsConfig содержит эвристики расчёта процента сходов.
type AnalyticsConfig struct {
	StartersPerRace int    // предполагаемое число стартующих в гонке
	DNFPositionText string // если задано, сход засчитывается только при positionText == значению
}

// LoggingConfig настраивает zap логгер.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output string // stdout, stderr или путь к файлу
}

// RateLimitConfig ограничивает частоту запросов к API. Requests == 0 отключает лимит.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Path возвращает полный путь к файлу данных относительно Data.Dir.
func (d DataConfig) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

var defaults = map[string]any{
	"ELASTICSEARCH_URL":   "http://localhost:9200",
	"ELASTICSEARCH_INDEX": "race_results",
	"POSTGRES_HOST":       "localhost",
	"POSTGRES_PORT":       "5432",
	"POSTGRES_USER":       "analytical_user",
	"POSTGRES_PASSWORD":   "analytical_pass",
	"POSTGRES_DB":         "analytical_db",
	"APP_PORT":            "8080",
	"DATA_DIR":            "data",
	"RESULTS_FILE":        "races-race-results.csv",
	"RACES_FILE":          "races.csv",
	"CIRCUITS_FILE":       "circuits.csv",
	"DRIVERS_FILE":        "drivers.csv",
	"SAMPLED_FILE":        "sampled.csv",
	"MIN_YEAR":            2009,
	"MAX_YEAR":            2025,
	"STARTERS_PER_RACE":   20,
	"DNF_POSITION_TEXT":   "",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "text",
	"LOG_OUTPUT":          "stdout",
	"RATE_LIMIT_REQUESTS": 0,
	"RATE_LIMIT_WINDOW":   "1m",
	"IMAGES_DIR":          "static/images",
}

// Load загружает конфигурацию из переменных окружения.
// Если переменная не установлена, используется значение по умолчанию.
// При заданной CONFIG_FILE значения сначала читаются из YAML файла.
func Load() (*Config, error) {
	return LoadFromViper(NewViper())
}

// NewViper создает экземпляр viper со значениями по умолчанию и чтением окружения.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// LoadFromViper собирает Config из уже настроенного viper.
// Удобно в тестах, где значения задаются через v.Set.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		ElasticsearchURL:   v.GetString("ELASTICSEARCH_URL"),
		ElasticsearchIndex: v.GetString("ELASTICSEARCH_INDEX"),
		PostgresHost:       v.GetString("POSTGRES_HOST"),
		PostgresPort:       v.GetString("POSTGRES_PORT"),
		PostgresUser:       v.GetString("POSTGRES_USER"),
		PostgresPassword:   v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:         v.GetString("POSTGRES_DB"),
		AppPort:            v.GetString("APP_PORT"),
		Data: DataConfig{
			Dir:          v.GetString("DATA_DIR"),
			ResultsFile:  v.GetString("RESULTS_FILE"),
			RacesFile:    v.GetString("RACES_FILE"),
			CircuitsFile: v.GetString("CIRCUITS_FILE"),
			DriversFile:  v.GetString("DRIVERS_FILE"),
			SampledFile:  v.GetString("SAMPLED_FILE"),
			MinYear:      v.GetInt("MIN_YEAR"),
			MaxYear:      v.GetInt("MAX_YEAR"),
		},
		Analytics: AnalyticsConfig{
			StartersPerRace: v.GetInt("STARTERS_PER_RACE"),
			DNFPositionText: strings.TrimSpace(v.GetString("DNF_POSITION_TEXT")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		ImagesDir: v.GetString("IMAGES_DIR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	if c.Data.MinYear > c.Data.MaxYear {
		return fmt.Errorf("MIN_YEAR (%d) must not exceed MAX_YEAR (%d)", c.Data.MinYear, c.Data.MaxYear)
	}
	if c.Analytics.StartersPerRace <= 0 {
		return fmt.Errorf("STARTERS_PER_RACE must be positive, got %d", c.Analytics.StartersPerRace)
	}
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative")
	}
	return nil
}

// PostgresDSN формирует DSN для lib/pq.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresDB,
	)
}
