package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger         `mapstructure:"logger"`
	DB           Database       `mapstructure:"database"`
	API          API            `mapstructure:"api"`
	Simulation   Simulation     `mapstructure:"simulation"`
	YahooFinance YahooFinance   `mapstructure:"yahoo_finance"`
	Cache        Cache          `mapstructure:"cache"`
	Scheduler    Scheduler      `mapstructure:"scheduler"`
	Telegram     TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Simulation holds the default execution parameters applied when a
// backtest request does not override them.
type Simulation struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	CommissionRate float64 `mapstructure:"commission_rate"`
	SlippageRate   float64 `mapstructure:"slippage_rate"`
	RiskFreeRate   float64 `mapstructure:"risk_free_rate"`
	MaxConcurrency int     `mapstructure:"max_concurrency"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Scheduler re-runs the configured watchlist on a cron schedule.
type Scheduler struct {
	Enabled         bool             `mapstructure:"enabled"`
	CronExpression  string           `mapstructure:"cron_expression"`
	TimeoutDuration time.Duration    `mapstructure:"timeout_duration"`
	Watchlist       []WatchlistEntry `mapstructure:"watchlist"`
}

type WatchlistEntry struct {
	Symbol   string `mapstructure:"symbol"`
	Strategy string `mapstructure:"strategy"`
	Range    string `mapstructure:"range"`
}

type TelegramConfig struct {
	Enabled                   bool   `mapstructure:"enabled"`
	BotToken                  string `mapstructure:"bot_token"`
	ChatID                    int64  `mapstructure:"chat_id"`
	MaxGlobalRequestPerSecond int    `mapstructure:"max_global_request_per_second"`
}

func Load() (*Config, error) {
	// .env is optional, env vars win either way
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("simulation.initial_capital", 10000)
	viper.SetDefault("simulation.commission_rate", 0.001)
	viper.SetDefault("simulation.slippage_rate", 0.0005)
	viper.SetDefault("simulation.risk_free_rate", 0.02)
	viper.SetDefault("simulation.max_concurrency", 4)
	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", "30s")
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("cache.default_expiration", "15m")
	viper.SetDefault("cache.cleanup_interval", "30m")
	viper.SetDefault("scheduler.cron_expression", "0 18 * * 1-5")
	viper.SetDefault("scheduler.timeout_duration", "5m")
}
