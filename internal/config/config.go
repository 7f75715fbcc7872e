package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
)

// Config holds all configuration for the screener
type Config struct {
	// Common
	Environment string
	LogLevel    string

	Server   ServerConfig
	Data     DataConfig
	Pipeline PipelineConfig

	// Indicator parameters; every field falls back to the variant's
	// documented default when the env var is unset
	Indicators indicator.Set
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DataConfig holds data-access collaborator configuration
type DataConfig struct {
	Provider string // "csv" or "mock"
	Dir      string // dataset root for the csv provider
}

// PipelineConfig holds scoring pipeline configuration
type PipelineConfig struct {
	MaxWorkers int
}

// Load loads configuration from the environment, reading a .env file
// first if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Data: DataConfig{
			Provider: getEnv("DATA_PROVIDER", "csv"),
			Dir:      getEnv("DATA_DIR", "datasets"),
		},
		Pipeline: PipelineConfig{
			MaxWorkers: getEnvAsInt("PIPELINE_MAX_WORKERS", 0), // 0 = GOMAXPROCS
		},
		Indicators: loadIndicators(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadIndicators() indicator.Set {
	set := indicator.DefaultSet()

	set.RSI.Enabled = getEnvAsBool("RSI_ENABLED", set.RSI.Enabled)
	set.RSI.Period = getEnvAsInt("RSI_PERIOD", set.RSI.Period)
	set.RSI.Overbought = getEnvAsFloat("RSI_OVERBOUGHT", set.RSI.Overbought)
	set.RSI.Oversold = getEnvAsFloat("RSI_OVERSOLD", set.RSI.Oversold)

	set.StochRSI.Enabled = getEnvAsBool("STOCH_RSI_ENABLED", set.StochRSI.Enabled)
	set.StochRSI.Period = getEnvAsInt("STOCH_RSI_PERIOD", set.StochRSI.Period)
	set.StochRSI.K = getEnvAsInt("STOCH_RSI_K", set.StochRSI.K)
	set.StochRSI.D = getEnvAsInt("STOCH_RSI_D", set.StochRSI.D)
	set.StochRSI.BuyLevel = getEnvAsFloat("STOCH_RSI_BUY_LEVEL", set.StochRSI.BuyLevel)
	set.StochRSI.SellLevel = getEnvAsFloat("STOCH_RSI_SELL_LEVEL", set.StochRSI.SellLevel)

	set.EMA.Enabled = getEnvAsBool("EMA_ENABLED", set.EMA.Enabled)
	set.EMA.FastPeriod = getEnvAsInt("EMA_FAST_PERIOD", set.EMA.FastPeriod)
	set.EMA.MediumPeriod = getEnvAsInt("EMA_MEDIUM_PERIOD", set.EMA.MediumPeriod)
	set.EMA.SlowPeriod = getEnvAsInt("EMA_SLOW_PERIOD", set.EMA.SlowPeriod)

	set.MACD.Enabled = getEnvAsBool("MACD_ENABLED", set.MACD.Enabled)
	set.MACD.FastPeriod = getEnvAsInt("MACD_FAST_PERIOD", set.MACD.FastPeriod)
	set.MACD.SlowPeriod = getEnvAsInt("MACD_SLOW_PERIOD", set.MACD.SlowPeriod)
	set.MACD.SignalPeriod = getEnvAsInt("MACD_SIGNAL_PERIOD", set.MACD.SignalPeriod)
	set.MACD.TrendFastPeriod = getEnvAsInt("MACD_TREND_FAST_PERIOD", set.MACD.TrendFastPeriod)
	set.MACD.TrendMediumPeriod = getEnvAsInt("MACD_TREND_MEDIUM_PERIOD", set.MACD.TrendMediumPeriod)
	set.MACD.TrendSlowPeriod = getEnvAsInt("MACD_TREND_SLOW_PERIOD", set.MACD.TrendSlowPeriod)

	set.CipherB.Enabled = getEnvAsBool("CIPHER_B_ENABLED", set.CipherB.Enabled)
	set.CipherB.ChannelLength = getEnvAsInt("CIPHER_B_CHANNEL_LENGTH", set.CipherB.ChannelLength)
	set.CipherB.AverageLength = getEnvAsInt("CIPHER_B_AVERAGE_LENGTH", set.CipherB.AverageLength)
	set.CipherB.WTSmoothing = getEnvAsInt("CIPHER_B_WT_SMOOTHING", set.CipherB.WTSmoothing)
	set.CipherB.OverBoughtLevel1 = getEnvAsFloat("CIPHER_B_OVER_BOUGHT_LEVEL_1", set.CipherB.OverBoughtLevel1)
	set.CipherB.OverBoughtLevel2 = getEnvAsFloat("CIPHER_B_OVER_BOUGHT_LEVEL_2", set.CipherB.OverBoughtLevel2)
	set.CipherB.OverSoldLevel1 = getEnvAsFloat("CIPHER_B_OVER_SOLD_LEVEL_1", set.CipherB.OverSoldLevel1)
	set.CipherB.OverSoldLevel2 = getEnvAsFloat("CIPHER_B_OVER_SOLD_LEVEL_2", set.CipherB.OverSoldLevel2)

	set.Sentiment.Enabled = getEnvAsBool("SENTIMENT_ENABLED", set.Sentiment.Enabled)
	set.Sentiment.AboveThreshold = getEnvAsFloat("SENTIMENT_ABOVE_THRESHOLD", set.Sentiment.AboveThreshold)
	set.Sentiment.BelowThreshold = getEnvAsFloat("SENTIMENT_BELOW_THRESHOLD", set.Sentiment.BelowThreshold)

	return set
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}
	if c.Data.Provider != "csv" && c.Data.Provider != "mock" {
		return fmt.Errorf("DATA_PROVIDER must be \"csv\" or \"mock\", got %q", c.Data.Provider)
	}
	if c.Data.Provider == "csv" && c.Data.Dir == "" {
		return fmt.Errorf("DATA_DIR is required for the csv provider")
	}
	// Surface bad indicator parameters at startup instead of first scan
	if _, err := c.Indicators.Build(); err != nil {
		return err
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
