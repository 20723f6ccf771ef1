package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTickers is the NIFTY universe the model was trained on. Served as-is
// by the stocks endpoint when the config does not override it.
var DefaultTickers = []string{
	"ADANIENT", "ASIANPAINT", "AXISBANK", "BAJAJ-AUTO", "BAJAJFINSV",
	"BAJFINANCE", "BPCL", "BRITANNIA", "CIPLA", "COALINDIA",
	"DIVISLAB", "EICHERMOT", "GRASIM", "HCLTECH", "HDFCBANK",
	"HDFCLIFE", "HEROMOTOCO", "HINDALCO", "HINDUNILVR", "ICICIBANK",
	"INDUSINDBK", "INFY", "ITC", "JSWSTEEL", "KOTAKBANK",
	"LT", "M&M", "MARUTI", "NTPC", "ONGC",
	"POWERGRID", "RELIANCE", "SBILIFE", "SBIN", "SUNPHARMA",
	"TATACONSUM", "TATAMOTORS", "TCS", "TECHM", "ULTRACEMCO",
	"UPL", "WIPRO",
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Model struct {
		Dir            string `yaml:"dir"`
		SequenceLength int    `yaml:"sequence_length"`
	} `yaml:"model"`
	Data struct {
		Backend string `yaml:"type"` // csv or clickhouse
		CSVPath string `yaml:"csv_path"`
		Table   string `yaml:"table"`
	} `yaml:"data"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Universe struct {
		Tickers []string `yaml:"tickers"`
	} `yaml:"universe"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MODEL_DIR"); v != "" {
		c.Model.Dir = v
	}
	if v := os.Getenv("DATA_BACKEND"); v != "" {
		c.Data.Backend = v
	}
	if v := os.Getenv("STOCK_DATA_CSV"); v != "" {
		c.Data.CSVPath = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		c.Universe.Tickers = strings.Split(v, ",")
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Model.SequenceLength == 0 {
		c.Model.SequenceLength = 10
	}
	if c.Data.Backend == "" {
		c.Data.Backend = "csv"
	}
	if len(c.Universe.Tickers) == 0 {
		c.Universe.Tickers = DefaultTickers
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Model.Dir == "" {
		return fmt.Errorf("model.dir is required")
	}
	if c.Model.SequenceLength <= 0 {
		return fmt.Errorf("model.sequence_length must be positive")
	}
	if c.Data.Backend != "csv" && c.Data.Backend != "clickhouse" {
		return fmt.Errorf("data.type must be 'csv' or 'clickhouse', got '%s'", c.Data.Backend)
	}
	if c.Data.Backend == "csv" && c.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path is required for csv backend")
	}
	if c.Data.Backend == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for clickhouse backend")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	return nil
}
