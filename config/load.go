package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stock-exchange-go/infrastructure/logger"
)

const (
	defaultVWAPWindowMinutes = 15
	defaultMetricsNamespace  = "gbce"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env      string         `yaml:"env"`
	Log      logger.Config  `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Stocks   []StockConfig  `yaml:"stocks"`
}

type MetricsConfig struct {
	Addr      string `yaml:"addr"`
	Namespace string `yaml:"namespace"`
}

type ExchangeConfig struct {
	VWAPWindowMinutes int `yaml:"vwapWindowMinutes"` // VWAP 默认时间窗口（分钟）
}

// StockConfig 股票目录条目；fixedDividend 仅优先股使用，取小数（2% 写 0.02）。
type StockConfig struct {
	Symbol        string   `yaml:"symbol"`
	Type          string   `yaml:"type"`
	LastDividend  float64  `yaml:"lastDividend"`
	FixedDividend *float64 `yaml:"fixedDividend"`
	ParValue      float64  `yaml:"parValue"`
}

// Load reads YAML config from path, fills defaults and validates.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then applies GBCE_* environment overrides.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("GBCE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("GBCE_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("GBCE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, Validate(cfg)
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Exchange.VWAPWindowMinutes == 0 {
		cfg.Exchange.VWAPWindowMinutes = defaultVWAPWindowMinutes
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaultMetricsNamespace
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = logger.DefaultConfig().Level
	}
	if len(cfg.Log.Outputs) == 0 {
		cfg.Log.Outputs = logger.DefaultConfig().Outputs
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logger.DefaultConfig().Format
	}
}
