package main

import (
	"flag"
	"fmt"

	"stock-exchange-go/config"
	"stock-exchange-go/market"
)

// catalogFlags 各子命令共用的 -config 参数。
type catalogFlags struct {
	configPath string
}

func (c *catalogFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "configs/gbce.yaml", "exchange config (stock catalog) path")
}

func (c *catalogFlags) load() (config.AppConfig, *market.Registry, error) {
	cfg, err := config.LoadWithEnvOverrides(c.configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	reg, err := config.BuildRegistry(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, reg, nil
}

func (c *catalogFlags) stock(symbol string) (*market.Stock, error) {
	_, reg, err := c.load()
	if err != nil {
		return nil, err
	}
	st, ok := reg.Get(symbol)
	if !ok {
		return nil, fmt.Errorf("unknown symbol %q (known: %v)", symbol, reg.Symbols())
	}
	return st, nil
}
