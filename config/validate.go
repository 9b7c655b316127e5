package config

import (
	"errors"
	"fmt"
	"strings"

	"stock-exchange-go/market"
)

// Validate ensures required fields are present and the catalog is consistent.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Exchange.VWAPWindowMinutes <= 0 {
		return errors.New("exchange.vwapWindowMinutes must be > 0")
	}
	if len(cfg.Stocks) == 0 {
		return errors.New("stocks config is required")
	}
	seen := make(map[string]struct{}, len(cfg.Stocks))
	for i, sc := range cfg.Stocks {
		sym := market.NormalizeSymbol(sc.Symbol)
		if sym == "" {
			return fmt.Errorf("stocks[%d] symbol is required", i)
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("stock %s listed twice", sym)
		}
		seen[sym] = struct{}{}
		if sc.ParValue <= 0 {
			return fmt.Errorf("stock %s parValue must be > 0", sym)
		}
		if sc.LastDividend < 0 {
			return fmt.Errorf("stock %s lastDividend must be >= 0", sym)
		}
		switch strings.ToLower(sc.Type) {
		case market.KindCommon:
		case market.KindPreferred:
			if sc.FixedDividend == nil {
				return fmt.Errorf("stock %s fixedDividend is required for preferred stock", sym)
			}
			if *sc.FixedDividend < 0 {
				return fmt.Errorf("stock %s fixedDividend must be >= 0", sym)
			}
		default:
			return fmt.Errorf("stock %s unknown type %q", sym, sc.Type)
		}
	}
	return nil
}

// BuildStocks 将目录配置映射为 market.Stock。
func BuildStocks(cfg AppConfig) ([]*market.Stock, error) {
	out := make([]*market.Stock, 0, len(cfg.Stocks))
	for _, sc := range cfg.Stocks {
		var (
			st  *market.Stock
			err error
		)
		switch strings.ToLower(sc.Type) {
		case market.KindPreferred:
			var rate float64
			if sc.FixedDividend != nil {
				rate = *sc.FixedDividend
			}
			st, err = market.NewPreferredStock(sc.Symbol, sc.LastDividend, rate, sc.ParValue)
		default:
			st, err = market.NewCommonStock(sc.Symbol, sc.LastDividend, sc.ParValue)
		}
		if err != nil {
			return nil, fmt.Errorf("build stock %s: %w", sc.Symbol, err)
		}
		out = append(out, st)
	}
	return out, nil
}

// BuildRegistry is BuildStocks followed by market.NewRegistry.
func BuildRegistry(cfg AppConfig) (*market.Registry, error) {
	stocks, err := BuildStocks(cfg)
	if err != nil {
		return nil, err
	}
	return market.NewRegistry(stocks...)
}
