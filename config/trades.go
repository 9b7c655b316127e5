package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"stock-exchange-go/market"
)

// TradeEntry 成交回放文件中的一行。at 与 agoSeconds 均缺省时使用 now。
type TradeEntry struct {
	Symbol     string  `yaml:"symbol"`
	Quantity   int64   `yaml:"quantity"`
	Side       string  `yaml:"side"`
	Price      float64 `yaml:"price"`
	At         string  `yaml:"at"`
	AgoSeconds int     `yaml:"agoSeconds"`
}

type tradeFile struct {
	Trades []TradeEntry `yaml:"trades"`
}

// LoadTrades reads a YAML trade list and resolves each symbol against stocks.
func LoadTrades(path string, stocks *market.Registry, now time.Time) ([]market.Trade, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	var f tradeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse trades yaml: %w", err)
	}
	out := make([]market.Trade, 0, len(f.Trades))
	for i, e := range f.Trades {
		tr, err := e.toTrade(stocks, now)
		if err != nil {
			return nil, fmt.Errorf("trades[%d]: %w", i, err)
		}
		out = append(out, tr)
	}
	return out, nil
}

func (e TradeEntry) toTrade(stocks *market.Registry, now time.Time) (market.Trade, error) {
	st, ok := stocks.Get(e.Symbol)
	if !ok {
		return market.Trade{}, fmt.Errorf("unknown symbol %q", e.Symbol)
	}
	side, err := market.ParseSide(e.Side)
	if err != nil {
		return market.Trade{}, err
	}
	ts := now
	switch {
	case e.At != "":
		ts, err = time.Parse(time.RFC3339Nano, e.At)
		if err != nil {
			return market.Trade{}, fmt.Errorf("parse at %q: %w", e.At, err)
		}
	case e.AgoSeconds > 0:
		ts = now.Add(-time.Duration(e.AgoSeconds) * time.Second)
	}
	return market.NewTradeAt(st, e.Quantity, side, e.Price, ts)
}
