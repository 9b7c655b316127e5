package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-exchange-go/market"
)

func testRegistry(t *testing.T) *market.Registry {
	t.Helper()
	tea, err := market.NewCommonStock("TEA", 0, 100)
	require.NoError(t, err)
	gin, err := market.NewPreferredStock("GIN", 8, 0.02, 100)
	require.NoError(t, err)
	reg, err := market.NewRegistry(tea, gin)
	require.NoError(t, err)
	return reg
}

func TestLoadTrades(t *testing.T) {
	path := writeTempConfig(t, `
trades:
  - {symbol: tea, quantity: 100, side: buy, price: 110}
  - {symbol: TEA, quantity: 200, side: B, price: 105, agoSeconds: 60}
  - {symbol: GIN, quantity: 200, side: sell, price: 80, at: "2024-01-02T10:00:00Z"}
`)
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	trades, err := LoadTrades(path, testRegistry(t), now)
	require.NoError(t, err)
	require.Len(t, trades, 3)

	assert.Equal(t, "TEA", trades[0].Symbol())
	assert.Equal(t, market.Buy, trades[0].Side)
	assert.Equal(t, now, trades[0].Timestamp)
	assert.Equal(t, now.Add(-time.Minute), trades[1].Timestamp)
	assert.Equal(t, market.Sell, trades[2].Side)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), trades[2].Timestamp)
	assert.NotEqual(t, trades[0].ID, trades[1].ID)
}

func TestLoadTradesErrors(t *testing.T) {
	reg := testRegistry(t)
	now := time.Now()
	for name, body := range map[string]string{
		"unknown symbol": "trades:\n  - {symbol: XYZ, quantity: 1, side: buy, price: 1}\n",
		"bad side":       "trades:\n  - {symbol: TEA, quantity: 1, side: hold, price: 1}\n",
		"zero quantity":  "trades:\n  - {symbol: TEA, quantity: 0, side: buy, price: 1}\n",
		"bad time":       "trades:\n  - {symbol: TEA, quantity: 1, side: buy, price: 1, at: yesterday}\n",
		"bad yaml":       "trades: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTrades(writeTempConfig(t, body), reg, now)
			assert.Error(t, err)
		})
	}
}
