package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-exchange-go/exchange"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestReplayAndReport(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gbce.yaml", `
env: test
stocks:
  - {symbol: TEA, type: common, lastDividend: 0, parValue: 100}
  - {symbol: POP, type: common, lastDividend: 8, parValue: 100}
  - {symbol: GIN, type: preferred, lastDividend: 8, fixedDividend: 0.02, parValue: 100}
`)
	tradesPath := writeFile(t, dir, "trades.yaml", `
trades:
  - {symbol: TEA, quantity: 100, side: buy, price: 110}
  - {symbol: TEA, quantity: 200, side: buy, price: 105}
  - {symbol: GIN, quantity: 200, side: sell, price: 80}
`)

	flags := catalogFlags{configPath: cfgPath}
	cfg, reg, err := flags.load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Exchange.VWAPWindowMinutes)

	ex := exchange.New(exchange.Config{})
	require.NoError(t, replay(ex, tradesPath, reg))
	require.Equal(t, 3, ex.Len())

	var buf bytes.Buffer
	writeReport(&buf, ex, reg, 15*time.Minute)
	out := buf.String()
	assert.Contains(t, out, "TEA          106.67")
	assert.Contains(t, out, "GIN           80.00")
	assert.Contains(t, out, "POP             n/a")
	assert.Contains(t, out, "All Share Index: 92.38")
}

func TestReportEmptyExchange(t *testing.T) {
	dir := t.TempDir()
	flags := catalogFlags{configPath: writeFile(t, dir, "gbce.yaml", "env: test\nstocks:\n  - {symbol: TEA, type: common, parValue: 100}\n")}
	_, reg, err := flags.load()
	require.NoError(t, err)

	ex := exchange.New(exchange.Config{})
	require.NoError(t, replay(ex, "", reg))

	var buf bytes.Buffer
	writeReport(&buf, ex, reg, time.Minute)
	assert.Contains(t, buf.String(), "All Share Index: n/a")
}

func TestCatalogStockLookup(t *testing.T) {
	dir := t.TempDir()
	flags := catalogFlags{configPath: writeFile(t, dir, "gbce.yaml", "env: test\nstocks:\n  - {symbol: ALE, type: common, lastDividend: 23, parValue: 60}\n")}

	st, err := flags.stock("ale")
	require.NoError(t, err)
	pe, err := st.PERatio(100)
	require.NoError(t, err)
	assert.InDelta(t, 4.35, pe, 0.005)

	_, err = flags.stock("XYZ")
	assert.Error(t, err)
}
