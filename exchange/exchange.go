package exchange

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"stock-exchange-go/market"
)

// Recorder 接收交易所事件，由 metrics.Monitor 实现。
type Recorder interface {
	TradeRecorded(t market.Trade)
	TradeRejected()
	VWAPComputed(symbol string, vwap float64)
	VWAPUnavailable(symbol string)
	IndexComputed(index float64)
	IndexUnavailable()
}

type nopRecorder struct{}

func (nopRecorder) TradeRecorded(market.Trade)   {}
func (nopRecorder) TradeRejected()               {}
func (nopRecorder) VWAPComputed(string, float64) {}
func (nopRecorder) VWAPUnavailable(string)       {}
func (nopRecorder) IndexComputed(float64)        {}
func (nopRecorder) IndexUnavailable()            {}

// Config 字段零值均有默认：系统时钟、Nop 日志、空 Recorder。
type Config struct {
	Clock    market.Clock
	Logger   *zap.Logger
	Recorder Recorder
}

// Exchange 维护只追加的成交日志，并在其上回答 VWAP 与全股指数查询。
// 读写均在锁内进行，查询基于快照计算。
type Exchange struct {
	mu     sync.RWMutex
	trades []market.Trade

	clock    market.Clock
	log      *zap.Logger
	recorder Recorder
}

func New(cfg Config) *Exchange {
	e := &Exchange{
		trades:   make([]market.Trade, 0, 64),
		clock:    cfg.Clock,
		log:      cfg.Logger,
		recorder: cfg.Recorder,
	}
	if e.clock == nil {
		e.clock = market.SystemClock
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.recorder == nil {
		e.recorder = nopRecorder{}
	}
	return e
}

// RecordTrade 追加一笔成交。拒绝不满足 market.NewTrade 约束的手工记录。
func (e *Exchange) RecordTrade(t market.Trade) error {
	if !t.Valid() {
		e.recorder.TradeRejected()
		e.log.Warn("trade_rejected",
			zap.String("id", t.ID),
			zap.String("symbol", t.Symbol()),
			zap.Int64("qty", t.Quantity),
			zap.Float64("price", t.Price))
		return &market.DomainError{Kind: market.InvalidArgument, Op: "record trade", Message: "malformed trade"}
	}

	e.mu.Lock()
	e.trades = append(e.trades, t)
	n := len(e.trades)
	e.mu.Unlock()

	e.recorder.TradeRecorded(t)
	e.log.Debug("trade_recorded",
		zap.String("id", t.ID),
		zap.String("symbol", t.Symbol()),
		zap.Stringer("side", t.Side),
		zap.Int64("qty", t.Quantity),
		zap.Float64("price", t.Price),
		zap.Time("ts", t.Timestamp),
		zap.Int("logSize", n))
	return nil
}

// Trades 返回按追加顺序排列的成交快照。
func (e *Exchange) Trades() []market.Trade {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]market.Trade, len(e.trades))
	copy(out, e.trades)
	return out
}

func (e *Exchange) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.trades)
}

// VolumeWeightedPrice 计算 symbol 在 [now-window, now] 内的 VWAP。
// 窗口内无成交时 ok=false，与价格为 0 区分。
func (e *Exchange) VolumeWeightedPrice(symbol string, window time.Duration) (vwap float64, ok bool) {
	sym := market.NormalizeSymbol(symbol)
	now := e.clock.Now()
	cut := now.Add(-window)

	e.mu.RLock()
	var matched []market.Trade
	for _, t := range e.trades {
		if t.Symbol() != sym {
			continue
		}
		if t.Timestamp.Before(cut) || t.Timestamp.After(now) {
			continue
		}
		matched = append(matched, t)
	}
	e.mu.RUnlock()

	if len(matched) == 0 {
		e.recorder.VWAPUnavailable(sym)
		e.log.Debug("vwap_no_data", zap.String("symbol", sym), zap.Duration("window", window))
		return 0, false
	}
	v, err := VWAP(matched)
	if err != nil {
		e.recorder.VWAPUnavailable(sym)
		e.log.Warn("vwap_failed", zap.String("symbol", sym), zap.Error(err))
		return 0, false
	}
	e.recorder.VWAPComputed(sym, v)
	e.log.Debug("vwap",
		zap.String("symbol", sym),
		zap.Duration("window", window),
		zap.Int("trades", len(matched)),
		zap.Float64("vwap", v))
	return v, true
}

// VolumeWeightedPriceMinutes is VolumeWeightedPrice with the window in minutes.
func (e *Exchange) VolumeWeightedPriceMinutes(symbol string, minutes int) (float64, bool) {
	return e.VolumeWeightedPrice(symbol, time.Duration(minutes)*time.Minute)
}

// SymbolPrices 按代码分组（不限时间）返回每只股票的 VWAP。
func (e *Exchange) SymbolPrices() map[string]float64 {
	groups := e.groupBySymbol()
	out := make(map[string]float64, len(groups))
	for sym, trades := range groups {
		if v, err := VWAP(trades); err == nil {
			out[sym] = v
		}
	}
	return out
}

// AllShareIndex 全股指数：各代码全部成交 VWAP 的几何平均。
// 分组按代码做 group-by，同一代码的成交无论在日志中的位置都归入一组。
func (e *Exchange) AllShareIndex() (index float64, ok bool) {
	prices := e.SymbolPrices()
	if len(prices) == 0 {
		e.recorder.IndexUnavailable()
		return 0, false
	}
	symbols := make([]string, 0, len(prices))
	for sym := range prices {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	values := make([]float64, 0, len(symbols))
	for _, sym := range symbols {
		values = append(values, prices[sym])
	}
	idx, err := GeometricMean(values)
	if err != nil {
		e.recorder.IndexUnavailable()
		e.log.Warn("all_share_index_failed", zap.Error(err))
		return 0, false
	}
	e.recorder.IndexComputed(idx)
	e.log.Debug("all_share_index", zap.Int("symbols", len(values)), zap.Float64("index", idx))
	return idx, true
}

func (e *Exchange) groupBySymbol() map[string][]market.Trade {
	e.mu.RLock()
	defer e.mu.RUnlock()
	groups := make(map[string][]market.Trade)
	for _, t := range e.trades {
		sym := t.Symbol()
		groups[sym] = append(groups[sym], t)
	}
	return groups
}
