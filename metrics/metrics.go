// Package metrics provides Prometheus metrics for the exchange.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stock-exchange-go/market"
)

// Monitor 交易所指标收集器，实现 exchange.Recorder。
type Monitor struct {
	registry *prometheus.Registry

	tradesRecorded *prometheus.CounterVec
	tradedVolume   *prometheus.CounterVec
	tradesRejected prometheus.Counter

	vwap          *prometheus.GaugeVec
	allShareIndex *prometheus.GaugeVec // 无标签；无数据时删除序列而非保留旧值
	catalogStocks prometheus.Gauge
}

// Config 监控配置
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "gbce",
		Subsystem: "exchange",
	}
}

// New 创建使用独立 registry 的 Monitor。
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Monitor{
		registry: reg,

		tradesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "trades_recorded_total",
			Help:      "已记录成交笔数",
		}, []string{"symbol", "side"}),
		tradedVolume: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "traded_volume_total",
			Help:      "累计成交股数",
		}, []string{"symbol"}),
		tradesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "trades_rejected_total",
			Help:      "被拒绝的成交记录数",
		}),

		vwap: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "vwap",
			Help:      "最近一次计算的成交量加权均价",
		}, []string{"symbol"}),
		allShareIndex: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "all_share_index",
			Help:      "最近一次计算的全股指数",
		}, nil),
		catalogStocks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "catalog_stocks",
			Help:      "股票目录中的股票数",
		}),
	}
}

func (m *Monitor) TradeRecorded(t market.Trade) {
	m.tradesRecorded.WithLabelValues(t.Symbol(), t.Side.String()).Inc()
	m.tradedVolume.WithLabelValues(t.Symbol()).Add(float64(t.Quantity))
}

func (m *Monitor) TradeRejected() { m.tradesRejected.Inc() }

func (m *Monitor) VWAPComputed(symbol string, v float64) {
	m.vwap.WithLabelValues(symbol).Set(v)
}

// VWAPUnavailable 窗口内无成交时删除该代码的序列，避免导出过期价格。
func (m *Monitor) VWAPUnavailable(symbol string) {
	m.vwap.DeleteLabelValues(symbol)
}

func (m *Monitor) IndexComputed(v float64) { m.allShareIndex.WithLabelValues().Set(v) }

func (m *Monitor) IndexUnavailable() { m.allShareIndex.DeleteLabelValues() }

// SetCatalogSize 目录加载或热更新后调用。
func (m *Monitor) SetCatalogSize(n int) { m.catalogStocks.Set(float64(n)) }

// Registry exposes the underlying registry, mainly for tests.
func (m *Monitor) Registry() *prometheus.Registry { return m.registry }

// Handler 返回 /metrics 处理器。
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
