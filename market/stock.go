package market

import (
	"math"
	"strings"
)

const (
	KindCommon    = "common"
	KindPreferred = "preferred"
)

// DividendPolicy 按股票类别计算股息率；新增类别只需新增实现。
// 价格在调用前已由 Stock 校验为有限正数。
type DividendPolicy interface {
	Kind() string
	DividendYield(price float64) float64
}

// FixedRater is implemented by policies backed by a fixed dividend rate.
type FixedRater interface {
	FixedDividendRate() float64
}

// CommonDividend 普通股：上次派息 / 价格。
type CommonDividend struct {
	LastDividend float64
}

func (CommonDividend) Kind() string { return KindCommon }

func (d CommonDividend) DividendYield(price float64) float64 {
	return d.LastDividend / price
}

// PreferredDividend 优先股：固定股息率 * 面值 / 价格。
type PreferredDividend struct {
	FixedRate float64
	ParValue  float64
}

func (PreferredDividend) Kind() string { return KindPreferred }

func (d PreferredDividend) FixedDividendRate() float64 { return d.FixedRate }

func (d PreferredDividend) DividendYield(price float64) float64 {
	return d.FixedRate * d.ParValue / price
}

// Stock is an immutable listing. Symbols are stored upper-cased.
type Stock struct {
	symbol       string
	parValue     float64
	lastDividend float64
	policy       DividendPolicy
}

// NormalizeSymbol returns the canonical form used for identity comparisons.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewStock 使用自定义股息策略创建股票。
func NewStock(symbol string, lastDividend, parValue float64, policy DividendPolicy) (*Stock, error) {
	const op = "new stock"
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return nil, invalidArgument(op, "symbol is required")
	}
	if !isFinite(parValue) || parValue <= 0 {
		return nil, invalidArgument(op, "%s parValue must be > 0, got %v", sym, parValue)
	}
	if !isFinite(lastDividend) || lastDividend < 0 {
		return nil, invalidArgument(op, "%s lastDividend must be >= 0, got %v", sym, lastDividend)
	}
	if policy == nil {
		return nil, invalidArgument(op, "%s dividend policy is required", sym)
	}
	return &Stock{
		symbol:       sym,
		parValue:     parValue,
		lastDividend: lastDividend,
		policy:       policy,
	}, nil
}

// NewCommonStock 创建普通股。
func NewCommonStock(symbol string, lastDividend, parValue float64) (*Stock, error) {
	return NewStock(symbol, lastDividend, parValue, CommonDividend{LastDividend: lastDividend})
}

// NewPreferredStock 创建优先股，fixedDividendRate 为小数（2% 即 0.02）。
func NewPreferredStock(symbol string, lastDividend, fixedDividendRate, parValue float64) (*Stock, error) {
	if !isFinite(fixedDividendRate) || fixedDividendRate < 0 {
		return nil, invalidArgument("new stock", "%s fixedDividendRate must be >= 0, got %v",
			NormalizeSymbol(symbol), fixedDividendRate)
	}
	return NewStock(symbol, lastDividend, parValue, PreferredDividend{FixedRate: fixedDividendRate, ParValue: parValue})
}

func (s *Stock) Symbol() string        { return s.symbol }
func (s *Stock) ParValue() float64     { return s.parValue }
func (s *Stock) LastDividend() float64 { return s.lastDividend }
func (s *Stock) Kind() string          { return s.policy.Kind() }

// FixedDividendRate 仅对实现 FixedRater 的策略（如优先股）有意义，其余返回 0。
func (s *Stock) FixedDividendRate() float64 {
	if r, ok := s.policy.(FixedRater); ok {
		return r.FixedDividendRate()
	}
	return 0
}

// DividendYield 计算给定价格下的股息率。
func (s *Stock) DividendYield(price float64) (float64, error) {
	const op = "dividend yield"
	switch {
	case !isFinite(price) || price < 0:
		return 0, invalidArgument(op, "%s price must be > 0, got %v", s.symbol, price)
	case price == 0:
		return 0, divisionByZero(op, "%s price is zero", s.symbol)
	}
	return s.policy.DividendYield(price), nil
}

// PERatio = 1 / 股息率；股息率为 0（例如未派息）时返回 ErrDivisionByZero。
func (s *Stock) PERatio(price float64) (float64, error) {
	y, err := s.DividendYield(price)
	if err != nil {
		return 0, err
	}
	if y == 0 {
		return 0, divisionByZero("pe ratio", "%s dividend yield is zero", s.symbol)
	}
	return 1 / y, nil
}

func (s *Stock) String() string { return s.symbol }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
