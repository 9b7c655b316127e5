package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side 买卖方向。
type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func (s Side) Valid() bool { return s == Buy || s == Sell }

// ParseSide accepts buy/b/sell/s in any case.
func ParseSide(v string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	}
	return 0, invalidArgument("parse side", "unknown side %q", v)
}

// Trade 一笔已成交记录，创建后不可修改。
// Stock 为共享引用，多笔成交可指向同一只股票。
type Trade struct {
	ID        string
	Stock     *Stock
	Quantity  int64
	Side      Side
	Price     float64
	Timestamp time.Time
}

// NewTrade 以 clock 当前时间为成交时间；clock 为 nil 时使用 SystemClock。
func NewTrade(stock *Stock, quantity int64, side Side, price float64, clock Clock) (Trade, error) {
	return NewTradeAt(stock, quantity, side, price, clockOrDefault(clock).Now())
}

// NewTradeAt 使用显式时间戳，供回放和测试使用。
func NewTradeAt(stock *Stock, quantity int64, side Side, price float64, ts time.Time) (Trade, error) {
	const op = "new trade"
	if stock == nil {
		return Trade{}, invalidArgument(op, "stock is required")
	}
	if quantity <= 0 {
		return Trade{}, invalidArgument(op, "%s quantity must be > 0, got %d", stock.Symbol(), quantity)
	}
	if !isFinite(price) || price <= 0 {
		return Trade{}, invalidArgument(op, "%s price must be > 0, got %v", stock.Symbol(), price)
	}
	if !side.Valid() {
		return Trade{}, invalidArgument(op, "%s unknown side %d", stock.Symbol(), int(side))
	}
	return Trade{
		ID:        uuid.NewString(),
		Stock:     stock,
		Quantity:  quantity,
		Side:      side,
		Price:     price,
		Timestamp: ts,
	}, nil
}

// Valid 报告记录是否满足 NewTradeAt 的全部约束，用于拦截手工构造的零值或 NaN 记录。
func (t Trade) Valid() bool {
	return t.Stock != nil &&
		t.Quantity > 0 &&
		isFinite(t.Price) && t.Price > 0 &&
		t.Side.Valid()
}

// Symbol 返回所属股票代码；Stock 为空时返回空串。
func (t Trade) Symbol() string {
	if t.Stock == nil {
		return ""
	}
	return t.Stock.Symbol()
}

// Notional 成交额 price * quantity。
func (t Trade) Notional() float64 {
	return t.Price * float64(t.Quantity)
}
