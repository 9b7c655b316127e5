package exchange

import (
	"math"

	"github.com/shopspring/decimal"

	"stock-exchange-go/market"
)

// VWAP 计算任意成交集合的成交量加权均价 Σ(price*qty)/Σqty。
// 不做代码或时间过滤；空集合或总量为 0 时返回 ErrInvalidArgument，
// 调用方应先处理空集。
func VWAP(trades []market.Trade) (float64, error) {
	if len(trades) == 0 {
		return 0, &market.DomainError{Kind: market.InvalidArgument, Op: "vwap", Message: "no trades"}
	}
	notional := decimal.Zero
	volume := decimal.Zero
	for _, t := range trades {
		qty := decimal.NewFromInt(t.Quantity)
		notional = notional.Add(decimal.NewFromFloat(t.Price).Mul(qty))
		volume = volume.Add(qty)
	}
	if volume.IsZero() {
		return 0, &market.DomainError{Kind: market.DivisionByZero, Op: "vwap", Message: "total quantity is zero"}
	}
	return notional.Div(volume).InexactFloat64(), nil
}

// GeometricMean 通过 exp(mean(log v)) 计算几何平均，避免大 n 时乘积溢出。
func GeometricMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, &market.DomainError{Kind: market.InvalidArgument, Op: "geometric mean", Message: "no values"}
	}
	var sumLog float64
	for _, v := range values {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &market.DomainError{Kind: market.InvalidArgument, Op: "geometric mean", Message: "values must be finite and > 0"}
		}
		sumLog += math.Log(v)
	}
	return math.Exp(sumLog / float64(len(values))), nil
}
