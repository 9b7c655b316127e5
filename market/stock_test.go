package market

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockNormalizesSymbol(t *testing.T) {
	st, err := NewCommonStock(" ale ", 23, 60)
	require.NoError(t, err)
	assert.Equal(t, "ALE", st.Symbol())
	assert.Equal(t, 23.0, st.LastDividend())
	assert.Equal(t, 60.0, st.ParValue())
	assert.Equal(t, KindCommon, st.Kind())
	assert.Zero(t, st.FixedDividendRate())
}

func TestNewStockRejectsBadArguments(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (*Stock, error)
	}{
		{"empty symbol", func() (*Stock, error) { return NewCommonStock("", 1, 100) }},
		{"zero par", func() (*Stock, error) { return NewCommonStock("TEA", 1, 0) }},
		{"negative par", func() (*Stock, error) { return NewCommonStock("TEA", 1, -5) }},
		{"negative dividend", func() (*Stock, error) { return NewCommonStock("TEA", -1, 100) }},
		{"nan dividend", func() (*Stock, error) { return NewCommonStock("TEA", math.NaN(), 100) }},
		{"negative rate", func() (*Stock, error) { return NewPreferredStock("GIN", 8, -0.02, 100) }},
		{"nil policy", func() (*Stock, error) { return NewStock("TEA", 0, 100, nil) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := tc.fn()
			assert.Nil(t, st)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestDividendYield(t *testing.T) {
	pop, _ := NewCommonStock("POP", 8, 100)
	y, err := pop.DividendYield(100)
	require.NoError(t, err)
	assert.Equal(t, 0.08, y)

	ale, _ := NewCommonStock("ALE", 23, 60)
	y, err = ale.DividendYield(100)
	require.NoError(t, err)
	assert.Equal(t, 0.23, y)

	gin, _ := NewPreferredStock("GIN", 8, 0.02, 100)
	y, err = gin.DividendYield(100)
	require.NoError(t, err)
	assert.Equal(t, 0.02, y)
	assert.Equal(t, 0.02, gin.FixedDividendRate())
}

func TestDividendYieldMatchesFormula(t *testing.T) {
	joe, _ := NewCommonStock("JOE", 13, 250)
	gin, _ := NewPreferredStock("GIN", 8, 0.02, 100)
	for _, p := range []float64{0.01, 1, 37.5, 100, 250, 1e6} {
		y, err := joe.DividendYield(p)
		require.NoError(t, err)
		assert.InDelta(t, 13/p, y, 1e-12)

		y, err = gin.DividendYield(p)
		require.NoError(t, err)
		assert.InDelta(t, 0.02*100/p, y, 1e-12)

		pe, err := joe.PERatio(p)
		require.NoError(t, err)
		assert.InDelta(t, p/13, pe, 1e-9)
	}
}

func TestDividendYieldRejectsPrice(t *testing.T) {
	st, _ := NewCommonStock("POP", 8, 100)

	_, err := st.DividendYield(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = st.DividendYield(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, errors.Is(err, ErrDivisionByZero))

	_, err = st.DividendYield(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = st.PERatio(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPERatio(t *testing.T) {
	pop, _ := NewCommonStock("POP", 8, 100)
	pe, err := pop.PERatio(100)
	require.NoError(t, err)
	assert.Equal(t, 12.5, pe)

	ale, _ := NewCommonStock("ALE", 23, 60)
	pe, err = ale.PERatio(100)
	require.NoError(t, err)
	assert.InDelta(t, 4.35, pe, 0.005)

	gin, _ := NewPreferredStock("GIN", 8, 0.02, 100)
	pe, err = gin.PERatio(100)
	require.NoError(t, err)
	assert.Equal(t, 50.0, pe)
}

func TestPERatioZeroYield(t *testing.T) {
	tea, _ := NewCommonStock("TEA", 0, 100)
	y, err := tea.DividendYield(100)
	require.NoError(t, err)
	assert.Zero(t, y)

	_, err = tea.PERatio(100)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DivisionByZero, de.Kind)
	assert.Equal(t, "pe ratio", de.Op)
}

// flatDividend 演示新增股息策略无需改动 Stock 或调用方。
type flatDividend struct{ yield float64 }

func (flatDividend) Kind() string                    { return "flat" }
func (f flatDividend) DividendYield(float64) float64 { return f.yield }

func TestCustomDividendPolicy(t *testing.T) {
	st, err := NewStock("zzz", 0, 1, flatDividend{yield: 0.25})
	require.NoError(t, err)
	assert.Equal(t, "flat", st.Kind())
	pe, err := st.PERatio(42)
	require.NoError(t, err)
	assert.Equal(t, 4.0, pe)
}

func TestDomainErrorMessage(t *testing.T) {
	_, err := NewCommonStock("TEA", 0, 0)
	assert.EqualError(t, err, "new stock: invalid argument: TEA parValue must be > 0, got 0")
	assert.Equal(t, "division by zero", ErrDivisionByZero.Error())
}

func TestFixedDividendRatePointerPolicy(t *testing.T) {
	st, err := NewStock("GIN", 8, 100, &PreferredDividend{FixedRate: 0.02, ParValue: 100})
	require.NoError(t, err)
	assert.Equal(t, 0.02, st.FixedDividendRate())
	assert.Equal(t, KindPreferred, st.Kind())

	y, err := st.DividendYield(100)
	require.NoError(t, err)
	assert.Equal(t, 0.02, y)
}
