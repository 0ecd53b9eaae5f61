package shared

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("1234.56", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.Amount.String())
	assert.Equal(t, "EUR", m.Currency)

	_, err = ParseMoney("not-a-number", "EUR")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, which floats cannot do.
	a, _ := ParseMoney("0.1", "EUR")
	b, _ := ParseMoney("0.2", "EUR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.RequireFromString("0.3")))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	eur := ZeroMoney("EUR")
	usd := ZeroMoney("USD")

	_, err := eur.Add(usd)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = eur.Subtract(usd)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMoneySubtractAndNegative(t *testing.T) {
	a, _ := ParseMoney("10.00", "EUR")
	b, _ := ParseMoney("15.00", "EUR")

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
}

func TestMoneyEquals(t *testing.T) {
	a, _ := ParseMoney("5.50", "EUR")
	b, _ := ParseMoney("5.5", "EUR")
	c, _ := ParseMoney("5.50", "USD")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
