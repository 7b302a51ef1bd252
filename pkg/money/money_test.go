package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound_BankersRounding(t *testing.T) {
	assert := assert.New(t)

	// Ties round to even.
	assert.Equal("2.12", Round(decimal.RequireFromString("2.125")).StringFixed(2))
	assert.Equal("2.14", Round(decimal.RequireFromString("2.135")).StringFixed(2))
	assert.Equal("100.00", Round(decimal.RequireFromString("100.004")).StringFixed(2))
}

func TestValidateAmount(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateAmount(decimal.RequireFromString("100.00")))
	require.NoError(ValidateAmount(decimal.Zero))
	// Trailing zeros beyond two places are still exact.
	require.NoError(ValidateAmount(decimal.RequireFromString("40.1000")))

	require.ErrorIs(ValidateAmount(decimal.RequireFromString("-0.01")), ErrAmountNegative)
	require.ErrorIs(ValidateAmount(decimal.RequireFromString("9.999")), ErrAmountPrecision)
}

func TestValidateCode(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(ValidateCode(""))
	assert.NoError(ValidateCode(SEK))
	assert.NoError(ValidateCode("EUR"))
	assert.ErrorIs(ValidateCode("sek"), ErrInvalidCurrencyCode)
	assert.ErrorIs(ValidateCode("SEKK"), ErrInvalidCurrencyCode)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, SEK, OrDefault(""))
	assert.Equal(t, Code("EUR"), OrDefault("EUR"))
}
