package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norrbok/norrbok/pkg/money"
)

func TestBuilder_Build(t *testing.T) {
	require := require.New(t)

	companyID := uuid.New()
	a, err := New().
		WithCompanyID(companyID).
		WithCode("1930").
		WithName("Företagskonto").
		WithType(TypeAsset).
		Build()
	require.NoError(err)
	require.Equal(companyID, a.CompanyID)
	require.Equal(StatusActive, a.Status)
	require.True(a.Balance.IsZero())
}

func TestBuilder_Build_Invalid(t *testing.T) {
	companyID := uuid.New()

	_, err := New().WithCode("1930").WithName("Bank").WithType(TypeAsset).Build()
	assert.Error(t, err, "missing company")

	_, err = New().WithCompanyID(companyID).WithName("Bank").WithType(TypeAsset).Build()
	assert.Error(t, err, "missing code")

	_, err = New().WithCompanyID(companyID).WithCode("1930").WithName("Bank").WithType("BANK").Build()
	assert.Error(t, err, "unknown type")
}

func TestAccount_Apply_SignConvention(t *testing.T) {
	require := require.New(t)

	a, err := New().
		WithCompanyID(uuid.New()).
		WithCode("1930").
		WithName("Bank").
		WithType(TypeAsset).
		Build()
	require.NoError(err)

	debit, err := NewEntry(a.ID, "Invoice #1", a.CreatedAt, decimal.RequireFromString("100.00"), Debit)
	require.NoError(err)
	a.Apply(debit)
	require.Equal("100.00", a.Balance.StringFixed(2))

	credit, err := NewEntry(a.ID, "Office supplies", a.CreatedAt, decimal.RequireFromString("40.00"), Credit)
	require.NoError(err)
	a.Apply(credit)
	require.Equal("60.00", a.Balance.StringFixed(2))
}

func TestNewEntry_Validation(t *testing.T) {
	accountID := uuid.New()

	_, err := NewEntry(uuid.Nil, "x", time.Time{}, decimal.Zero, Debit)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = NewEntry(accountID, "x", time.Time{}, decimal.Zero, "SIDEWAYS")
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = NewEntry(accountID, "x", time.Time{}, decimal.RequireFromString("-1"), Debit)
	assert.ErrorIs(t, err, money.ErrAmountNegative)

	_, err = NewEntry(accountID, "x", time.Time{}, decimal.RequireFromString("1.005"), Debit)
	assert.ErrorIs(t, err, money.ErrAmountPrecision)
}

func TestEntry_MarkMatched(t *testing.T) {
	require := require.New(t)

	e, err := NewEntry(uuid.New(), "Invoice #1", time.Time{}, decimal.RequireFromString("100.00"), Debit)
	require.NoError(err)
	require.False(e.IsMatched)
	require.Nil(e.MatchedBankTransactionID)

	bankTxID := uuid.New()
	e.MarkMatched(bankTxID)
	require.True(e.IsMatched)
	require.NotNil(e.MatchedBankTransactionID)
	require.Equal(bankTxID, *e.MatchedBankTransactionID)
}

func TestDefaultChart(t *testing.T) {
	require := require.New(t)

	companyID := uuid.New()
	accounts, err := DefaultChart(companyID)
	require.NoError(err)
	require.NotEmpty(accounts)

	codes := map[string]bool{}
	for _, a := range accounts {
		require.Equal(companyID, a.CompanyID)
		require.Equal(StatusActive, a.Status)
		require.False(codes[a.Code], "duplicate code %s", a.Code)
		codes[a.Code] = true
	}
	require.True(codes["1930"])
	require.True(codes["3010"])
}
