package bank_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/norrbok/norrbok/pkg/categorize"
	domainbank "github.com/norrbok/norrbok/pkg/domain/bank"
	domainledger "github.com/norrbok/norrbok/pkg/domain/ledger"
	banksvc "github.com/norrbok/norrbok/pkg/service/bank"
	ledgersvc "github.com/norrbok/norrbok/pkg/service/ledger"
	"github.com/norrbok/norrbok/pkg/testutils"
)

// fixture wires a bank service and a ledger service over one database.
type fixture struct {
	bank   *banksvc.Service
	ledger *ledgersvc.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	uow := testutils.NewTestUoW(t)
	logger := testutils.NewTestLogger()
	return &fixture{
		bank:   banksvc.New(uow, categorize.Default(), logger),
		ledger: ledgersvc.New(uow, logger),
	}
}

func (f *fixture) newBankAccount(t *testing.T) *domainbank.Account {
	t.Helper()
	c, err := f.ledger.CreateCompany(context.Background(), "Fika AB", "556677-8899")
	require.NoError(t, err)
	a, err := f.bank.CreateBankAccount(context.Background(), c.ID, "Driftkonto", "SEB", "", "", "")
	require.NoError(t, err)
	return a
}

func (f *fixture) newLedgerEntry(t *testing.T, desc, amount string) *domainledger.Entry {
	t.Helper()
	ctx := context.Background()
	c, err := f.ledger.CreateCompany(ctx, "Bokföring AB", "")
	require.NoError(t, err)
	a, err := f.ledger.CreateAccount(ctx, c.ID, "1510", "Kundfordringar", domainledger.TypeAsset)
	require.NoError(t, err)
	e, err := f.ledger.Post(ctx, a.ID, desc, time.Now(), decimal.RequireFromString(amount), domainledger.Debit)
	require.NoError(t, err)
	return e
}

func TestImport_DefaultsAndStatus(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
		{ExternalID: "X2", Amount: decimal.RequireFromString("-55.00"), Description: "Hyra januari"},
	})
	require.NoError(err)
	require.Len(stored, 2)

	byExternal := map[string]*domainbank.Transaction{}
	for _, tx := range stored {
		byExternal[tx.ExternalID] = tx
	}
	x1 := byExternal["X1"]
	require.Equal(domainbank.StatusPending, x1.Status)
	require.False(x1.IsMatched)
	require.Equal("SEK", string(x1.Currency))
	require.Equal(domainledger.Credit, x1.Direction)
	require.Equal("SALES", x1.SuggestedCategory)
	require.Equal("RENT", byExternal["X2"].SuggestedCategory)
}

func TestImport_IdempotentOnExternalID(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	rows := []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
	}
	first, err := f.bank.Import(ctx, ba.ID, rows)
	require.NoError(err)
	require.Len(first, 1)

	again, err := f.bank.Import(ctx, ba.ID, rows)
	require.NoError(err)
	require.Len(again, 1)
	require.Equal(first[0].ID, again[0].ID)

	all, err := f.bank.ListBankTransactions(ctx, ba.ID)
	require.NoError(err)
	require.Len(all, 1)
}

func TestImport_BankAccountNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.bank.Import(context.Background(), uuid.New(), nil)
	require.ErrorIs(t, err, domainbank.ErrBankAccountNotFound)
}

func TestImport_MissingExternalID(t *testing.T) {
	f := newFixture(t)
	ba := f.newBankAccount(t)

	_, err := f.bank.Import(context.Background(), ba.ID, []domainbank.FeedRow{
		{Amount: decimal.RequireFromString("1.00")},
	})
	require.ErrorIs(t, err, domainbank.ErrExternalIDRequired)
}

func TestFindMatches_CandidateSet(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	// The candidate: same absolute amount, description contains the bank
	// description.
	want := f.newLedgerEntry(t, "Invoice #1 payment received", "100.00")
	// Near misses.
	f.newLedgerEntry(t, "Invoice #1 payment received", "99.00")
	f.newLedgerEntry(t, "Unrelated transfer", "100.00")

	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("-100.00"), Description: "Invoice #1 payment"},
	})
	require.NoError(err)

	matches, err := f.bank.FindMatches(ctx, stored[0].ID)
	require.NoError(err)
	require.Len(matches, 1)
	require.Equal(want.ID, matches[0].ID)
}

func TestFindMatches_Empty(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("123.45"), Description: "nothing like this"},
	})
	require.NoError(err)

	matches, err := f.bank.FindMatches(ctx, stored[0].ID)
	require.NoError(err)
	require.Empty(matches)
}

func TestFindMatches_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.bank.FindMatches(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainbank.ErrBankTransactionNotFound)
}

func TestCommitMatch_Symmetry(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	entry := f.newLedgerEntry(t, "Invoice #1 payment received", "100.00")
	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
	})
	require.NoError(err)
	bankTx := stored[0]

	committed, err := f.bank.CommitMatch(ctx, bankTx.ID, entry.ID)
	require.NoError(err)
	require.Equal(domainbank.StatusCleared, committed.Status)
	require.True(committed.IsMatched)

	// Ledger side carries the back-link.
	matches, err := f.bank.FindMatches(ctx, bankTx.ID)
	require.NoError(err)
	require.Empty(matches, "matched entry must leave the candidate pool")
}

func TestCommitMatch_Idempotent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	entry := f.newLedgerEntry(t, "Invoice #1 payment received", "100.00")
	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
	})
	require.NoError(err)
	bankTx := stored[0]

	_, err = f.bank.CommitMatch(ctx, bankTx.ID, entry.ID)
	require.NoError(err)

	// Same pair again: no error, committed state returned.
	again, err := f.bank.CommitMatch(ctx, bankTx.ID, entry.ID)
	require.NoError(err)
	require.Equal(domainbank.StatusCleared, again.Status)
	require.True(again.IsMatched)
}

func TestCommitMatch_ConflictOnRematch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	entry := f.newLedgerEntry(t, "Invoice #1 payment received", "100.00")
	other := f.newLedgerEntry(t, "Invoice #1 also plausible", "100.00")
	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
		{ExternalID: "X2", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
	})
	require.NoError(err)

	byExternal := map[string]*domainbank.Transaction{}
	for _, tx := range stored {
		byExternal[tx.ExternalID] = tx
	}

	_, err = f.bank.CommitMatch(ctx, byExternal["X1"].ID, entry.ID)
	require.NoError(err)

	// Bank transaction already matched to a different entry.
	_, err = f.bank.CommitMatch(ctx, byExternal["X1"].ID, other.ID)
	require.ErrorIs(err, domainbank.ErrMatchConflict)

	// Entry already matched to a different bank transaction.
	_, err = f.bank.CommitMatch(ctx, byExternal["X2"].ID, entry.ID)
	require.ErrorIs(err, domainbank.ErrMatchConflict)
}

func TestCommitMatch_NotFoundBeforeMutation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	entry := f.newLedgerEntry(t, "Invoice #1 payment received", "100.00")
	stored, err := f.bank.Import(ctx, ba.ID, []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
	})
	require.NoError(err)

	_, err = f.bank.CommitMatch(ctx, uuid.New(), entry.ID)
	require.ErrorIs(err, domainbank.ErrBankTransactionNotFound)

	_, err = f.bank.CommitMatch(ctx, stored[0].ID, uuid.New())
	require.ErrorIs(err, domainledger.ErrEntryNotFound)

	// Nothing was mutated by the failed commits.
	got, err := f.bank.ListBankTransactions(ctx, ba.ID)
	require.NoError(err)
	require.Equal(domainbank.StatusPending, got[0].Status)
}

// Scenario: commit a match, then re-import the same feed row. The stored
// transaction stays unique and CLEARED.
func TestReimportAfterCommitKeepsClearedRow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ba := f.newBankAccount(t)

	entry := f.newLedgerEntry(t, "Invoice #1 payment received", "100.00")
	rows := []domainbank.FeedRow{
		{ExternalID: "X1", Amount: decimal.RequireFromString("100.00"), Description: "Invoice #1 payment"},
	}
	stored, err := f.bank.Import(ctx, ba.ID, rows)
	require.NoError(err)

	_, err = f.bank.CommitMatch(ctx, stored[0].ID, entry.ID)
	require.NoError(err)

	again, err := f.bank.Import(ctx, ba.ID, rows)
	require.NoError(err)
	require.Len(again, 1)
	require.Equal(stored[0].ID, again[0].ID)
	require.Equal(domainbank.StatusCleared, again[0].Status)

	all, err := f.bank.ListBankTransactions(ctx, ba.ID)
	require.NoError(err)
	require.Len(all, 1)
}
