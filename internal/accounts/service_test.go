package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
)

func newDefaultService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(DefaultChart("llc_single_member"), money.GBP)
	require.NoError(t, err)
	return svc
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart("llc_single_member")
	require.NotEmpty(t, chart)
	assert.Equal(t, chart, DefaultChart("unknown_type"), "unknown entity types fall back to LLC single member")

	for _, acct := range chart {
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.Nominal)
		assert.NotEmpty(t, acct.Type, "account %s missing type", acct.Nominal)
	}
}

func TestNewService(t *testing.T) {
	svc := newDefaultService(t)
	assert.Len(t, svc.All(), len(DefaultChart("llc_single_member")))
	assert.Equal(t, model.Nominal("0000"), svc.Root().Value().Nominal)
	assert.Equal(t, money.GBP, svc.Currency())
}

func TestNewServiceRejectsBadChart(t *testing.T) {
	chart := append(DefaultChart(""), model.Account{Nominal: "1010", Type: model.AccountTypeAsset, ParentNominal: "1000"})
	_, err := NewService(chart, money.GBP)
	assert.Error(t, err)
}

func TestGetExists(t *testing.T) {
	svc := newDefaultService(t)

	acct, ok := svc.Get("1010")
	require.True(t, ok)
	assert.Equal(t, "Business Checking", acct.Name)

	_, ok = svc.Get("9999")
	assert.False(t, ok)

	assert.True(t, svc.Exists("1010"))
	assert.False(t, svc.Exists("9999"))
}

func TestGetReturnsLiveAccount(t *testing.T) {
	svc := newDefaultService(t)
	acct, ok := svc.Get("1010")
	require.True(t, ok)
	require.NoError(t, acct.Post(model.SideDebit, 500))

	again, _ := svc.Get("1010")
	assert.Equal(t, int64(500), again.Debit)
}

func TestByType(t *testing.T) {
	svc := newDefaultService(t)

	assets := svc.ByType(model.AccountTypeAsset)
	assert.Len(t, assets, 3, "expected Assets, Business Checking, Business Savings")
	for _, a := range assets {
		assert.Equal(t, model.AccountTypeAsset, a.Type)
	}

	expenses := svc.ByType(model.AccountTypeExpense)
	assert.Len(t, expenses, 6)
}

func TestLoadFromTestdata(t *testing.T) {
	dir := t.TempDir()
	acctDir := filepath.Join(dir, "accounts")
	require.NoError(t, os.MkdirAll(acctDir, 0o755))

	src, err := os.ReadFile("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(acctDir, "chart-of-accounts.csv"), src, 0o644))

	svc, err := Load(dir, money.GBP)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 7)
	assert.True(t, svc.Exists("1100"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir(), money.GBP)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	svc := newDefaultService(t)
	acct, _ := svc.Get("2010")
	require.NoError(t, acct.Post(model.SideCredit, 4200))

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir, money.GBP)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), svc2.All())

	got, ok := svc2.Get("2010")
	require.True(t, ok)
	assert.Equal(t, int64(4200), got.Credit)
}
