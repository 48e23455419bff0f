package accounts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{Nominal: "0000", Name: "COA", Type: model.AccountTypeReal},
		{Nominal: "1010", Name: "Business Checking", Type: model.AccountTypeAsset, ParentNominal: "0000", Debit: 125050},
		{Nominal: "5020", Name: "Software & SaaS", Type: model.AccountTypeExpense, ParentNominal: "0000", Credit: 99},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts, money.GBP)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf, money.GBP)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestWriteUsesMajorUnits(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAccounts(&buf, []model.Account{
		{Nominal: "0000", Name: "COA", Type: model.AccountTypeReal, Debit: 1001},
	}, money.GBP)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0000,COA,real,,10.01,0.00")
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad nominal", "10-00,Assets,asset,,0,0"},
		{"bad type", "1000,Assets,revenue,,0,0"},
		{"bad parent", "1000,Assets,asset,00 00,0,0"},
		{"bad debit", "1000,Assets,asset,,abc,0"},
		{"too precise", "1000,Assets,asset,,1.001,0"},
		{"negative", "1000,Assets,asset,,0,-5"},
		{"beyond int64", "1000,Assets,asset,,184467440737095516.17,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.Join(Header, ",") + "\n" + tt.row + "\n"
			_, err := ReadAccounts(strings.NewReader(in), money.GBP)
			assert.Error(t, err)
		})
	}
}

func TestReadEmpty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""), money.GBP)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmptyBalancesReadAsZero(t *testing.T) {
	in := strings.Join(Header, ",") + "\n0000,COA,real,,,\n"
	got, err := ReadAccounts(strings.NewReader(in), money.GBP)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(0), got[0].Debit)
	assert.Equal(t, int64(0), got[0].Credit)
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	defer f.Close()

	accounts, err := ReadAccounts(f, money.GBP)
	require.NoError(t, err)
	require.Len(t, accounts, 7)

	types := make(map[model.AccountType]bool)
	for _, acct := range accounts {
		types[acct.Type] = true
	}
	for _, at := range model.AccountTypes {
		assert.True(t, types[at], "expected an account of type %s", at)
	}
	assert.Equal(t, int64(1001), accounts[1].Debit)
}

func TestAllAccountTypes(t *testing.T) {
	for _, at := range model.AccountTypes {
		acct := model.Account{Nominal: "1000", Name: "Test", Type: at}

		var buf bytes.Buffer
		err := WriteAccounts(&buf, []model.Account{acct}, money.GBP)
		require.NoError(t, err)

		got, err := ReadAccounts(&buf, money.GBP)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, at, got[0].Type, "account type %q should survive round-trip", at)
	}
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart("llc_single_member")

	var buf bytes.Buffer
	err := WriteAccounts(&buf, chart, money.GBP)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf, money.GBP)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
