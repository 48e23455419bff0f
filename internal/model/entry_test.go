package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntryValidation(t *testing.T) {
	_, err := NewEntry("1000", SideDebit, -1)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewEntry("1000", SideNone, 10)
	assert.ErrorIs(t, err, ErrInvalidSide)

	e, err := NewEntry("1000", SideCredit, 0)
	require.NoError(t, err)
	assert.Equal(t, Entry{Nominal: "1000", Side: SideCredit, Amount: 0}, e)
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"DR", SideDebit, false},
		{"dr", SideDebit, false},
		{"CR", SideCredit, false},
		{"Cr", SideCredit, false},
		{"", SideNone, true},
		{"debit", SideNone, true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidSide, "ParseSide(%q)", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ParseSide(%q)", tt.in)
	}
}

func TestEntriesAddDoesNotMutateReceiver(t *testing.T) {
	base := NewEntries(Debit("1000", 100))
	a := base.Add(Credit("2000", 100))
	b := base.Add(Credit("3000", 50))

	assert.Equal(t, []Entry{Debit("1000", 100)}, base.All())
	assert.Equal(t, []Entry{Debit("1000", 100), Credit("2000", 100)}, a.All())
	assert.Equal(t, []Entry{Debit("1000", 100), Credit("3000", 50)}, b.All())
}

func TestEntriesCheckBalance(t *testing.T) {
	tests := []struct {
		name    string
		entries Entries
		want    bool
	}{
		{"empty", NewEntries(), true},
		{"simple", NewEntries(Debit("A", 1000), Credit("B", 1000)), true},
		{"short credit", NewEntries(Debit("A", 1000), Credit("B", 900)), false},
		{"split", NewEntries(Debit("A", 600), Debit("B", 400), Credit("C", 1000)), true},
		{"debit only", NewEntries(Debit("A", 1)), false},
		{"zero legs", NewEntries(Debit("A", 0), Credit("B", 0)), true},
		{"off by one", NewEntries(Debit("A", 1001), Credit("B", 1000)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entries.CheckBalance())
			assert.Equal(t, tt.want, tt.entries.CheckBalance(), "second call must agree")
		})
	}
}

func TestEntriesCheckBalanceMatchesTotals(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		var es Entries
		for range r.IntN(8) {
			side := SideDebit
			if r.IntN(2) == 0 {
				side = SideCredit
			}
			es = es.Add(mustEntry("X", side, r.Int64N(5)))
		}
		dr, cr, err := es.Totals()
		require.NoError(t, err)
		assert.Equal(t, cr-dr == 0, es.CheckBalance())
	}
}

func TestEntriesOverflowNeverBalances(t *testing.T) {
	es := NewEntries(
		Debit("A", math.MaxInt64),
		Debit("B", math.MaxInt64),
		Debit("C", 2),
	)
	assert.False(t, es.CheckBalance())

	_, _, err := es.Totals()
	assert.ErrorIs(t, err, ErrAmountOverflow)

	es = NewEntries(Credit("A", math.MaxInt64), Credit("B", 1), Debit("C", 0))
	assert.False(t, es.CheckBalance())
}

func TestAddAmounts(t *testing.T) {
	sum, err := AddAmounts(math.MaxInt64-5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, err = AddAmounts(math.MaxInt64-5, 6)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestEntriesFilter(t *testing.T) {
	es := NewEntries(Debit("A", 1), Credit("B", 2), Debit("A", 3))

	a := es.ForNominal("A")
	assert.Equal(t, []Entry{Debit("A", 1), Debit("A", 3)}, a.All())
	assert.Equal(t, 3, es.Len())

	credits := es.BySide(SideCredit)
	assert.Equal(t, []Nominal{"B"}, credits.Nominals())
}
