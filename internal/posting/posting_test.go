package posting

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/dbook/internal/chart"
	"github.com/cleared-dev/dbook/internal/logging"
	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/tree"
)

func sampleChart() *chart.Node {
	return tree.New(&model.Account{Nominal: "0000", Type: model.AccountTypeReal, Name: "COA"},
		tree.New(&model.Account{Nominal: "1000", Type: model.AccountTypeAsset, Name: "Assets"}),
		tree.New(&model.Account{Nominal: "2000", Type: model.AccountTypeLiability, Name: "Liabilities"}),
		tree.New(&model.Account{Nominal: "5000", Type: model.AccountTypeExpense, Name: "Expenses"}),
	)
}

func account(t *testing.T, root *chart.Node, n model.Nominal) *model.Account {
	t.Helper()
	node := chart.Find(root, n)
	require.NotNil(t, node, "account %s", n)
	return node.Value()
}

func TestPostSimple(t *testing.T) {
	root := sampleChart()
	p := NewPoster(root, WithLogger(logging.Discard()))

	txn := model.NewSplitTransaction().
		AddEntry(model.Debit("1000", 1000)).
		AddEntry(model.Credit("2000", 1000))

	r, err := p.Post(txn)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), r.Amount)
	assert.Equal(t, 2, r.Legs)
	assert.NotEmpty(t, r.PostingID)

	assert.Equal(t, int64(1000), account(t, root, "1000").Debit)
	assert.Equal(t, int64(1000), account(t, root, "2000").Credit)
	assert.True(t, chart.TrialBalanced(root))
}

func TestPostSplitSameAccountTwice(t *testing.T) {
	root := sampleChart()
	p := NewPoster(root, WithLogger(logging.Discard()))

	txn := model.NewSplitTransaction().
		AddEntry(model.Debit("5000", 600)).
		AddEntry(model.Debit("5000", 400)).
		AddEntry(model.Credit("1000", 1000))

	_, err := p.Post(txn)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account(t, root, "5000").Debit)
	assert.Equal(t, int64(1000), account(t, root, "1000").Credit)
}

func TestPostRejects(t *testing.T) {
	tests := []struct {
		name string
		txn  *model.SplitTransaction
		want error
	}{
		{
			name: "empty",
			txn:  model.NewSplitTransaction(),
			want: ErrEmptyTransaction,
		},
		{
			name: "unbalanced",
			txn: model.NewSplitTransaction().
				AddEntry(model.Debit("1000", 1000)).
				AddEntry(model.Credit("2000", 900)),
			want: model.ErrUnbalancedTransaction,
		},
		{
			name: "unknown account",
			txn: model.NewSplitTransaction().
				AddEntry(model.Debit("1000", 1000)).
				AddEntry(model.Credit("9999", 1000)),
			want: ErrAccountNotFound,
		},
		{
			name: "invalid side",
			txn: model.NewSplitTransaction().
				AddEntry(model.Entry{Nominal: "1000", Side: model.SideNone, Amount: 0}),
			want: model.ErrInvalidSide,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := sampleChart()
			p := NewPoster(root, WithLogger(logging.Discard()))

			_, err := p.Post(tt.txn)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, chart.Totals{}, chart.SubtreeTotals(root), "chart must be untouched")
		})
	}
}

func TestPostAllStopsAtFirstFailure(t *testing.T) {
	root := sampleChart()
	p := NewPoster(root, WithLogger(logging.Discard()))

	good := model.NewSplitTransaction().
		AddEntry(model.Debit("5000", 250)).
		AddEntry(model.Credit("1000", 250))
	bad := model.NewSplitTransaction().
		AddEntry(model.Debit("5000", 250))

	receipts, err := p.PostAll([]*model.SplitTransaction{good, bad, good})
	assert.ErrorIs(t, err, model.ErrUnbalancedTransaction)
	assert.Contains(t, err.Error(), "txn 2")
	assert.Len(t, receipts, 1)
	assert.Equal(t, int64(250), account(t, root, "5000").Debit)
}

func TestPostLogs(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, logging.Options{Level: "info"})
	require.NoError(t, err)

	p := NewPoster(sampleChart(), WithLogger(log))
	txn := model.NewSplitTransaction().
		AddEntry(model.Debit("1000", 1)).
		AddEntry(model.Credit("2000", 1)).
		SetID(12)

	_, err = p.Post(txn)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "posted transaction")
	assert.Contains(t, out, "txn_id=12")
	assert.Contains(t, out, "posting_id=")
}

func TestPostConcurrent(t *testing.T) {
	root := sampleChart()
	p := NewPoster(root, WithLogger(logging.Discard().WithField("test", t.Name())))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txn := model.NewSplitTransaction().
				AddEntry(model.Debit("5000", 10)).
				AddEntry(model.Credit("1000", 10))
			_, err := p.Post(txn)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(500), account(t, root, "5000").Debit)
	assert.True(t, chart.TrialBalanced(root))
}

func TestPostRejectsBalanceOverflow(t *testing.T) {
	root := sampleChart()
	p := NewPoster(root, WithLogger(logging.Discard()))

	assets := account(t, root, "1000")
	assets.Debit = math.MaxInt64 - 10

	txn := model.NewSplitTransaction().
		AddEntry(model.Debit("1000", 6)).
		AddEntry(model.Debit("1000", 6)).
		AddEntry(model.Credit("2000", 12))

	_, err := p.Post(txn)
	assert.ErrorIs(t, err, model.ErrAmountOverflow)
	assert.Equal(t, int64(math.MaxInt64-10), assets.Debit)
	assert.Zero(t, account(t, root, "2000").Credit, "no leg is applied")
}
