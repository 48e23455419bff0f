// Package posting applies balanced transactions to a chart of accounts.
package posting

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/dbook/internal/chart"
	"github.com/cleared-dev/dbook/internal/model"
)

var (
	// ErrEmptyTransaction is returned for a transaction with no entries.
	ErrEmptyTransaction = model.ErrEmptyTransaction
	// ErrAccountNotFound is returned when an entry targets a nominal that is
	// not in the chart.
	ErrAccountNotFound = errors.New("account not found in chart")
)

// Receipt records one successful posting.
type Receipt struct {
	PostingID string
	Amount    int64
	Legs      int
}

// Poster applies transactions to one chart. Postings are serialized, so a
// Poster may be shared between goroutines.
type Poster struct {
	mu   sync.Mutex
	root *chart.Node
	log  logrus.FieldLogger
}

// Option configures a Poster.
type Option func(*Poster)

// WithLogger sets the logger used to record postings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Poster) {
		p.log = l
	}
}

// NewPoster returns a Poster for the chart rooted at root.
func NewPoster(root *chart.Node, opts ...Option) *Poster {
	p := &Poster{root: root, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type resolved struct {
	acct  *model.Account
	entry model.Entry
}

// Post applies every leg of txn to its account. Nothing is changed unless
// the transaction is non-empty, balanced and every leg resolves to an
// account in the chart without overflowing its balances.
func (p *Poster) Post(txn *model.SplitTransaction) (Receipt, error) {
	entries := txn.Entries()
	if entries.Len() == 0 {
		return Receipt{}, ErrEmptyTransaction
	}
	amount, err := txn.Amount()
	if err != nil {
		return Receipt{}, fmt.Errorf("posting transaction: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	legs := make([]resolved, 0, entries.Len())
	for _, e := range entries.All() {
		if _, err := model.NewEntry(e.Nominal, e.Side, e.Amount); err != nil {
			return Receipt{}, fmt.Errorf("posting transaction: %w", err)
		}
		node := chart.Find(p.root, e.Nominal)
		if node == nil || node.Value() == nil {
			return Receipt{}, fmt.Errorf("%w: %s", ErrAccountNotFound, e.Nominal)
		}
		legs = append(legs, resolved{acct: node.Value(), entry: e})
	}
	if err := checkCapacity(legs); err != nil {
		return Receipt{}, fmt.Errorf("posting transaction: %w", err)
	}

	for _, l := range legs {
		if err := l.acct.Post(l.entry.Side, l.entry.Amount); err != nil {
			// Entries and capacity were checked above; reaching here means the chart is corrupt.
			panic(fmt.Sprintf("posting validated entry: %v", err))
		}
	}

	r := Receipt{PostingID: uuid.NewString(), Amount: amount, Legs: len(legs)}
	fields := logrus.Fields{
		"posting_id": r.PostingID,
		"amount":     amount,
		"legs":       r.Legs,
	}
	if id, ok := txn.ID(); ok {
		fields["txn_id"] = id
	}
	p.log.WithFields(fields).Info("posted transaction")
	return r, nil
}

// checkCapacity fails if applying legs would overflow any account balance.
func checkCapacity(legs []resolved) error {
	type pending struct{ dr, cr int64 }
	sums := make(map[*model.Account]pending, len(legs))
	for _, l := range legs {
		p := sums[l.acct]
		var err error
		if l.entry.Side == model.SideDebit {
			p.dr, err = model.AddAmounts(p.dr, l.entry.Amount)
		} else {
			p.cr, err = model.AddAmounts(p.cr, l.entry.Amount)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", l.acct.Nominal, err)
		}
		sums[l.acct] = p
	}
	for acct, p := range sums {
		if _, err := model.AddAmounts(acct.Debit, p.dr); err != nil {
			return fmt.Errorf("%s debit: %w", acct.Nominal, err)
		}
		if _, err := model.AddAmounts(acct.Credit, p.cr); err != nil {
			return fmt.Errorf("%s credit: %w", acct.Nominal, err)
		}
	}
	return nil
}

// PostAll posts txns in order and stops at the first failure. It returns
// the receipts of the transactions that were posted.
func (p *Poster) PostAll(txns []*model.SplitTransaction) ([]Receipt, error) {
	receipts := make([]Receipt, 0, len(txns))
	for i, txn := range txns {
		r, err := p.Post(txn)
		if err != nil {
			p.log.WithError(err).WithField("txn", i+1).Warn("posting stopped")
			return receipts, fmt.Errorf("txn %d: %w", i+1, err)
		}
		receipts = append(receipts, r)
	}
	return receipts, nil
}
