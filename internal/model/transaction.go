package model

import (
	"fmt"
	"time"
)

// SplitTransaction is a journal transaction with any number of legs.
//
// Balance is checked on demand rather than on every AddEntry, so a
// transaction may pass through unbalanced states while it is being built.
type SplitTransaction struct {
	id        int64
	hasID     bool
	date      time.Time
	note      string
	source    string
	reference int64
	entries   Entries
}

// TxnOption configures a SplitTransaction at construction.
type TxnOption func(*txnOptions)

type txnOptions struct {
	note      string
	source    string
	reference int64
	date      *time.Time
	now       func() time.Time
}

// WithNote sets the free-text note.
func WithNote(note string) TxnOption {
	return func(o *txnOptions) { o.note = note }
}

// WithSource sets the user-defined source of the transaction.
func WithSource(src string) TxnOption {
	return func(o *txnOptions) { o.source = src }
}

// WithReference sets the user-defined numeric reference.
func WithReference(ref int64) TxnOption {
	return func(o *txnOptions) { o.reference = ref }
}

// WithDate sets the transaction date.
func WithDate(d time.Time) TxnOption {
	return func(o *txnOptions) { o.date = &d }
}

// WithClock overrides the clock used when no date is given.
func WithClock(now func() time.Time) TxnOption {
	return func(o *txnOptions) { o.now = now }
}

// NewSplitTransaction creates an empty transaction. Without WithDate the
// date is the construction time.
func NewSplitTransaction(opts ...TxnOption) *SplitTransaction {
	o := txnOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	date := o.now()
	if o.date != nil {
		date = *o.date
	}
	return &SplitTransaction{
		date:      date,
		note:      o.note,
		source:    o.source,
		reference: o.reference,
	}
}

// ID returns the identifier assigned by persistence, if any.
func (t *SplitTransaction) ID() (int64, bool) {
	return t.id, t.hasID
}

// SetID records the identifier assigned by persistence.
func (t *SplitTransaction) SetID(id int64) *SplitTransaction {
	t.id = id
	t.hasID = true
	return t
}

// Date returns the transaction date.
func (t *SplitTransaction) Date() time.Time { return t.date }

// Note returns the free-text note.
func (t *SplitTransaction) Note() string { return t.note }

// Source returns the user-defined source.
func (t *SplitTransaction) Source() string { return t.source }

// Reference returns the user-defined numeric reference.
func (t *SplitTransaction) Reference() int64 { return t.reference }

// AddEntry appends a leg and returns the transaction for chaining.
func (t *SplitTransaction) AddEntry(e Entry) *SplitTransaction {
	t.entries = t.entries.Add(e)
	return t
}

// Entries returns the legs. The returned value is immutable.
func (t *SplitTransaction) Entries() Entries {
	return t.entries
}

// CheckBalance reports whether the legs balance.
func (t *SplitTransaction) CheckBalance() bool {
	return t.entries.CheckBalance()
}

// Amount returns the transaction value: half the sum of all leg amounts,
// which for a balanced transaction equals both the debit and credit totals.
// It fails with ErrAmountOverflow when the unsigned total exceeds int64.
func (t *SplitTransaction) Amount() (int64, error) {
	if !t.CheckBalance() {
		return 0, ErrUnbalancedTransaction
	}
	dr, cr, err := t.entries.Totals()
	if err != nil {
		return 0, err
	}
	total, err := AddAmounts(dr, cr)
	if err != nil {
		return 0, fmt.Errorf("unsigned total: %w", err)
	}
	if total%2 != 0 {
		return 0, fmt.Errorf("total %d: %w", total, ErrOddTotal)
	}
	return total / 2, nil
}

// Entry returns the first leg targeting n in insertion order. Further legs
// on the same account are not reported; use Entries().ForNominal for all.
func (t *SplitTransaction) Entry(n Nominal) (Entry, error) {
	e, ok := t.entries.ForNominal(n).list.First()
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, n)
	}
	return e, nil
}

// DebitAccounts returns the nominal of every debit leg, duplicates included.
func (t *SplitTransaction) DebitAccounts() []Nominal {
	return t.entries.BySide(SideDebit).Nominals()
}

// CreditAccounts returns the nominal of every credit leg, duplicates included.
func (t *SplitTransaction) CreditAccounts() []Nominal {
	return t.entries.BySide(SideCredit).Nominals()
}

// IsSimple reports whether the transaction has exactly one debit and one
// credit leg.
func (t *SplitTransaction) IsSimple() bool {
	return t.entries.BySide(SideDebit).Len() == 1 && t.entries.BySide(SideCredit).Len() == 1
}
