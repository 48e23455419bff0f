package model

import (
	"fmt"
	"math"

	"github.com/cleared-dev/dbook/internal/collection"
)

// Side designates a leg as debit or credit.
type Side string

const (
	SideNone   Side = ""
	SideDebit  Side = "DR"
	SideCredit Side = "CR"
)

// ParseSide accepts "DR"/"CR" in either case.
func ParseSide(s string) (Side, error) {
	switch s {
	case "DR", "dr", "Dr":
		return SideDebit, nil
	case "CR", "cr", "Cr":
		return SideCredit, nil
	}
	return SideNone, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// Entry is one leg of a transaction.
type Entry struct {
	Nominal Nominal
	Side    Side
	Amount  int64 // minor currency units
}

// NewEntry validates and returns an Entry.
func NewEntry(nominal Nominal, side Side, amount int64) (Entry, error) {
	if side != SideDebit && side != SideCredit {
		return Entry{}, fmt.Errorf("entry for %s: %w: %q", nominal, ErrInvalidSide, side)
	}
	if amount < 0 {
		return Entry{}, fmt.Errorf("entry for %s: %w", nominal, ErrNegativeAmount)
	}
	return Entry{Nominal: nominal, Side: side, Amount: amount}, nil
}

// Debit returns a debit leg. It panics on a negative amount.
func Debit(nominal Nominal, amount int64) Entry {
	return mustEntry(nominal, SideDebit, amount)
}

// Credit returns a credit leg. It panics on a negative amount.
func Credit(nominal Nominal, amount int64) Entry {
	return mustEntry(nominal, SideCredit, amount)
}

func mustEntry(nominal Nominal, side Side, amount int64) Entry {
	e, err := NewEntry(nominal, side, amount)
	if err != nil {
		panic(err)
	}
	return e
}

// Entries is an immutable ordered collection of legs. The zero value is empty.
type Entries struct {
	list collection.List[Entry]
}

// NewEntries returns a collection holding entries in order.
func NewEntries(entries ...Entry) Entries {
	return Entries{list: collection.Of(entries...)}
}

// Add returns a new collection with e appended. The receiver is unchanged.
func (es Entries) Add(e Entry) Entries {
	return Entries{list: es.list.Append(e)}
}

// AddAmounts returns a+b for non-negative amounts, or ErrAmountOverflow when
// the sum does not fit in an int64.
func AddAmounts(a, b int64) (int64, error) {
	if b > math.MaxInt64-a {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrAmountOverflow)
	}
	return a + b, nil
}

type sideTotals struct {
	dr, cr int64
	err    error
}

// CheckBalance reports whether debits and credits net to exactly zero.
// A collection whose side totals overflow is never balanced.
func (es Entries) CheckBalance() bool {
	dr, cr, err := es.Totals()
	return err == nil && dr == cr
}

// Totals returns the debit and credit sums. It fails with ErrAmountOverflow
// when either sum does not fit in an int64.
func (es Entries) Totals() (dr, cr int64, err error) {
	t := collection.Reduce(es.list, sideTotals{}, func(acc sideTotals, e Entry) sideTotals {
		if acc.err != nil {
			return acc
		}
		if e.Side == SideDebit {
			acc.dr, acc.err = AddAmounts(acc.dr, e.Amount)
		} else {
			acc.cr, acc.err = AddAmounts(acc.cr, e.Amount)
		}
		return acc
	})
	if t.err != nil {
		return 0, 0, t.err
	}
	return t.dr, t.cr, nil
}

// Filter returns the entries matching keep, preserving order.
func (es Entries) Filter(keep func(Entry) bool) Entries {
	return Entries{list: es.list.Filter(keep)}
}

// ForNominal returns the entries targeting n.
func (es Entries) ForNominal(n Nominal) Entries {
	return es.Filter(func(e Entry) bool { return e.Nominal == n })
}

// BySide returns the entries on one side.
func (es Entries) BySide(side Side) Entries {
	return es.Filter(func(e Entry) bool { return e.Side == side })
}

// Nominals returns the target of every entry, in order.
func (es Entries) Nominals() []Nominal {
	return collection.Map(es.list, func(e Entry) Nominal { return e.Nominal })
}

// Len returns the number of entries.
func (es Entries) Len() int {
	return es.list.Len()
}

// All returns a copy of the entries.
func (es Entries) All() []Entry {
	return es.list.Slice()
}
