package journal

import (
	"fmt"

	"github.com/cleared-dev/dbook/internal/model"
)

// Rule identifies which check a transaction failed.
type Rule int

const (
	RuleBalanced Rule = iota + 1
	RuleNonEmpty
	RuleKnownAccount
	RuleNonZero
)

func (r Rule) String() string {
	switch r {
	case RuleBalanced:
		return "balanced"
	case RuleNonEmpty:
		return "non-empty"
	case RuleKnownAccount:
		return "known-account"
	case RuleNonZero:
		return "non-zero"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        Rule
	Txn         int // 1-based position in the validated slice
	Nominal     model.Nominal
	Description string
}

func (e ValidationError) Error() string {
	if e.Nominal != "" {
		return fmt.Sprintf("txn %d [%s] %s: %s", e.Txn, e.Rule, e.Nominal, e.Description)
	}
	return fmt.Sprintf("txn %d [%s]: %s", e.Txn, e.Rule, e.Description)
}

// AccountChecker tests whether a nominal exists in the chart of accounts.
type AccountChecker interface {
	Exists(n model.Nominal) bool
}

// Validate checks each transaction is non-empty and balanced and that every
// leg has a non-zero amount against a known account.
func Validate(txns []*model.SplitTransaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	for i, txn := range txns {
		pos := i + 1
		entries := txn.Entries()

		if entries.Len() == 0 {
			errs = append(errs, ValidationError{
				Rule:        RuleNonEmpty,
				Txn:         pos,
				Description: "transaction has no entries",
			})
			continue
		}

		if !txn.CheckBalance() {
			desc := "debit or credit total overflows"
			if dr, cr, err := entries.Totals(); err == nil {
				desc = fmt.Sprintf("debits (%d) != credits (%d)", dr, cr)
			}
			errs = append(errs, ValidationError{
				Rule:        RuleBalanced,
				Txn:         pos,
				Description: desc,
			})
		}

		for _, e := range entries.All() {
			if !accounts.Exists(e.Nominal) {
				errs = append(errs, ValidationError{
					Rule:        RuleKnownAccount,
					Txn:         pos,
					Nominal:     e.Nominal,
					Description: "unknown account",
				})
			}
			if e.Amount == 0 {
				errs = append(errs, ValidationError{
					Rule:        RuleNonZero,
					Txn:         pos,
					Nominal:     e.Nominal,
					Description: "leg has zero amount",
				})
			}
		}
	}

	return errs
}
