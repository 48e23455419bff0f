package model

import "errors"

var (
	// ErrEntryNotFound is returned when no entry in a transaction targets a nominal.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrUnbalancedTransaction is returned when an amount is requested for a
	// transaction whose debits and credits differ.
	ErrUnbalancedTransaction = errors.New("no amount for unbalanced transaction")
	// ErrEmptyTransaction is returned where a transaction must carry at least one leg.
	ErrEmptyTransaction = errors.New("transaction has no entries")
	// ErrOddTotal signals a balanced transaction whose unsigned total cannot be halved exactly.
	ErrOddTotal = errors.New("balanced transaction has odd unsigned total")
	// ErrAmountOverflow is returned when a sum of minor units does not fit in an int64.
	ErrAmountOverflow = errors.New("amount overflows int64")

	ErrInvalidNominal     = errors.New("invalid nominal")
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrInvalidSide        = errors.New("invalid entry side")
	ErrNegativeAmount     = errors.New("amount must not be negative")
)
