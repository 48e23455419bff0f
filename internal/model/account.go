package model

import "fmt"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeReal      AccountType = "real"
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeEquity    AccountType = "equity"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{
	AccountTypeReal,
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeIncome,
	AccountTypeExpense,
	AccountTypeEquity,
}

var naturalSides = map[AccountType]Side{
	AccountTypeReal:      SideNone,
	AccountTypeAsset:     SideDebit,
	AccountTypeLiability: SideCredit,
	AccountTypeIncome:    SideCredit,
	AccountTypeExpense:   SideDebit,
	AccountTypeEquity:    SideCredit,
}

// ParseAccountType returns the AccountType named by s.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if _, ok := naturalSides[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccountType, s)
	}
	return t, nil
}

// NaturalSide reports the side on which the type normally accumulates value.
// The real (root) type has no natural side.
func (t AccountType) NaturalSide() Side {
	return naturalSides[t]
}

// Balance nets dr and cr according to the type's natural side.
func (t AccountType) Balance(dr, cr int64) int64 {
	if t.NaturalSide() == SideCredit {
		return cr - dr
	}
	return dr - cr
}

// Account is the payload of one chart node. Debit and Credit are accumulated
// totals in minor currency units and are never negative.
type Account struct {
	Nominal       Nominal
	Type          AccountType
	Name          string
	Debit         int64
	Credit        int64
	ParentNominal Nominal // empty for the chart root
}

// NewAccount creates an account with zero balances.
func NewAccount(nominal Nominal, typ AccountType, name string) *Account {
	return &Account{Nominal: nominal, Type: typ, Name: name}
}

// Post adds amount to one side of the account. The account is unchanged
// when the new total would overflow.
func (a *Account) Post(side Side, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("posting %d to %s: %w", amount, a.Nominal, ErrNegativeAmount)
	}
	var balance *int64
	switch side {
	case SideDebit:
		balance = &a.Debit
	case SideCredit:
		balance = &a.Credit
	default:
		return fmt.Errorf("posting to %s: %w: %q", a.Nominal, ErrInvalidSide, side)
	}
	sum, err := AddAmounts(*balance, amount)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", a.Nominal, err)
	}
	*balance = sum
	return nil
}

// Balance returns the net position according to the account's natural side.
func (a *Account) Balance() int64 {
	return a.Type.Balance(a.Debit, a.Credit)
}
