package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
)

// Header is the CSV header for chart-of-accounts.csv.
var Header = []string{"nominal", "name", "type", "parent", "debit", "credit"}

const (
	numFields = 6
	colNom    = 0
	colName   = 1
	colType   = 2
	colParent = 3
	colDebit  = 4
	colCredit = 5
)

// ReadAccounts reads chart-of-accounts.csv. Balances are in major units of cur.
func ReadAccounts(r io.Reader, cur money.Currency) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec, cur)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account, cur money.Currency) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct, cur)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account, cur money.Currency) []string {
	row := make([]string, numFields)
	row[colNom] = acct.Nominal.String()
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colParent] = acct.ParentNominal.String()
	row[colDebit] = cur.String(acct.Debit)
	row[colCredit] = cur.String(acct.Credit)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string, cur money.Currency) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	nominal, err := model.NewNominal(record[colNom])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing nominal: %w", err)
	}

	typ, err := model.ParseAccountType(record[colType])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing type for %s: %w", nominal, err)
	}

	var parent model.Nominal
	if record[colParent] != "" {
		parent, err = model.NewNominal(record[colParent])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing parent of %s: %w", nominal, err)
		}
	}

	debit, err := parseBalance(record[colDebit], cur)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing debit for %s: %w", nominal, err)
	}
	credit, err := parseBalance(record[colCredit], cur)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing credit for %s: %w", nominal, err)
	}

	return model.Account{
		Nominal:       nominal,
		Type:          typ,
		Name:          record[colName],
		Debit:         debit,
		Credit:        credit,
		ParentNominal: parent,
	}, nil
}

func parseBalance(s string, cur money.Currency) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := cur.Parse(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, model.ErrNegativeAmount
	}
	return v, nil
}
