package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
)

// Header is the CSV header for journal.csv. Each row is one leg; legs of
// one transaction share the txn column.
const Header = "txn,date,nominal,side,amount,note,source,reference"

const (
	numFields  = 8
	dateFormat = "2006-01-02"
	colTxn     = 0
	colDate    = 1
	colNominal = 2
	colSide    = 3
	colAmount  = 4
	colNote    = 5
	colSource  = 6
	colRef     = 7
)

// ReadTransactions reads journal.csv. Transactions are returned in order of
// first appearance; date, note, source and reference come from a
// transaction's first row.
func ReadTransactions(r io.Reader, cur money.Currency) ([]*model.SplitTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	byKey := make(map[string]*model.SplitTransaction)
	var txns []*model.SplitTransaction
	for i, rec := range records[1:] {
		key := rec[colTxn]
		txn, seen := byKey[key]
		if !seen {
			txn, err = unmarshalHeader(rec)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			byKey[key] = txn
			txns = append(txns, txn)
		}

		entry, err := UnmarshalEntry(rec, cur)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txn.AddEntry(entry)
	}
	return txns, nil
}

// WriteTransactions writes txns to a journal.csv writer, including header.
// The txn column is the persisted ID when assigned, otherwise the
// transaction's 1-based position.
func WriteTransactions(w io.Writer, txns []*model.SplitTransaction, cur money.Currency) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for i, txn := range txns {
		key := strconv.Itoa(i + 1)
		if id, ok := txn.ID(); ok {
			key = strconv.FormatInt(id, 10)
		}
		for _, e := range txn.Entries().All() {
			if err := cw.Write(MarshalLeg(key, txn, e, cur)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLeg converts one leg of txn to a CSV row.
func MarshalLeg(key string, txn *model.SplitTransaction, e model.Entry, cur money.Currency) []string {
	row := make([]string, numFields)
	row[colTxn] = key
	row[colDate] = txn.Date().Format(dateFormat)
	row[colNominal] = e.Nominal.String()
	row[colSide] = string(e.Side)
	row[colAmount] = cur.String(e.Amount)
	row[colNote] = txn.Note()
	row[colSource] = txn.Source()
	if ref := txn.Reference(); ref != 0 {
		row[colRef] = strconv.FormatInt(ref, 10)
	}
	return row
}

// UnmarshalEntry converts the leg columns of a CSV row to an Entry.
func UnmarshalEntry(record []string, cur money.Currency) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	nominal, err := model.NewNominal(record[colNominal])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing nominal: %w", err)
	}

	side, err := model.ParseSide(record[colSide])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing side for %s: %w", nominal, err)
	}

	amount, err := cur.Parse(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount for %s: %w", nominal, err)
	}

	return model.NewEntry(nominal, side, amount)
}

func unmarshalHeader(record []string) (*model.SplitTransaction, error) {
	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	opts := []model.TxnOption{
		model.WithDate(date),
		model.WithNote(record[colNote]),
		model.WithSource(record[colSource]),
	}
	if record[colRef] != "" {
		ref, err := strconv.ParseInt(record[colRef], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing reference %q: %w", record[colRef], err)
		}
		opts = append(opts, model.WithReference(ref))
	}
	return model.NewSplitTransaction(opts...), nil
}
