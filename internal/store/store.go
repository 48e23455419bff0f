// Package store persists the chart of accounts and transactions in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/dbook/internal/model"
)

// ErrTransactionNotFound is returned when no transaction has the requested ID.
var ErrTransactionNotFound = errors.New("transaction not found")

// Store is a SQLite-backed ledger.
type Store struct {
	db   *sql.DB
	path string
	log  logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// Open opens (creating if needed) the database at path and provisions the
// schema. Foreign keys are enforced and WAL journaling is enabled.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; serialize through a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db, path: path, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.InitializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// withTx runs fn in a transaction, committing if fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%v, rollback: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveAccounts replaces the stored chart with accounts, in order. Stored
// accounts missing from accounts are deleted; deleting one that has entries
// fails and leaves the stored chart unchanged.
func (s *Store) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO accounts(nominal, parent, type, name, debit, credit, position)
			VALUES(?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(nominal) DO UPDATE
			SET parent=excluded.parent, type=excluded.type, name=excluded.name,
			    debit=excluded.debit, credit=excluded.credit, position=excluded.position`)
		if err != nil {
			return fmt.Errorf("preparing account insert: %w", err)
		}
		defer stmt.Close()

		keep := make(map[string]bool, len(accounts))
		for i, a := range accounts {
			if _, err := stmt.ExecContext(ctx,
				a.Nominal.String(), a.ParentNominal.String(), string(a.Type), a.Name,
				a.Debit, a.Credit, i,
			); err != nil {
				return fmt.Errorf("saving account %s: %w", a.Nominal, err)
			}
			keep[a.Nominal.String()] = true
		}

		stale, err := staleNominals(ctx, tx, keep)
		if err != nil {
			return err
		}
		for _, n := range stale {
			if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE nominal = ?`, n); err != nil {
				return fmt.Errorf("deleting account %s: %w", n, err)
			}
		}

		s.log.WithFields(logrus.Fields{"accounts": len(accounts), "deleted": len(stale)}).Debug("saved chart")
		return nil
	})
}

func staleNominals(ctx context.Context, tx *sql.Tx, keep map[string]bool) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT nominal FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		if !keep[n] {
			stale = append(stale, n)
		}
	}
	return stale, rows.Err()
}

// LoadAccounts returns the stored chart in saved order.
func (s *Store) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT nominal, parent, type, name, debit, credit
		FROM accounts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var nominal, parent, typ string
		if err := rows.Scan(&nominal, &parent, &typ, &a.Name, &a.Debit, &a.Credit); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Nominal = model.Nominal(nominal)
		a.ParentNominal = model.Nominal(parent)
		a.Type = model.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SaveTransaction persists a balanced, non-empty transaction, assigns its ID
// and returns it. Inserting the legs posts them to account balances.
func (s *Store) SaveTransaction(ctx context.Context, txn *model.SplitTransaction) (int64, error) {
	ids, err := s.SaveTransactions(ctx, []*model.SplitTransaction{txn})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// SaveTransactions persists txns in one database transaction: either all of
// them are saved and posted or none are. IDs are assigned to txns only after
// the commit succeeds.
func (s *Store) SaveTransactions(ctx context.Context, txns []*model.SplitTransaction) ([]int64, error) {
	for i, txn := range txns {
		if txn.Entries().Len() == 0 {
			return nil, fmt.Errorf("saving txn %d: %w", i+1, model.ErrEmptyTransaction)
		}
		if !txn.CheckBalance() {
			return nil, fmt.Errorf("saving txn %d: %w", i+1, model.ErrUnbalancedTransaction)
		}
	}

	ids := make([]int64, 0, len(txns))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i, txn := range txns {
			id, err := insertTransaction(ctx, tx, txn)
			if err != nil {
				return fmt.Errorf("saving txn %d: %w", i+1, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, txn := range txns {
		txn.SetID(ids[i])
		s.log.WithFields(logrus.Fields{"txn_id": ids[i], "legs": txn.Entries().Len()}).Debug("saved transaction")
	}
	return ids, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, txn *model.SplitTransaction) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions(date, note, source, reference)
		VALUES(?, ?, ?, ?)`,
		txn.Date().Format(time.RFC3339Nano), txn.Note(), txn.Source(), txn.Reference())
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading transaction id: %w", err)
	}

	for i, e := range txn.Entries().All() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entries(txn_id, position, nominal, side, amount)
			VALUES(?, ?, ?, ?, ?)`,
			id, i, e.Nominal.String(), string(e.Side), e.Amount,
		); err != nil {
			return 0, fmt.Errorf("inserting entry %d (%s): %w", i, e.Nominal, err)
		}
	}
	return id, nil
}

// Transaction loads one transaction with its legs.
func (s *Store) Transaction(ctx context.Context, id int64) (*model.SplitTransaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT date, note, source, reference FROM transactions WHERE id = ?`, id)

	var date, note, source string
	var ref int64
	if err := row.Scan(&date, &note, &source, &ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("querying transaction %d: %w", id, err)
	}

	d, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return nil, fmt.Errorf("parsing date of transaction %d: %w", id, err)
	}

	txn := model.NewSplitTransaction(
		model.WithDate(d),
		model.WithNote(note),
		model.WithSource(source),
		model.WithReference(ref),
	).SetID(id)

	rows, err := s.db.QueryContext(ctx, `
		SELECT nominal, side, amount FROM entries WHERE txn_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying entries of transaction %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var nominal, side string
		var amount int64
		if err := rows.Scan(&nominal, &side, &amount); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e, err := model.NewEntry(model.Nominal(nominal), model.Side(side), amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", id, err)
		}
		txn.AddEntry(e)
	}
	return txn, rows.Err()
}

// TransactionIDs returns the IDs of all stored transactions in order.
func (s *Store) TransactionIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning transaction id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
