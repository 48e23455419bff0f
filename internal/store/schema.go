package store

// Schema creates the ledger tables. Account balances are maintained by the
// entries trigger, so persisting a transaction also posts it.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    nominal  TEXT PRIMARY KEY,
    parent   TEXT NOT NULL DEFAULT '',
    type     TEXT NOT NULL CHECK (type IN ('real','asset','liability','income','expense','equity')),
    name     TEXT NOT NULL,
    debit    INTEGER NOT NULL DEFAULT 0 CHECK (debit >= 0),
    credit   INTEGER NOT NULL DEFAULT 0 CHECK (credit >= 0),
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    date       TEXT NOT NULL,            -- RFC 3339
    note       TEXT NOT NULL DEFAULT '',
    source     TEXT NOT NULL DEFAULT '',
    reference  INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS entries (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    txn_id   INTEGER NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    nominal  TEXT NOT NULL REFERENCES accounts(nominal),
    side     TEXT NOT NULL CHECK (side IN ('DR','CR')),
    amount   INTEGER NOT NULL CHECK (amount >= 0),
    UNIQUE(txn_id, position)
);

CREATE INDEX IF NOT EXISTS idx_entries_nominal ON entries(nominal);

CREATE TRIGGER IF NOT EXISTS trg_entries_post AFTER INSERT ON entries
BEGIN
    UPDATE accounts
    SET debit  = debit  + CASE WHEN NEW.side = 'DR' THEN NEW.amount ELSE 0 END,
        credit = credit + CASE WHEN NEW.side = 'CR' THEN NEW.amount ELSE 0 END
    WHERE nominal = NEW.nominal;
END;
`

// InitializeSchema creates all tables if they don't exist.
func (s *Store) InitializeSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	return nil
}
