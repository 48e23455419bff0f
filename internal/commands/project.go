package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/dbook/internal/accounts"
	"github.com/cleared-dev/dbook/internal/config"
	"github.com/cleared-dev/dbook/internal/logging"
	"github.com/cleared-dev/dbook/internal/store"
)

// project is an opened dbook project directory.
type project struct {
	root  string
	cfg   *config.Config
	log   *logrus.Logger
	store *store.Store
}

func openProject(flags *rootFlags, logOut io.Writer) (*project, error) {
	root, err := filepath.Abs(flags.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyEnv(cfg, flags.envFile); err != nil {
		return nil, err
	}

	log, err := logging.New(logOut, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath(root, cfg), store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	log.WithField("db", st.Path()).Debug("opened ledger")

	return &project{root: root, cfg: cfg, log: log, store: st}, nil
}

func (p *project) Close() error {
	return p.store.Close()
}

// chart loads the chart of accounts with current balances from the ledger.
func (p *project) chart(ctx context.Context) (*accounts.Service, error) {
	accts, err := p.store.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading chart: %w", err)
	}
	return accounts.NewService(accts, p.cfg.Currency)
}

func dbPath(root string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.Storage.DBPath) {
		return cfg.Storage.DBPath
	}
	return filepath.Join(root, cfg.Storage.DBPath)
}
