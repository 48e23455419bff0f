package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/dbook/internal/chart"
	"github.com/cleared-dev/dbook/internal/model"
	"github.com/cleared-dev/dbook/internal/money"
	"github.com/cleared-dev/dbook/internal/tree"
)

// ChartFile is the chart of accounts path relative to a project root.
const ChartFile = "accounts/chart-of-accounts.csv"

// Service provides lookup over the chart of accounts tree.
type Service struct {
	root *chart.Node
	cur  money.Currency
}

// NewService builds the chart tree from flat account rows.
func NewService(accounts []model.Account, cur money.Currency) (*Service, error) {
	root, err := chart.Build(accounts)
	if err != nil {
		return nil, fmt.Errorf("building chart: %w", err)
	}
	return &Service{root: root, cur: cur}, nil
}

// Load reads chart-of-accounts.csv from a project root and returns a Service.
func Load(repoRoot string, cur money.Currency) (*Service, error) {
	path := filepath.Join(repoRoot, ChartFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f, cur)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts, cur)
}

// Root returns the chart tree.
func (s *Service) Root() *chart.Node {
	return s.root
}

// Currency returns the currency balances are kept in.
func (s *Service) Currency() money.Currency {
	return s.cur
}

// All returns copies of all accounts in chart order.
func (s *Service) All() []model.Account {
	return chart.Flatten(s.root)
}

// Get returns the live account for a nominal.
func (s *Service) Get(n model.Nominal) (*model.Account, bool) {
	node := chart.Find(s.root, n)
	if node == nil {
		return nil, false
	}
	return node.Value(), true
}

// Exists reports whether a nominal exists in the chart.
func (s *Service) Exists(n model.Nominal) bool {
	return chart.Find(s.root, n) != nil
}

// ByType returns copies of all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	tree.Walk(s.root, func(n *chart.Node, _ int) bool {
		if a := n.Value(); a != nil && a.Type == accountType {
			result = append(result, *a)
		}
		return true
	})
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, filepath.Dir(ChartFile))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(repoRoot, ChartFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.All(), s.cur); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
