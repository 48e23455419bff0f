package accounts

import "github.com/cleared-dev/dbook/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "llc_single_member":
		return llcSingleMemberChart()
	default:
		return llcSingleMemberChart()
	}
}

func llcSingleMemberChart() []model.Account {
	return []model.Account{
		{Nominal: "0000", Name: "COA", Type: model.AccountTypeReal},
		{Nominal: "1000", Name: "Assets", Type: model.AccountTypeAsset, ParentNominal: "0000"},
		{Nominal: "1010", Name: "Business Checking", Type: model.AccountTypeAsset, ParentNominal: "1000"},
		{Nominal: "1020", Name: "Business Savings", Type: model.AccountTypeAsset, ParentNominal: "1000"},
		{Nominal: "2000", Name: "Liabilities", Type: model.AccountTypeLiability, ParentNominal: "0000"},
		{Nominal: "2010", Name: "Credit Card", Type: model.AccountTypeLiability, ParentNominal: "2000"},
		{Nominal: "3000", Name: "Equity", Type: model.AccountTypeEquity, ParentNominal: "0000"},
		{Nominal: "3010", Name: "Owner's Equity", Type: model.AccountTypeEquity, ParentNominal: "3000"},
		{Nominal: "4000", Name: "Income", Type: model.AccountTypeIncome, ParentNominal: "0000"},
		{Nominal: "4010", Name: "Service Revenue", Type: model.AccountTypeIncome, ParentNominal: "4000"},
		{Nominal: "4020", Name: "Product Revenue", Type: model.AccountTypeIncome, ParentNominal: "4000"},
		{Nominal: "5000", Name: "Expenses", Type: model.AccountTypeExpense, ParentNominal: "0000"},
		{Nominal: "5010", Name: "Advertising & Marketing", Type: model.AccountTypeExpense, ParentNominal: "5000"},
		{Nominal: "5020", Name: "Software & SaaS", Type: model.AccountTypeExpense, ParentNominal: "5000"},
		{Nominal: "5030", Name: "Office Supplies", Type: model.AccountTypeExpense, ParentNominal: "5000"},
		{Nominal: "5040", Name: "Professional Services", Type: model.AccountTypeExpense, ParentNominal: "5000"},
		{Nominal: "5050", Name: "Shipping & Postage", Type: model.AccountTypeExpense, ParentNominal: "5000"},
	}
}
