package services

import "github.com/SscSPs/ledger_core/internal/core/domain"

// chartTemplateRow is one account of the default fuel-station chart.
type chartTemplateRow struct {
	Code          string
	ParentCode    string
	Name          string
	Type          domain.AccountType
	Nature        domain.AccountNature
	IsParent      bool
	SystemAccount string
}

// defaultChart is ordered so that every parent precedes its children.
var defaultChart = []chartTemplateRow{
	{Code: "1", Name: "Assets", Type: domain.Asset, Nature: domain.DebitNature, IsParent: true},
	{Code: "11", ParentCode: "1", Name: "Current Assets", Type: domain.Asset, Nature: domain.DebitNature, IsParent: true},
	{Code: "111", ParentCode: "11", Name: "Cash and Cash Equivalents", Type: domain.Asset, Nature: domain.DebitNature, IsParent: true},
	{Code: "1111", ParentCode: "111", Name: "Cash on Hand", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "cash"},
	{Code: "1112", ParentCode: "111", Name: "Station Cash Boxes", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "cash_box"},
	{Code: "1113", ParentCode: "111", Name: "Bank Accounts", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "bank"},
	{Code: "112", ParentCode: "11", Name: "Receivables", Type: domain.Asset, Nature: domain.DebitNature, IsParent: true},
	{Code: "1121", ParentCode: "112", Name: "Customer Receivables", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "accounts_receivable"},
	{Code: "1122", ParentCode: "112", Name: "Card Settlements Receivable", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "card_clearing"},
	{Code: "113", ParentCode: "11", Name: "Fuel Inventory", Type: domain.Asset, Nature: domain.DebitNature, IsParent: true},
	{Code: "1131", ParentCode: "113", Name: "Gasoline Inventory", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "inventory_gasoline"},
	{Code: "1132", ParentCode: "113", Name: "Diesel Inventory", Type: domain.Asset, Nature: domain.DebitNature, SystemAccount: "inventory_diesel"},
	{Code: "114", ParentCode: "11", Name: "Lubricants and Shop Inventory", Type: domain.Asset, Nature: domain.DebitNature},
	{Code: "12", ParentCode: "1", Name: "Fixed Assets", Type: domain.Asset, Nature: domain.DebitNature, IsParent: true},
	{Code: "121", ParentCode: "12", Name: "Pumps and Dispensers", Type: domain.Asset, Nature: domain.DebitNature},
	{Code: "122", ParentCode: "12", Name: "Storage Tanks", Type: domain.Asset, Nature: domain.DebitNature},
	{Code: "123", ParentCode: "12", Name: "Buildings and Canopies", Type: domain.Asset, Nature: domain.DebitNature},
	{Code: "129", ParentCode: "12", Name: "Accumulated Depreciation", Type: domain.Asset, Nature: domain.CreditNature},

	{Code: "2", Name: "Liabilities", Type: domain.Liability, Nature: domain.CreditNature, IsParent: true},
	{Code: "21", ParentCode: "2", Name: "Current Liabilities", Type: domain.Liability, Nature: domain.CreditNature, IsParent: true},
	{Code: "211", ParentCode: "21", Name: "Supplier Payables", Type: domain.Liability, Nature: domain.CreditNature, SystemAccount: "accounts_payable"},
	{Code: "212", ParentCode: "21", Name: "Taxes Payable", Type: domain.Liability, Nature: domain.CreditNature, SystemAccount: "vat_payable"},
	{Code: "213", ParentCode: "21", Name: "Accrued Salaries", Type: domain.Liability, Nature: domain.CreditNature},
	{Code: "22", ParentCode: "2", Name: "Long-term Liabilities", Type: domain.Liability, Nature: domain.CreditNature, IsParent: true},
	{Code: "221", ParentCode: "22", Name: "Long-term Loans", Type: domain.Liability, Nature: domain.CreditNature},

	{Code: "3", Name: "Equity", Type: domain.Equity, Nature: domain.CreditNature, IsParent: true},
	{Code: "31", ParentCode: "3", Name: "Owner's Capital", Type: domain.Equity, Nature: domain.CreditNature, SystemAccount: "capital"},
	{Code: "32", ParentCode: "3", Name: "Retained Earnings", Type: domain.Equity, Nature: domain.CreditNature, SystemAccount: "retained_earnings"},

	{Code: "4", Name: "Revenue", Type: domain.Revenue, Nature: domain.CreditNature, IsParent: true},
	{Code: "41", ParentCode: "4", Name: "Fuel Sales", Type: domain.Revenue, Nature: domain.CreditNature, IsParent: true},
	{Code: "411", ParentCode: "41", Name: "Gasoline Sales", Type: domain.Revenue, Nature: domain.CreditNature, SystemAccount: "sales_gasoline"},
	{Code: "412", ParentCode: "41", Name: "Diesel Sales", Type: domain.Revenue, Nature: domain.CreditNature, SystemAccount: "sales_diesel"},
	{Code: "42", ParentCode: "4", Name: "Other Revenue", Type: domain.Revenue, Nature: domain.CreditNature, IsParent: true},
	{Code: "421", ParentCode: "42", Name: "Lubricant and Shop Sales", Type: domain.Revenue, Nature: domain.CreditNature},
	{Code: "422", ParentCode: "42", Name: "Service Income", Type: domain.Revenue, Nature: domain.CreditNature},

	{Code: "5", Name: "Expenses", Type: domain.Expense, Nature: domain.DebitNature, IsParent: true},
	{Code: "51", ParentCode: "5", Name: "Cost of Fuel Sold", Type: domain.Expense, Nature: domain.DebitNature, SystemAccount: "cogs_fuel"},
	{Code: "52", ParentCode: "5", Name: "Operating Expenses", Type: domain.Expense, Nature: domain.DebitNature, IsParent: true},
	{Code: "521", ParentCode: "52", Name: "Salaries and Wages", Type: domain.Expense, Nature: domain.DebitNature},
	{Code: "522", ParentCode: "52", Name: "Electricity and Utilities", Type: domain.Expense, Nature: domain.DebitNature},
	{Code: "523", ParentCode: "52", Name: "Maintenance", Type: domain.Expense, Nature: domain.DebitNature},
	{Code: "524", ParentCode: "52", Name: "Rent", Type: domain.Expense, Nature: domain.DebitNature},
	{Code: "53", ParentCode: "5", Name: "Depreciation Expense", Type: domain.Expense, Nature: domain.DebitNature},
	{Code: "54", ParentCode: "5", Name: "Fuel Shrinkage and Evaporation", Type: domain.Expense, Nature: domain.DebitNature},
}

// seedLevel derives the level of a template account from its code length.
// This rule only applies to the template; created accounts take parent level + 1.
func seedLevel(code string) int {
	switch n := len(code); {
	case n <= 3:
		return n
	default:
		return 4
	}
}
