package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// AccountTypes lists every valid type in statement order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountNature fixes the sign convention of an account's balance.
type AccountNature string

const (
	DebitNature  AccountNature = "debit"
	CreditNature AccountNature = "credit"
)

// IsValid reports whether n is a known nature.
func (n AccountNature) IsValid() bool {
	return n == DebitNature || n == CreditNature
}

// Signed returns the balance of the given debit/credit sums under this nature:
// debit accounts are debit-credit, credit accounts credit-debit.
func (n AccountNature) Signed(debit, credit decimal.Decimal) decimal.Decimal {
	if n == CreditNature {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// Account represents a node of a tenant's chart of accounts.
type Account struct {
	AccountID       string        `json:"id"`
	TenantID        string        `json:"tenantId"`
	ParentAccountID *string       `json:"parentId,omitempty"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	NameEn          *string       `json:"nameEn,omitempty"`
	AccountType     AccountType   `json:"type"`
	Nature          AccountNature `json:"nature"`
	Level           int           `json:"level"`
	IsParent        bool          `json:"isParent"`
	IsActive        bool          `json:"isActive"`
	SystemAccount   *string       `json:"systemAccount,omitempty"`
	Description     *string       `json:"description,omitempty"`
	AuditFields
}

// IsLeaf reports whether the account may receive journal lines.
func (a Account) IsLeaf() bool {
	return !a.IsParent
}

// AccountFilter narrows account listings. Nil fields are not applied.
type AccountFilter struct {
	AccountType *AccountType
	IsActive    *bool
	LeafOnly    bool
	Search      *string
}

// AccountNode is an account together with its ordered children.
type AccountNode struct {
	Account
	Children []AccountNode `json:"children"`
}

// AccountTree groups the chart of accounts into one forest per type.
type AccountTree struct {
	Assets      []AccountNode `json:"assets"`
	Liabilities []AccountNode `json:"liabilities"`
	Equity      []AccountNode `json:"equity"`
	Revenue     []AccountNode `json:"revenue"`
	Expenses    []AccountNode `json:"expenses"`
}

// AccountIndex is a flat arena of accounts keyed by id with child id lists.
// Children are kept sorted by code.
type AccountIndex struct {
	byID     map[string]*Account
	children map[string][]string
	roots    []string
}

// NewAccountIndex indexes the given accounts. Accounts whose parent is not in
// the set are treated as roots.
func NewAccountIndex(accounts []Account) *AccountIndex {
	ix := &AccountIndex{
		byID:     make(map[string]*Account, len(accounts)),
		children: make(map[string][]string),
	}
	for i := range accounts {
		acc := accounts[i]
		ix.byID[acc.AccountID] = &acc
	}
	for id, acc := range ix.byID {
		if acc.ParentAccountID != nil {
			if _, ok := ix.byID[*acc.ParentAccountID]; ok {
				ix.children[*acc.ParentAccountID] = append(ix.children[*acc.ParentAccountID], id)
				continue
			}
		}
		ix.roots = append(ix.roots, id)
	}
	ix.sortByCode(ix.roots)
	for parentID := range ix.children {
		ix.sortByCode(ix.children[parentID])
	}
	return ix
}

func (ix *AccountIndex) sortByCode(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return ix.byID[ids[i]].Code < ix.byID[ids[j]].Code
	})
}

// Get returns the account with the given id.
func (ix *AccountIndex) Get(id string) (*Account, bool) {
	acc, ok := ix.byID[id]
	return acc, ok
}

// Children returns the ids of the direct children of id, ordered by code.
func (ix *AccountIndex) Children(id string) []string {
	return ix.children[id]
}

// IsDescendant reports whether candidate lies in the subtree rooted at ancestorID
// (ancestorID itself included). Walking stops on a repeated id so a corrupted
// parent chain cannot loop.
func (ix *AccountIndex) IsDescendant(ancestorID, candidate string) bool {
	seen := make(map[string]struct{})
	current := candidate
	for {
		if current == ancestorID {
			return true
		}
		if _, dup := seen[current]; dup {
			return false
		}
		seen[current] = struct{}{}
		acc, ok := ix.byID[current]
		if !ok || acc.ParentAccountID == nil {
			return false
		}
		current = *acc.ParentAccountID
	}
}

// Descendants returns every id below id in breadth-first order.
func (ix *AccountIndex) Descendants(id string) []string {
	var out []string
	queue := append([]string(nil), ix.children[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, ix.children[next]...)
	}
	return out
}

// BuildTree returns the active forests per type. A child is attached only when
// it is active and shares its parent's type.
func (ix *AccountIndex) BuildTree() AccountTree {
	forests := make(map[AccountType][]AccountNode, len(AccountTypes))
	for _, rootID := range ix.roots {
		root := ix.byID[rootID]
		if !root.IsActive || root.ParentAccountID != nil {
			continue
		}
		forests[root.AccountType] = append(forests[root.AccountType], ix.buildNode(root))
	}
	return AccountTree{
		Assets:      nonNil(forests[Asset]),
		Liabilities: nonNil(forests[Liability]),
		Equity:      nonNil(forests[Equity]),
		Revenue:     nonNil(forests[Revenue]),
		Expenses:    nonNil(forests[Expense]),
	}
}

func (ix *AccountIndex) buildNode(acc *Account) AccountNode {
	node := AccountNode{Account: *acc, Children: []AccountNode{}}
	for _, childID := range ix.children[acc.AccountID] {
		child := ix.byID[childID]
		if !child.IsActive || child.AccountType != acc.AccountType {
			continue
		}
		node.Children = append(node.Children, ix.buildNode(child))
	}
	return node
}

func nonNil(nodes []AccountNode) []AccountNode {
	if nodes == nil {
		return []AccountNode{}
	}
	return nodes
}

// SeedResult reports how many template accounts were inserted and overwritten.
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
