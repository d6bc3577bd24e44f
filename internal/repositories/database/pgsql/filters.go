package pgsql

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
// Each condition uses a single %s where its placeholder goes.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(condition string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(condition, fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) addRaw(condition string) {
	w.clauses = append(w.clauses, condition)
}

// next returns the placeholder for an argument appended after the conditions.
func (w *whereBuilder) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

func accountFilterWhere(tenantID string, filter domain.AccountFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("tenant_id = %s", tenantID)
	if filter.AccountType != nil {
		w.add("account_type = %s", string(*filter.AccountType))
	}
	if filter.IsActive != nil {
		w.add("is_active = %s", *filter.IsActive)
	}
	if filter.LeafOnly {
		w.addRaw("is_parent = FALSE")
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		w.add("(code ILIKE %[1]s OR name ILIKE %[1]s OR name_en ILIKE %[1]s)", "%"+strings.TrimSpace(*filter.Search)+"%")
	}
	return w
}

func journalFilterWhere(tenantID string, filter domain.JournalFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("e.tenant_id = %s", tenantID)
	w.addRaw("e.deleted_at IS NULL")
	if filter.Status != nil {
		w.add("e.status = %s", string(*filter.Status))
	}
	if filter.StationID != nil && *filter.StationID != "" {
		w.add("e.station_id = %s", *filter.StationID)
	}
	if filter.From != nil {
		w.add("e.entry_date >= %s", domain.DateOnly(*filter.From))
	}
	if filter.To != nil {
		w.add("e.entry_date <= %s", domain.DateOnly(*filter.To))
	}
	return w
}

// postedLineWhere selects lines of posted, not-deleted entries. It expects
// journal_entries aliased as e and journal_entry_lines as l.
func postedLineWhere(tenantID string, filter domain.LineFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("e.tenant_id = %s", tenantID)
	w.addRaw("e.status = 'posted'")
	w.addRaw("e.deleted_at IS NULL")
	if len(filter.AccountIDs) > 0 {
		w.add("l.account_id = ANY(%s)", filter.AccountIDs)
	}
	if filter.From != nil {
		w.add("e.entry_date >= %s", domain.DateOnly(*filter.From))
	}
	if filter.To != nil {
		w.add("e.entry_date <= %s", domain.DateOnly(*filter.To))
	}
	if filter.Before != nil {
		w.add("e.entry_date < %s", domain.DateOnly(*filter.Before))
	}
	return w
}
