package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

var (
	// EntryBalanceTolerance is the maximum allowed |debit-credit| for a single journal entry.
	EntryBalanceTolerance = decimal.RequireFromString("0.001")
	// ReportBalanceTolerance is the strict upper bound on report-level differences.
	ReportBalanceTolerance = decimal.RequireFromString("0.01")
)

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
