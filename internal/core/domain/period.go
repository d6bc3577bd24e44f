package domain

import "time"

// AccountingPeriod is a tenant's date range which, once closed, rejects new postings.
// Boundaries are inclusive calendar days.
type AccountingPeriod struct {
	PeriodID  string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
}

// Contains reports whether date falls inside the period.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}
