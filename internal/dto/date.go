package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// DateLayout is the calendar-day format used on the wire.
const DateLayout = "2006-01-02"

// Date is a calendar day carried in JSON as "YYYY-MM-DD". RFC3339 input is
// accepted and truncated to its day.
type Date struct {
	time.Time
}

// NewDate wraps t as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: domain.DateOnly(t)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
		}
	}
	d.Time = domain.DateOnly(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}
