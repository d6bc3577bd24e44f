package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a journal entry as submitted by clients.
type JournalLineRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description *string         `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
type CreateJournalEntryRequest struct {
	StationID     *string              `json:"stationId"`
	EntryDate     Date                 `json:"entryDate"`
	Description   *string              `json:"description"`
	ReferenceType *string              `json:"referenceType"`
	ReferenceID   *string              `json:"referenceId"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,dive"`
}

// UpdateJournalEntryRequest defines the mutable fields of a draft entry.
// Lines, when present, replace the entry's lines wholesale.
type UpdateJournalEntryRequest struct {
	StationID     *string              `json:"stationId"`
	Description   *string              `json:"description"`
	ReferenceType *string              `json:"referenceType"`
	ReferenceID   *string              `json:"referenceId"`
	Lines         []JournalLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ToDomainLines converts request lines into numbered domain lines.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalEntryLine{
			LineNo:      i + 1,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return out
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"id"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountId"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description *string         `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"id"`
	EntryNumber   string                `json:"entryNumber"`
	EntryDate     Date                  `json:"entryDate"`
	StationID     *string               `json:"stationId,omitempty"`
	Description   *string               `json:"description,omitempty"`
	ReferenceType *string               `json:"referenceType,omitempty"`
	ReferenceID   *string               `json:"referenceId,omitempty"`
	TotalDebit    decimal.Decimal       `json:"totalDebit"`
	TotalCredit   decimal.Decimal       `json:"totalCredit"`
	Status        domain.JournalStatus  `json:"status"`
	PostedBy      *string               `json:"postedBy,omitempty"`
	PostedAt      *time.Time            `json:"postedAt,omitempty"`
	Lines         []JournalLineResponse `json:"lines"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     NewDate(e.EntryDate),
		StationID:     e.StationID,
		Description:   e.Description,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		TotalDebit:    e.TotalDebit,
		TotalCredit:   e.TotalCredit,
		Status:        e.Status,
		PostedBy:      e.PostedBy,
		PostedAt:      e.PostedAt,
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Status    *string    `form:"status" binding:"omitempty,entrystatus"`
	StationID *string    `form:"stationId"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string    `form:"nextToken"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListJournalEntriesParams) ToFilter() domain.JournalFilter {
	filter := domain.JournalFilter{StationID: p.StationID, From: p.From, To: p.To}
	if p.Status != nil {
		s := domain.JournalStatus(*p.Status)
		filter.Status = &s
	}
	return filter
}

// ListJournalEntriesResponse wraps one page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
