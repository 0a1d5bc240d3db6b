package dto

import (
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit or credit line in an entry creation request.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	ProjectID   string          `json:"projectID"`
	PropertyID  string          `json:"propertyID"`
}

// CreateEntryRequest creates a journal entry, either as a draft or directly posted.
type CreateEntryRequest struct {
	CompanyID   string                   `json:"companyID" binding:"required"`
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Reference   *domain.EntryReference   `json:"reference"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomainLines converts request lines to domain lines for a given entry id.
func (r CreateEntryRequest) ToDomainLines(entryID string, newID func() string) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:      newID(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			ProjectID:   l.ProjectID,
			PropertyID:  l.PropertyID,
		}
	}
	return lines
}

// EntryResponse is the API shape of a journal entry header.
type EntryResponse struct {
	EntryID     string     `json:"entryID"`
	EntryNumber string     `json:"entryNumber"`
	EntryDate   time.Time  `json:"entryDate"`
	Description string     `json:"description"`
	Reference   string     `json:"reference,omitempty"`
	Status      string     `json:"status"`
	PostedBy    string     `json:"postedBy,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
}

// EntryLineResponse is the API shape of one entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// GetEntryResponse combines a header with its lines.
type GetEntryResponse struct {
	Entry EntryResponse       `json:"entry"`
	Lines []EntryLineResponse `json:"lines"`
}

// ToEntryResponse converts a domain entry to its API shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Status:      string(e.Status),
		PostedBy:    e.PostedBy,
		PostedAt:    e.PostedAt,
	}
	if !e.Reference.IsZero() {
		resp.Reference = e.Reference.String()
	}
	return resp
}

// ToEntryLineResponses converts domain lines to their API shape.
func ToEntryLineResponses(lines []domain.JournalEntryLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return responses
}
