package lead

import (
	"time"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
)

// =============================================================================
// Lead DTOs
// =============================================================================

// LeadRequest is the payload for creating or updating a lead. Field rules are
// enforced by the domain validator so that API and CSV import report the same
// messages.
type LeadRequest struct {
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	PropertyType string   `json:"propertyType"`
	BHK          *string  `json:"bhk"`
	Purpose      string   `json:"purpose"`
	BudgetMin    *int64   `json:"budgetMin"`
	BudgetMax    *int64   `json:"budgetMax"`
	Timeline     string   `json:"timeline"`
	Source       string   `json:"source"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`

	// UpdatedAt is the record timestamp the client last saw. It drives the
	// stale-update check and is ignored on create.
	UpdatedAt *time.Time `json:"updatedAt"`
}

// ToCandidate converts the request into an unvalidated domain candidate
func (r *LeadRequest) ToCandidate() lead.Candidate {
	c := lead.Candidate{
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		City:           lead.City(r.City),
		PropertyType:   lead.PropertyType(r.PropertyType),
		Purpose:        lead.Purpose(r.Purpose),
		BudgetMin:      r.BudgetMin,
		BudgetMax:      r.BudgetMax,
		Timeline:       lead.Timeline(r.Timeline),
		Source:         lead.Source(r.Source),
		Status:         lead.Status(r.Status),
		Notes:          r.Notes,
		Tags:           r.Tags,
		KnownUpdatedAt: r.UpdatedAt,
	}
	if r.BHK != nil && *r.BHK != "" {
		bhk := lead.BHK(*r.BHK)
		c.BHK = &bhk
	}
	return c
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	PropertyType string    `json:"propertyType"`
	BHK          *string   `json:"bhk"`
	Purpose      string    `json:"purpose"`
	BudgetMin    *int64    `json:"budgetMin"`
	BudgetMax    *int64    `json:"budgetMax"`
	Timeline     string    `json:"timeline"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	Tags         []string  `json:"tags"`
	OwnerID      uuid.UUID `json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewLeadResponse converts a domain lead to its API representation
func NewLeadResponse(l *lead.Lead) *LeadResponse {
	resp := &LeadResponse{
		ID:           l.ID,
		FullName:     l.FullName,
		Email:        l.Email,
		Phone:        l.Phone,
		City:         string(l.City),
		PropertyType: string(l.PropertyType),
		Purpose:      string(l.Purpose),
		BudgetMin:    l.BudgetMin,
		BudgetMax:    l.BudgetMax,
		Timeline:     string(l.Timeline),
		Source:       string(l.Source),
		Status:       string(l.Status),
		Notes:        l.Notes,
		Tags:         l.Tags,
		OwnerID:      l.OwnerID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.BHK != nil {
		s := string(*l.BHK)
		resp.BHK = &s
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

// =============================================================================
// Listing DTOs
// =============================================================================

// ListRequest carries the query parameters of a lead listing
type ListRequest struct {
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
	Sort         string `form:"sort"`
	City         string `form:"city"`
	PropertyType string `form:"propertyType"`
	Status       string `form:"status"`
	Timeline     string `form:"timeline"`
	Search       string `form:"search"`
}

// =============================================================================
// History DTOs
// =============================================================================

// ActorResponse identifies the user who made a change, as recorded at the time
type ActorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

// HistoryResponse represents one audit entry in API responses
type HistoryResponse struct {
	ID        uuid.UUID                   `json:"id"`
	LeadID    uuid.UUID                   `json:"leadId"`
	ChangedAt time.Time                   `json:"changedAt"`
	ChangedBy ActorResponse               `json:"changedBy"`
	Diff      map[string]lead.FieldChange `json:"diff"`
}

// NewHistoryResponse converts a domain history entry to its API representation
func NewHistoryResponse(e *lead.HistoryEntry) *HistoryResponse {
	return &HistoryResponse{
		ID:     e.ID,
		LeadID: e.LeadID,
		ChangedBy: ActorResponse{
			ID:   e.ChangedBy.ID,
			Name: e.ChangedBy.Name,
			Role: string(e.ChangedBy.Role),
		},
		ChangedAt: e.ChangedAt,
		Diff:      e.Diff,
	}
}
