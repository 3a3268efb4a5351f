package lead

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/identity"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
)

// Contractual errors surfaced to clients. The messages are part of the API
// and must not be reworded.
var (
	ErrEditForbidden = shared.NewDomainError("FORBIDDEN",
		"You do not have permission to edit this lead.")
	ErrStaleRecord = shared.NewDomainError("CONCURRENCY_CONFLICT",
		"This record has been updated by someone else. Please refresh and try again.")
	ErrMissingLeadID = shared.NewDomainError("INVALID_INPUT", "Lead ID is missing")
)

const (
	defaultPage         = 1
	defaultLimit        = 10
	maxLimit            = 100
	defaultHistoryLimit = 5
)

// LeadService handles lead business operations: creation, the guarded update
// pipeline, listing and the audit trail.
type LeadService struct {
	leadRepo    lead.LeadRepository
	historyRepo lead.HistoryRepository
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo lead.LeadRepository, historyRepo lead.HistoryRepository) *LeadService {
	return &LeadService{
		leadRepo:    leadRepo,
		historyRepo: historyRepo,
	}
}

// Create validates the request and persists a new lead owned by the actor
func (s *LeadService) Create(ctx context.Context, actor *identity.User, req LeadRequest) (*LeadResponse, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}

	c := req.ToCandidate()
	c.Normalize()
	if errs := c.Validate(); errs != nil {
		return nil, errs
	}

	l := lead.New(c, actor.ID)
	if err := s.leadRepo.Insert(ctx, l); err != nil {
		return nil, err
	}
	return NewLeadResponse(l), nil
}

// GetByID returns a single lead
func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*LeadResponse, error) {
	if id == uuid.Nil {
		return nil, ErrMissingLeadID
	}
	l, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewLeadResponse(l), nil
}

// Update runs the guarded update pipeline. The checks run in a fixed order:
// authentication, identity, existence, ownership, staleness, validation. Only
// when all pass is the record rewritten as a whole and, if anything actually
// changed, an audit entry appended.
func (s *LeadService) Update(ctx context.Context, actor *identity.User, id uuid.UUID, req LeadRequest) (*LeadResponse, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == uuid.Nil {
		return nil, ErrMissingLeadID
	}

	stored, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsAdmin() && stored.OwnerID != actor.ID {
		return nil, ErrEditForbidden
	}

	c := req.ToCandidate()
	if c.KnownUpdatedAt != nil && c.KnownUpdatedAt.Before(stored.UpdatedAt) {
		return nil, ErrStaleRecord
	}

	c.Normalize()
	if errs := c.Validate(); errs != nil {
		return nil, errs
	}

	previous := *stored
	stored.Apply(c)

	if err := s.leadRepo.Update(ctx, stored); err != nil {
		if err == shared.ErrConcurrencyConflict {
			return nil, ErrStaleRecord
		}
		return nil, err
	}

	diff := lead.Diff(&previous, stored)
	if len(diff) > 0 {
		entry := lead.NewHistoryEntry(stored.ID, stored.UpdatedAt, lead.ActorFromUser(actor), diff)
		if err := s.historyRepo.Append(ctx, entry); err != nil {
			return nil, err
		}
	}

	return NewLeadResponse(stored), nil
}

// List returns a filtered, sorted page of leads
func (s *LeadService) List(ctx context.Context, req ListRequest) (*shared.Paginated[LeadResponse], error) {
	q := s.buildQuery(req)

	leads, total, err := s.leadRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]LeadResponse, len(leads))
	for i := range leads {
		items[i] = *NewLeadResponse(&leads[i])
	}
	page := shared.NewPaginated(items, total, q.Page, q.Limit)
	return &page, nil
}

// History returns the most recent audit entries for a lead, newest first
func (s *LeadService) History(ctx context.Context, leadID uuid.UUID, limit int) ([]HistoryResponse, error) {
	if leadID == uuid.Nil {
		return nil, ErrMissingLeadID
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	// A history request for an unknown lead is a 404, not an empty list.
	if _, err := s.leadRepo.FindByID(ctx, leadID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByLead(ctx, leadID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryResponse, len(entries))
	for i := range entries {
		items[i] = *NewHistoryResponse(&entries[i])
	}
	return items, nil
}

// buildQuery normalizes listing parameters into a repository query
func (s *LeadService) buildQuery(req ListRequest) lead.ListQuery {
	q := lead.ListQuery{
		Page:         req.Page,
		Limit:        req.Limit,
		City:         req.City,
		PropertyType: req.PropertyType,
		Status:       req.Status,
		Timeline:     req.Timeline,
		Search:       strings.TrimSpace(req.Search),
	}
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	q.SortField, q.SortDesc = parseSort(req.Sort)
	return q
}

// parseSort splits a "field:direction" sort expression. Anything malformed
// falls back to updatedAt descending.
func parseSort(sort string) (string, bool) {
	if sort == "" {
		return "updatedAt", true
	}
	field, dir, found := strings.Cut(sort, ":")
	if field == "" {
		return "updatedAt", true
	}
	if !found {
		return field, false
	}
	return field, strings.EqualFold(dir, "desc")
}
