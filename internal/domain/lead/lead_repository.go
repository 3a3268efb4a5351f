package lead

import (
	"context"

	"github.com/google/uuid"
)

// ListQuery describes a filtered, sorted, paginated listing of leads.
// Filters are conjunctive; empty filter values are ignored.
type ListQuery struct {
	Page  int
	Limit int

	// SortField is a lead field name such as "updatedAt"; SortDesc selects
	// the direction. Records with null sort-key values always sort last.
	SortField string
	SortDesc  bool

	City         string
	PropertyType string
	Status       string
	Timeline     string

	// Search is lowercased and split on whitespace; every term must match as
	// a case-insensitive substring of full name, email or phone.
	Search string
}

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByID finds a lead by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// List returns the page of leads matching the query along with the total
	// count of matching records before pagination
	List(ctx context.Context, q ListQuery) ([]Lead, int64, error)

	// Insert persists a new lead
	Insert(ctx context.Context, l *Lead) error

	// InsertBatch persists a batch of new leads in one statement
	InsertBatch(ctx context.Context, leads []*Lead) error

	// Update persists all fields of an existing lead guarded by its version;
	// returns shared.ErrConcurrencyConflict if the stored version moved on
	Update(ctx context.Context, l *Lead) error
}

// HistoryRepository defines the interface for lead history persistence
type HistoryRepository interface {
	// Append stores a new history entry
	Append(ctx context.Context, entry *HistoryEntry) error

	// FindByLead returns up to limit entries for a lead, newest first
	FindByLead(ctx context.Context, leadID uuid.UUID, limit int) ([]HistoryEntry, error)
}
