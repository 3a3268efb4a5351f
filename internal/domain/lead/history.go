package lead

import (
	"time"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/identity"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
)

// Actor is a point-in-time snapshot of the user who performed a change.
// It is embedded in history entries so the audit trail stays stable even if
// the user record changes later.
type Actor struct {
	ID   uuid.UUID     `json:"id"`
	Name string        `json:"name"`
	Role identity.Role `json:"role"`
}

// ActorFromUser snapshots a user for the audit trail
func ActorFromUser(u *identity.User) Actor {
	return Actor{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}

// HistoryEntry is an immutable audit record of one lead update. Exactly one
// entry is written per update that changed at least one field; entries are
// never modified or deleted.
type HistoryEntry struct {
	shared.BaseEntity
	LeadID    uuid.UUID
	ChangedAt time.Time
	ChangedBy Actor
	Diff      map[string]FieldChange
}

// NewHistoryEntry creates a history entry for a change applied at changedAt
func NewHistoryEntry(leadID uuid.UUID, changedAt time.Time, changedBy Actor, diff map[string]FieldChange) *HistoryEntry {
	return &HistoryEntry{
		BaseEntity: shared.NewBaseEntity(),
		LeadID:     leadID,
		ChangedAt:  changedAt,
		ChangedBy:  changedBy,
		Diff:       diff,
	}
}
