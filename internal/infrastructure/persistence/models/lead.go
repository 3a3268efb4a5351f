package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"go.uber.org/zap"
)

var modelLogger = zap.L().Named("lead.models")

// LeadModel is the persistence model for the Lead domain entity.
type LeadModel struct {
	AggregateModel
	FullName     string            `gorm:"type:varchar(80);not null;index"`
	Email        string            `gorm:"type:varchar(200)"`
	Phone        string            `gorm:"type:varchar(15);not null;index"`
	City         lead.City         `gorm:"type:varchar(20);not null;index"`
	PropertyType lead.PropertyType `gorm:"type:varchar(20);not null;index"`
	BHK          *string           `gorm:"type:varchar(10)"`
	Purpose      lead.Purpose      `gorm:"type:varchar(10);not null"`
	BudgetMin    *int64
	BudgetMax    *int64
	Timeline     lead.Timeline  `gorm:"type:varchar(20);not null;index"`
	Source       lead.Source    `gorm:"type:varchar(20);not null"`
	Status       lead.Status    `gorm:"type:varchar(20);not null;index;default:'New'"`
	Notes        string         `gorm:"type:text"`
	Tags         pq.StringArray `gorm:"type:text[]"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *lead.Lead {
	l := &lead.Lead{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		FullName:     m.FullName,
		Email:        m.Email,
		Phone:        m.Phone,
		City:         m.City,
		PropertyType: m.PropertyType,
		Purpose:      m.Purpose,
		BudgetMin:    m.BudgetMin,
		BudgetMax:    m.BudgetMax,
		Timeline:     m.Timeline,
		Source:       m.Source,
		Status:       m.Status,
		Notes:        m.Notes,
		Tags:         []string(m.Tags),
		OwnerID:      m.OwnerID,
	}
	if m.BHK != nil {
		bhk := lead.BHK(*m.BHK)
		l.BHK = &bhk
	}
	return l
}

// FromDomain populates the persistence model from a domain Lead entity.
func (m *LeadModel) FromDomain(l *lead.Lead) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.FullName = l.FullName
	m.Email = l.Email
	m.Phone = l.Phone
	m.City = l.City
	m.PropertyType = l.PropertyType
	m.BHK = nil
	if l.BHK != nil {
		s := string(*l.BHK)
		m.BHK = &s
	}
	m.Purpose = l.Purpose
	m.BudgetMin = l.BudgetMin
	m.BudgetMax = l.BudgetMax
	m.Timeline = l.Timeline
	m.Source = l.Source
	m.Status = l.Status
	m.Notes = l.Notes
	m.Tags = pq.StringArray(l.Tags)
	m.OwnerID = l.OwnerID
}

// LeadModelFromDomain creates a new persistence model from a domain Lead entity.
func LeadModelFromDomain(l *lead.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}

// LeadHistoryModel is the persistence model for lead audit entries.
// ChangedBy and Diff are stored as JSON documents; entries are append-only.
type LeadHistoryModel struct {
	BaseModel
	LeadID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ChangedAt time.Time `gorm:"not null;index"`
	ChangedBy string    `gorm:"type:jsonb;not null"`
	Diff      string    `gorm:"type:jsonb;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (LeadHistoryModel) TableName() string {
	return "lead_history"
}

// ToDomain converts the persistence model to a domain HistoryEntry.
func (m *LeadHistoryModel) ToDomain() *lead.HistoryEntry {
	entry := &lead.HistoryEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		LeadID:     m.LeadID,
		ChangedAt:  m.ChangedAt,
		Diff:       make(map[string]lead.FieldChange),
	}

	if m.ChangedBy != "" {
		var actor lead.Actor
		if err := json.Unmarshal([]byte(m.ChangedBy), &actor); err != nil {
			modelLogger.Warn("failed to parse changed_by JSON",
				zap.String("history_id", m.ID.String()),
				zap.Error(err))
		} else {
			entry.ChangedBy = actor
		}
	}

	if m.Diff != "" && m.Diff != "{}" {
		var diff map[string]lead.FieldChange
		if err := json.Unmarshal([]byte(m.Diff), &diff); err != nil {
			modelLogger.Warn("failed to parse diff JSON",
				zap.String("history_id", m.ID.String()),
				zap.Error(err))
		} else {
			entry.Diff = diff
		}
	}

	return entry
}

// FromDomain populates the persistence model from a domain HistoryEntry.
func (m *LeadHistoryModel) FromDomain(e *lead.HistoryEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.LeadID = e.LeadID
	m.ChangedAt = e.ChangedAt

	if jsonBytes, err := json.Marshal(e.ChangedBy); err == nil {
		m.ChangedBy = string(jsonBytes)
	} else {
		m.ChangedBy = "{}"
	}

	if jsonBytes, err := json.Marshal(e.Diff); err == nil {
		m.Diff = string(jsonBytes)
	} else {
		m.Diff = "{}"
	}
}

// LeadHistoryModelFromDomain creates a new persistence model from a domain HistoryEntry.
func LeadHistoryModelFromDomain(e *lead.HistoryEntry) *LeadHistoryModel {
	m := &LeadHistoryModel{}
	m.FromDomain(e)
	return m
}
