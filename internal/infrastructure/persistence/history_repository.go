package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/riya0704/LeadTrak/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append stores a new history entry
func (r *GormHistoryRepository) Append(ctx context.Context, entry *lead.HistoryEntry) error {
	model := models.LeadHistoryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return shared.NewStorageError(err)
	}
	return nil
}

// FindByLead returns up to limit entries for a lead, newest first
func (r *GormHistoryRepository) FindByLead(ctx context.Context, leadID uuid.UUID, limit int) ([]lead.HistoryEntry, error) {
	query := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("changed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var historyModels []models.LeadHistoryModel
	if err := query.Find(&historyModels).Error; err != nil {
		return nil, shared.NewStorageError(err)
	}

	entries := make([]lead.HistoryEntry, len(historyModels))
	for i, model := range historyModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Ensure GormHistoryRepository implements HistoryRepository
var _ lead.HistoryRepository = (*GormHistoryRepository)(nil)
