package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/riya0704/LeadTrak/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError(err)
	}
	return model.ToDomain(), nil
}

// List returns the page of leads matching the query along with the total
// count of matching records before pagination
func (r *GormLeadRepository) List(ctx context.Context, q lead.ListQuery) ([]lead.Lead, int64, error) {
	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), q)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, shared.NewStorageError(err)
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}), q).
		Order(leadOrderClause(q.SortField, q.SortDesc))
	if q.Page > 0 && q.Limit > 0 {
		offset := (q.Page - 1) * q.Limit
		query = query.Offset(offset).Limit(q.Limit)
	}

	var leadModels []models.LeadModel
	if err := query.Find(&leadModels).Error; err != nil {
		return nil, 0, shared.NewStorageError(err)
	}

	leads := make([]lead.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, total, nil
}

// Insert persists a new lead
func (r *GormLeadRepository) Insert(ctx context.Context, l *lead.Lead) error {
	model := models.LeadModelFromDomain(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return shared.NewStorageError(err)
	}
	return nil
}

// InsertBatch persists a batch of new leads in one statement
func (r *GormLeadRepository) InsertBatch(ctx context.Context, leads []*lead.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	leadModels := make([]*models.LeadModel, len(leads))
	for i, l := range leads {
		leadModels[i] = models.LeadModelFromDomain(l)
	}
	if err := r.db.WithContext(ctx).Create(leadModels).Error; err != nil {
		return shared.NewStorageError(err)
	}
	return nil
}

// Update persists all fields of an existing lead guarded by its version.
// The lead's version was already bumped in the domain, so the guard matches
// against the previous stored version.
func (r *GormLeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	model := models.LeadModelFromDomain(l)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Omit("created_at").
		Where("id = ? AND version = ?", l.ID, l.Version-1).
		Updates(model)

	if result.Error != nil {
		return shared.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies the query's filters and search without pagination
func (r *GormLeadRepository) applyFilter(query *gorm.DB, q lead.ListQuery) *gorm.DB {
	if q.City != "" {
		query = query.Where("city = ?", q.City)
	}
	if q.PropertyType != "" {
		query = query.Where("property_type = ?", q.PropertyType)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Timeline != "" {
		query = query.Where("timeline = ?", q.Timeline)
	}

	// Every whitespace-separated search term must match somewhere in the
	// name, email or phone.
	for _, term := range strings.Fields(q.Search) {
		pattern := "%" + term + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern)
	}

	return query
}

// Ensure GormLeadRepository implements LeadRepository
var _ lead.LeadRepository = (*GormLeadRepository)(nil)
