package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studiobook/internal/domain"
)

// CatalogRepository reads the studios and resources bookings are made against.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	var res domain.Resource
	if err := conn(ctx, r.db).First(&res, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &res, nil
}

func (r *CatalogRepository) GetStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	var s domain.Studio
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// LockResource takes a row lock on the resource until the transaction ends.
// SQLite serialises writers itself, so there it only checks existence.
func (r *CatalogRepository) LockResource(ctx context.Context, id int64) error {
	q := conn(ctx, r.db).Select("id")
	if isPostgres(r.db) {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return translateError(q.First(&domain.Resource{}, id).Error)
}

func (r *CatalogRepository) GetTemplate(ctx context.Context, resourceID int64, weekday time.Weekday) (*domain.AvailabilityTemplate, error) {
	var rows []domain.AvailabilityTemplate
	err := conn(ctx, r.db).
		Where("resource_id = ? AND day_of_week = ?", resourceID, int(weekday)).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *CatalogRepository) ListExceptions(ctx context.Context, resourceID int64, date domain.Date) ([]domain.AvailabilityException, error) {
	var rows []domain.AvailabilityException
	err := conn(ctx, r.db).
		Where("resource_id = ? AND date = ?", resourceID, date).
		Order("id ASC").
		Find(&rows).Error
	return rows, translateError(err)
}

func (r *CatalogRepository) ListStudioIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	var ids []int64
	err := conn(ctx, r.db).
		Model(&domain.Studio{}).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, translateError(err)
}

func (r *CatalogRepository) CreateStudio(ctx context.Context, s *domain.Studio) error {
	return translateError(conn(ctx, r.db).Create(s).Error)
}

func (r *CatalogRepository) CreateResource(ctx context.Context, res *domain.Resource) error {
	return translateError(conn(ctx, r.db).Create(res).Error)
}

// SaveTemplate inserts or replaces the template for (resource, weekday).
func (r *CatalogRepository) SaveTemplate(ctx context.Context, t *domain.AvailabilityTemplate) error {
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "is_available"}),
	}).Create(t).Error
	return translateError(err)
}

func (r *CatalogRepository) CreateException(ctx context.Context, e *domain.AvailabilityException) error {
	return translateError(conn(ctx, r.db).Create(e).Error)
}

// StudioFilters narrows the public studio listing.
type StudioFilters struct {
	City   string
	Limit  int
	Offset int
}

// ListStudios returns published, active studios and the total before paging.
func (r *CatalogRepository) ListStudios(ctx context.Context, f StudioFilters) ([]domain.Studio, int64, error) {
	var (
		studios []domain.Studio
		total   int64
	)

	q := conn(ctx, r.db).
		Model(&domain.Studio{}).
		Where("is_active = ? AND is_published = ?", true, true)
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Order("id ASC").Find(&studios).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return studios, total, nil
}

func (r *CatalogRepository) ListStudiosByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error) {
	var rows []domain.Studio
	err := conn(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).Error
	return rows, translateError(err)
}

func (r *CatalogRepository) ListResources(ctx context.Context, studioID int64, activeOnly bool) ([]domain.Resource, error) {
	var rows []domain.Resource
	q := conn(ctx, r.db).Where("studio_id = ?", studioID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("id ASC").Find(&rows).Error
	return rows, translateError(err)
}

func (r *CatalogRepository) ListTemplates(ctx context.Context, resourceID int64) ([]domain.AvailabilityTemplate, error) {
	var rows []domain.AvailabilityTemplate
	err := conn(ctx, r.db).
		Where("resource_id = ?", resourceID).
		Order("day_of_week ASC").
		Find(&rows).Error
	return rows, translateError(err)
}
