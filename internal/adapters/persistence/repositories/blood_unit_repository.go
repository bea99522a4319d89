package repositories

import (
	"context"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// bloodUnitRepository implements BloodUnitRepository interface
type bloodUnitRepository struct {
	db *gorm.DB
}

// NewBloodUnitRepository creates a new blood unit repository
func NewBloodUnitRepository(db *gorm.DB) BloodUnitRepository {
	return &bloodUnitRepository{db: db}
}

// Create creates a new blood unit
func (r *bloodUnitRepository) Create(ctx context.Context, unit *models.BloodUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

// GetByID gets a blood unit by ID with its donor
func (r *bloodUnitRepository) GetByID(ctx context.Context, id uint) (*models.BloodUnit, error) {
	var unit models.BloodUnit
	err := r.db.WithContext(ctx).
		Preload("Donor").
		First(&unit, id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// Update updates a blood unit
func (r *bloodUnitRepository) Update(ctx context.Context, unit *models.BloodUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// List lists blood units with filters and pagination
func (r *bloodUnitRepository) List(ctx context.Context, filter UnitFilter, offset, limit int) ([]*models.BloodUnit, int64, error) {
	var units []*models.BloodUnit
	var total int64

	q := r.db.WithContext(ctx).Model(&models.BloodUnit{})
	if filter.BloodType != nil {
		q = q.Where("blood_type = ?", *filter.BloodType)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.DonorID != nil {
		q = q.Where("donor_id = ?", *filter.DonorID)
	}

	q.Count(&total)

	err := q.
		Preload("Donor").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&units).Error

	return units, total, err
}

// typeCount is a scan target for the availability summary
type typeCount struct {
	BloodType domain.BloodType
	Count     int64
}

// CountAvailableByType counts available units grouped by blood type.
// Types with no stock are present with a zero count.
func (r *bloodUnitRepository) CountAvailableByType(ctx context.Context) (map[domain.BloodType]int64, error) {
	var rows []typeCount
	err := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Select("blood_type, COUNT(*) as count").
		Where("status = ?", domain.UnitAvailable).
		Group("blood_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make(map[domain.BloodType]int64, len(domain.BloodTypes))
	for _, bt := range domain.BloodTypes {
		summary[bt] = 0
	}
	for _, row := range rows {
		summary[row.BloodType] = row.Count
	}
	return summary, nil
}

// FindAvailable finds available units of a blood type, oldest first so
// closest-to-expiry stock moves first
func (r *bloodUnitRepository) FindAvailable(ctx context.Context, bloodType domain.BloodType, limit int) ([]*models.BloodUnit, error) {
	var units []*models.BloodUnit
	err := r.db.WithContext(ctx).
		Where("blood_type = ?", bloodType).
		Where("status = ?", domain.UnitAvailable).
		Order("expiry_date ASC").
		Limit(limit).
		Find(&units).Error
	return units, err
}

// ListExpiredBefore lists non-terminal units whose expiry date has passed
func (r *bloodUnitRepository) ListExpiredBefore(ctx context.Context, cutoff time.Time) ([]*models.BloodUnit, error) {
	var units []*models.BloodUnit
	err := r.db.WithContext(ctx).
		Where("expiry_date < ?", cutoff.Format("2006-01-02")).
		Where("status NOT IN ?", []domain.UnitStatus{domain.UnitUsed, domain.UnitExpired, domain.UnitDiscarded}).
		Find(&units).Error
	return units, err
}
