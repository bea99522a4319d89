package repositories

import (
	"context"

	"bloodlink/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// centerRepository implements CenterRepository interface
type centerRepository struct {
	db *gorm.DB
}

// NewCenterRepository creates a new donation center repository
func NewCenterRepository(db *gorm.DB) CenterRepository {
	return &centerRepository{db: db}
}

// Create creates a new donation center
func (r *centerRepository) Create(ctx context.Context, center *models.DonationCenter) error {
	return r.db.WithContext(ctx).Create(center).Error
}

// GetByID gets a donation center by ID
func (r *centerRepository) GetByID(ctx context.Context, id uint) (*models.DonationCenter, error) {
	var center models.DonationCenter
	err := r.db.WithContext(ctx).First(&center, id).Error
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// List lists donation centers
func (r *centerRepository) List(ctx context.Context, activeOnly bool) ([]*models.DonationCenter, error) {
	var centers []*models.DonationCenter
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&centers).Error
	return centers, err
}

// Update updates a donation center
func (r *centerRepository) Update(ctx context.Context, center *models.DonationCenter) error {
	return r.db.WithContext(ctx).Save(center).Error
}

// Delete soft deletes a donation center
func (r *centerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DonationCenter{}, id).Error
}
