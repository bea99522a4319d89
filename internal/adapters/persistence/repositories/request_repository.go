package repositories

import (
	"context"

	"bloodlink/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new blood request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create creates a new blood request
func (r *requestRepository) Create(ctx context.Context, req *models.BloodRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a blood request by ID with relations
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.BloodRequest, error) {
	var req models.BloodRequest
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Preload("AssignedUnits").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Update updates a blood request
func (r *requestRepository) Update(ctx context.Context, req *models.BloodRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// List lists blood requests, newest first, optionally filtered by hospital
func (r *requestRepository) List(ctx context.Context, hospitalID *uint, offset, limit int) ([]*models.BloodRequest, int64, error) {
	var requests []*models.BloodRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&models.BloodRequest{})
	if hospitalID != nil {
		q = q.Where("hospital_id = ?", *hospitalID)
	}

	q.Count(&total)

	err := q.
		Preload("Hospital").
		Order("requested_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error

	return requests, total, err
}
