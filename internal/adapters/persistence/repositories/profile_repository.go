package repositories

import (
	"context"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// CreateDonor creates a donor profile
func (r *profileRepository) CreateDonor(ctx context.Context, profile *models.DonorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// CreateHospital creates a hospital profile
func (r *profileRepository) CreateHospital(ctx context.Context, profile *models.HospitalProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetDonorByID gets a donor profile by ID
func (r *profileRepository) GetDonorByID(ctx context.Context, id uint) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetDonorByUserID gets a donor profile by user ID
func (r *profileRepository) GetDonorByUserID(ctx context.Context, userID uint) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetHospitalByID gets a hospital profile by ID
func (r *profileRepository) GetHospitalByID(ctx context.Context, id uint) (*models.HospitalProfile, error) {
	var profile models.HospitalProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetHospitalByUserID gets a hospital profile by user ID
func (r *profileRepository) GetHospitalByUserID(ctx context.Context, userID uint) (*models.HospitalProfile, error) {
	var profile models.HospitalProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateDonor updates a donor profile
func (r *profileRepository) UpdateDonor(ctx context.Context, profile *models.DonorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// UpdateHospital updates a hospital profile
func (r *profileRepository) UpdateHospital(ctx context.Context, profile *models.HospitalProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// ExistsHospitalByLicense checks if a license number is already registered
func (r *profileRepository) ExistsHospitalByLicense(ctx context.Context, license string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.HospitalProfile{}).
		Where("license_number = ?", license).
		Count(&count).Error
	return count > 0, err
}

// FindEligibleDonors finds eligible donors whose blood type is in the given
// set, longest-rested donors first (never-donated donors sort to the top).
func (r *profileRepository) FindEligibleDonors(ctx context.Context, bloodTypes []domain.BloodType, limit int) ([]*models.DonorProfile, error) {
	var donors []*models.DonorProfile
	err := r.db.WithContext(ctx).
		Where("is_eligible = ?", true).
		Where("blood_type IN ?", bloodTypes).
		Order("last_donation_date IS NULL DESC").
		Order("last_donation_date ASC").
		Limit(limit).
		Find(&donors).Error
	return donors, err
}
