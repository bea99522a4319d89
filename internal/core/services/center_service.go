package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// Center errors
var (
	ErrCenterNameTaken = errors.New("a center with this name already exists")
)

// CenterService handles donation center management
type CenterService struct {
	centerRepo repositories.CenterRepository
}

// NewCenterService creates a new center service
func NewCenterService(centerRepo repositories.CenterRepository) *CenterService {
	return &CenterService{centerRepo: centerRepo}
}

// CenterInput represents center create/update input
type CenterInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	OpenHours string `json:"open_hours"`
	IsActive  *bool  `json:"is_active"`
}

// List lists donation centers. Non-admin callers see active only.
func (s *CenterService) List(ctx context.Context, includeInactive bool) ([]*models.DonationCenter, error) {
	return s.centerRepo.List(ctx, !includeInactive)
}

// GetByID gets one center
func (s *CenterService) GetByID(ctx context.Context, id uint) (*models.DonationCenter, error) {
	center, err := s.centerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}
	return center, nil
}

// Create creates a donation center (admin)
func (s *CenterService) Create(ctx context.Context, input *CenterInput) (*models.DonationCenter, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	center := &models.DonationCenter{
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		OpenHours: input.OpenHours,
		IsActive:  true,
	}
	if input.IsActive != nil {
		center.IsActive = *input.IsActive
	}

	if err := s.centerRepo.Create(ctx, center); err != nil {
		return nil, err
	}

	log.Printf("✅ Donation center created: %s", center.Name)
	return center, nil
}

// Update updates a donation center (admin)
func (s *CenterService) Update(ctx context.Context, id uint, input *CenterInput) (*models.DonationCenter, error) {
	center, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		center.Name = input.Name
	}
	if input.Address != "" {
		center.Address = input.Address
	}
	if input.Phone != "" {
		center.Phone = input.Phone
	}
	if input.OpenHours != "" {
		center.OpenHours = input.OpenHours
	}
	if input.IsActive != nil {
		center.IsActive = *input.IsActive
	}

	if err := s.centerRepo.Update(ctx, center); err != nil {
		return nil, err
	}

	log.Printf("✅ Donation center %d updated", id)
	return center, nil
}

// Delete soft-deletes a donation center (admin)
func (s *CenterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.centerRepo.Delete(ctx, id)
}
