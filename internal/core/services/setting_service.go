package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"
)

// Setting errors
var (
	ErrUnknownSettingKey = errors.New("unknown setting key")
)

// numericSettingKeys are the tunables PUT /system-settings accepts.
var numericSettingKeys = map[string]bool{
	models.SettingAppointmentWindowDays: true,
	models.SettingUnitShelfLifeDays:     true,
	models.SettingMatchingResultLimit:   true,
}

// SettingService exposes the key/value system settings
type SettingService struct {
	settingRepo repositories.SettingRepository
}

// NewSettingService creates a new setting service
func NewSettingService(settingRepo repositories.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// List returns all settings
func (s *SettingService) List(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.settingRepo.List(ctx)
}

// UpdateInput represents one setting change
type UpdateSettingInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Update writes one setting (admin). Known keys are numeric tunables
// and must parse as positive integers.
func (s *SettingService) Update(ctx context.Context, adminID uint, input *UpdateSettingInput) error {
	if !numericSettingKeys[input.Key] {
		return ErrUnknownSettingKey
	}

	v, err := strconv.Atoi(input.Value)
	if err != nil || v < 1 {
		return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, input.Key)
	}

	if err := s.settingRepo.Upsert(ctx, input.Key, input.Value, adminID); err != nil {
		return err
	}

	log.Printf("✅ Setting %s = %s (admin %d)", input.Key, input.Value, adminID)
	return nil
}
