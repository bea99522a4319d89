package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/pagination"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Inventory errors
var (
	ErrUnitNotFound = errors.New("blood unit not found")
)

const (
	summaryCacheKey = "inventory:summary"
	summaryCacheTTL = 30 * time.Second
)

// InventoryService handles blood unit lifecycle business logic
type InventoryService struct {
	unitRepo  repositories.BloodUnitRepository
	auditRepo repositories.AuditRepository
	notifier  *NotificationService
	cache     *redis.Client // nil disables caching
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	unitRepo repositories.BloodUnitRepository,
	auditRepo repositories.AuditRepository,
	notifier *NotificationService,
	cache *redis.Client,
) *InventoryService {
	return &InventoryService{
		unitRepo:  unitRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
		cache:     cache,
	}
}

// CreateUnitInput represents manual unit registration input
type CreateUnitInput struct {
	BloodType    string `json:"blood_type"`
	DonationDate string `json:"donation_date"`
	ExpiryDate   string `json:"expiry_date"`
	DonorID      *uint  `json:"donor_id"`
	Location     string `json:"location"`
}

// CreateUnit registers a new collected unit (admin)
func (s *InventoryService) CreateUnit(ctx context.Context, adminID uint, input *CreateUnitInput) (*models.UnitResponse, error) {
	bloodType := domain.BloodType(input.BloodType)
	if !bloodType.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}

	donationDate := truncateToDay(time.Now())
	if input.DonationDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DonationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: donation_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		donationDate = parsed
	}

	expiryDate := donationDate.AddDate(0, 0, domain.DefaultShelfLifeDays)
	if input.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", input.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		expiryDate = parsed
	}

	unit := &models.BloodUnit{
		SerialNumber:    newUnitSerial(),
		BloodType:       bloodType,
		Status:          domain.UnitCollected,
		DonationDate:    donationDate,
		ExpiryDate:      expiryDate,
		DonorID:         input.DonorID,
		CurrentLocation: input.Location,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	s.auditUnit(ctx, unit.ID, models.AuditCreate, "", string(domain.UnitCollected), adminID,
		fmt.Sprintf("Unit %s (%s) registered", unit.SerialNumber, unit.BloodType))
	s.invalidateSummary(ctx)

	log.Printf("✅ Blood unit %s (%s) registered", unit.SerialNumber, unit.BloodType)
	return unit.ToResponse(), nil
}

// ListUnitsInput represents unit listing filters
type ListUnitsInput struct {
	BloodType string
	Status    string
	DonorID   *uint
	Page      int
	Limit     int
}

// ListUnitsOutput represents a paged unit listing
type ListUnitsOutput struct {
	Units []*models.UnitResponse `json:"units"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// ListUnits lists blood units with optional filters
func (s *InventoryService) ListUnits(ctx context.Context, input *ListUnitsInput) (*ListUnitsOutput, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	filter := repositories.UnitFilter{DonorID: input.DonorID}
	if input.BloodType != "" {
		bt := domain.BloodType(input.BloodType)
		if !bt.IsValid() {
			return nil, domain.ErrInvalidBloodType
		}
		filter.BloodType = &bt
	}
	if input.Status != "" {
		st := domain.UnitStatus(input.Status)
		if !st.IsValid() {
			return nil, domain.ErrInvalidUnitStatus
		}
		filter.Status = &st
	}

	units, total, err := s.unitRepo.List(ctx, filter, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UnitResponse, len(units))
	for i, u := range units {
		responses[i] = u.ToResponse()
	}

	return &ListUnitsOutput{
		Units: responses,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

// GetUnit gets one unit by ID
func (s *InventoryService) GetUnit(ctx context.Context, id uint) (*models.UnitResponse, error) {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	return unit.ToResponse(), nil
}

// SummaryEntry is one row of the per-type availability summary
type SummaryEntry struct {
	BloodType domain.BloodType `json:"blood_type"`
	Available int64            `json:"available"`
}

// SummaryOutput represents the inventory summary
type SummaryOutput struct {
	Entries        []SummaryEntry `json:"entries"`
	TotalAvailable int64          `json:"total_available"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// Summary returns available unit counts per blood type. Results are
// served from Redis when a cache client is configured.
func (s *InventoryService) Summary(ctx context.Context) (*SummaryOutput, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, summaryCacheKey).Result()
		if err == nil {
			var out SummaryOutput
			if jsonErr := json.Unmarshal([]byte(cached), &out); jsonErr == nil {
				return &out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ Redis summary read failed: %v", err)
		}
	}

	counts, err := s.unitRepo.CountAvailableByType(ctx)
	if err != nil {
		return nil, err
	}

	out := &SummaryOutput{
		Entries:     make([]SummaryEntry, 0, len(domain.BloodTypes)),
		GeneratedAt: time.Now(),
	}
	for _, bt := range domain.BloodTypes {
		out.Entries = append(out.Entries, SummaryEntry{BloodType: bt, Available: counts[bt]})
		out.TotalAvailable += counts[bt]
	}

	if s.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey, payload, summaryCacheTTL).Err(); err != nil {
				log.Printf("⚠️ Redis summary write failed: %v", err)
			}
		}
	}

	return out, nil
}

// UpdateStatusInput represents a unit status change
type UpdateStatusInput struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// UpdateStatus moves a unit along the lifecycle. Backward moves and
// exits from terminal states are refused.
func (s *InventoryService) UpdateStatus(ctx context.Context, adminID uint, unitID uint, input *UpdateStatusInput) (*models.UnitResponse, error) {
	next := domain.UnitStatus(input.Status)
	if !next.IsValid() {
		return nil, domain.ErrInvalidUnitStatus
	}

	unit, err := s.getUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	from := unit.Status
	if !from.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	unit.Status = next
	if input.Location != "" {
		unit.CurrentLocation = input.Location
	}
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	s.auditUnit(ctx, unit.ID, models.AuditStatusChange, string(from), string(next), adminID, "")
	s.invalidateSummary(ctx)

	s.notifier.Hub.Broadcast(SSEEvent{
		Event: EventUnitStatusChanged,
		Data:  unit.ToResponse(),
	})

	// Tell the donor their donation moved forward
	if unit.DonorID != nil && unit.Donor != nil {
		s.notifier.Notify(ctx, &NotifyInput{
			RecipientID: unit.Donor.UserID,
			Subject:     "Your donation is on its way",
			Message:     fmt.Sprintf("Unit %s is now %s (%d%% of its journey).", unit.SerialNumber, next, next.ProgressPercent()),
			EventType:   EventUnitStatusChanged,
			BloodType:   &unit.BloodType,
		})
	}

	log.Printf("✅ Unit %s: %s → %s", unit.SerialNumber, from, next)
	return unit.ToResponse(), nil
}

// History returns the audit trail of one unit
func (s *InventoryService) History(ctx context.Context, unitID uint) ([]*models.AuditLog, error) {
	if _, err := s.getUnit(ctx, unitID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByEntity(ctx, models.AuditEntityUnit, unitID)
}

// SweepExpired marks non-terminal units past their expiry date as
// expired. Returns the number of units swept.
func (s *InventoryService) SweepExpired(ctx context.Context) (int, error) {
	today := truncateToDay(time.Now())
	units, err := s.unitRepo.ListExpiredBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	for _, unit := range units {
		from := unit.Status
		unit.Status = domain.UnitExpired
		if err := s.unitRepo.Update(ctx, unit); err != nil {
			return 0, err
		}
		s.auditUnit(ctx, unit.ID, models.AuditExpire, string(from), string(domain.UnitExpired), 0,
			fmt.Sprintf("Unit passed expiry date %s", unit.ExpiryDate.Format("2006-01-02")))
	}

	if len(units) > 0 {
		s.invalidateSummary(ctx)
		log.Printf("⚠️ %d blood units expired", len(units))
	}
	return len(units), nil
}

func (s *InventoryService) getUnit(ctx context.Context, id uint) (*models.BloodUnit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return unit, nil
}

func (s *InventoryService) auditUnit(ctx context.Context, unitID uint, action, from, to string, byUserID uint, description string) {
	entry := &models.AuditLog{
		EntityType:  models.AuditEntityUnit,
		EntityID:    unitID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		PerformedBy: byUserID,
		IPAddress:   clientIP(ctx),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("❌ Failed to record audit entry for unit %d: %v", unitID, err)
	}
}

// invalidateSummary drops the cached inventory summary
func (s *InventoryService) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey).Err(); err != nil {
		log.Printf("⚠️ Redis summary invalidation failed: %v", err)
	}
}
