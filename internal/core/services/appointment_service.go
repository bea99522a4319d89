package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment errors
var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrCenterNotFound       = errors.New("donation center not found")
	ErrCenterInactive       = errors.New("donation center is not active")
	ErrDateOutsideWindow    = errors.New("date is outside the booking window")
	ErrSlotTaken            = errors.New("you already have an active booking for this slot")
	ErrNotYourAppointment   = errors.New("appointment belongs to another donor")
	ErrAppointmentNotActive = errors.New("appointment is no longer active")
	ErrDonorProfileMissing  = errors.New("donor profile not found")
)

// AppointmentService handles donation appointment business logic
type AppointmentService struct {
	apptRepo    repositories.AppointmentRepository
	centerRepo  repositories.CenterRepository
	profileRepo repositories.ProfileRepository
	unitRepo    repositories.BloodUnitRepository
	auditRepo   repositories.AuditRepository
	settingRepo repositories.SettingRepository
	notifier    *NotificationService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo repositories.AppointmentRepository,
	centerRepo repositories.CenterRepository,
	profileRepo repositories.ProfileRepository,
	unitRepo repositories.BloodUnitRepository,
	auditRepo repositories.AuditRepository,
	settingRepo repositories.SettingRepository,
	notifier *NotificationService,
) *AppointmentService {
	return &AppointmentService{
		apptRepo:    apptRepo,
		centerRepo:  centerRepo,
		profileRepo: profileRepo,
		unitRepo:    unitRepo,
		auditRepo:   auditRepo,
		settingRepo: settingRepo,
		notifier:    notifier,
	}
}

// BookInput represents appointment booking input
type BookInput struct {
	CenterID uint   `json:"center_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Notes    string `json:"notes"`
}

// Book schedules a donation appointment for the donor behind userID
func (s *AppointmentService) Book(ctx context.Context, userID uint, input *BookInput) (*models.AppointmentResponse, error) {
	// 1. Resolve donor profile
	donor, err := s.profileRepo.GetDonorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorProfileMissing
		}
		return nil, err
	}

	// 2. Required fields
	if input.CenterID == 0 || input.Date == "" || input.TimeSlot == "" {
		return nil, fmt.Errorf("%w: center_id, date and time_slot are required", domain.ErrInvalidInput)
	}

	// 3. Time slot must be one of the fixed daily slots
	if !domain.IsValidTimeSlot(input.TimeSlot) {
		return nil, domain.ErrInvalidTimeSlot
	}

	// 4. Center must exist and be active
	center, err := s.centerRepo.GetByID(ctx, input.CenterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}
	if !center.IsActive {
		return nil, ErrCenterInactive
	}

	// 5. Date inside [today, today+window]. Parse in the server's zone
	// so the inclusive bounds hold regardless of host timezone.
	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	today := truncateToDay(time.Now())
	windowDays := s.settingRepo.GetInt(ctx, models.SettingAppointmentWindowDays, domain.AppointmentWindowDays)
	if date.Before(today) || date.After(today.AddDate(0, 0, windowDays)) {
		return nil, ErrDateOutsideWindow
	}

	// 6. No duplicate active booking for the same date+slot
	taken, err := s.apptRepo.HasActiveBooking(ctx, donor.ID, date, input.TimeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	// 7. Create
	appt := &models.Appointment{
		DonorID:  donor.ID,
		CenterID: input.CenterID,
		Date:     date,
		TimeSlot: input.TimeSlot,
		Status:   domain.ApptScheduled,
		Notes:    input.Notes,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}
	appt.Donor = donor
	appt.Center = center

	s.audit(ctx, appt.ID, models.AuditCreate, "", string(domain.ApptScheduled), userID,
		fmt.Sprintf("Appointment booked at %s for %s %s", center.Name, input.Date, input.TimeSlot))

	s.notifier.Hub.BroadcastToRole(models.RoleAdmin, SSEEvent{
		Event: EventAppointmentScheduled,
		Data:  appt.ToResponse(),
	})
	s.notifier.Hub.SendToUser(donor.UserID, SSEEvent{
		Event: EventAppointmentScheduled,
		Data:  appt.ToResponse(),
	})

	log.Printf("✅ Appointment %d booked: donor=%d center=%d %s %s",
		appt.ID, donor.ID, center.ID, input.Date, input.TimeSlot)

	return appt.ToResponse(), nil
}

// ListForDonor lists the donor's own appointments, most recent first
func (s *AppointmentService) ListForDonor(ctx context.Context, userID uint) ([]*models.AppointmentResponse, error) {
	donor, err := s.profileRepo.GetDonorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorProfileMissing
		}
		return nil, err
	}

	appts, err := s.apptRepo.ListByDonor(ctx, donor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AppointmentResponse, len(appts))
	for i, a := range appts {
		responses[i] = a.ToResponse()
	}
	return responses, nil
}

// ListAll lists all appointments with pagination (admin)
func (s *AppointmentService) ListAll(ctx context.Context, page, limit int) ([]*models.AppointmentResponse, int64, error) {
	p := pagination.Normalize(page, limit)

	appts, total, err := s.apptRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.AppointmentResponse, len(appts))
	for i, a := range appts {
		responses[i] = a.ToResponse()
	}
	return responses, total, nil
}

// SlotAvailability reports, for one center and date, which of the nine
// daily slots the donor can still book.
type SlotAvailability struct {
	TimeSlot  string `json:"time_slot"`
	Available bool   `json:"available"`
}

// GetSlots returns the donor's slot availability for a center and date
func (s *AppointmentService) GetSlots(ctx context.Context, userID uint, centerID uint, dateStr string) ([]SlotAvailability, error) {
	donor, err := s.profileRepo.GetDonorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorProfileMissing
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	if _, err := s.centerRepo.GetByID(ctx, centerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}

	slots := make([]SlotAvailability, 0, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		taken, err := s.apptRepo.HasActiveBooking(ctx, donor.ID, date, slot)
		if err != nil {
			return nil, err
		}
		slots = append(slots, SlotAvailability{TimeSlot: slot, Available: !taken})
	}
	return slots, nil
}

// Cancel cancels the donor's own active appointment
func (s *AppointmentService) Cancel(ctx context.Context, userID uint, apptID uint) (*models.AppointmentResponse, error) {
	donor, err := s.profileRepo.GetDonorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorProfileMissing
		}
		return nil, err
	}

	appt, err := s.getAppointment(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if appt.DonorID != donor.ID {
		return nil, ErrNotYourAppointment
	}

	return s.transition(ctx, appt, domain.ApptCancelled, models.AuditCancel, userID)
}

// Confirm marks a scheduled appointment confirmed (admin)
func (s *AppointmentService) Confirm(ctx context.Context, adminID uint, apptID uint) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, apptID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appt, domain.ApptConfirmed, models.AuditStatusChange, adminID)
}

// Reject declines an active appointment (admin)
func (s *AppointmentService) Reject(ctx context.Context, adminID uint, apptID uint) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, apptID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appt, domain.ApptRejected, models.AuditReject, adminID)
}

// Complete marks an active appointment completed, registers the
// collected unit and stamps the donor's last donation date (admin).
func (s *AppointmentService) Complete(ctx context.Context, adminID uint, apptID uint) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.IsActive() {
		return nil, ErrAppointmentNotActive
	}

	donor, err := s.profileRepo.GetDonorByID(ctx, appt.DonorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorProfileMissing
		}
		return nil, err
	}

	from := appt.Status
	now := time.Now()
	appt.Status = domain.ApptCompleted
	appt.CompletedAt = &now
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	// Register the collected unit
	location := ""
	if appt.Center != nil {
		location = appt.Center.Name
	}
	shelfDays := s.settingRepo.GetInt(ctx, models.SettingUnitShelfLifeDays, domain.DefaultShelfLifeDays)
	unit := &models.BloodUnit{
		SerialNumber:    newUnitSerial(),
		BloodType:       donor.BloodType,
		Status:          domain.UnitCollected,
		DonationDate:    appt.Date,
		ExpiryDate:      appt.Date.AddDate(0, 0, shelfDays),
		DonorID:         &donor.ID,
		CurrentLocation: location,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	donationDate := appt.Date
	donor.LastDonationDate = &donationDate
	if err := s.profileRepo.UpdateDonor(ctx, donor); err != nil {
		return nil, err
	}

	s.audit(ctx, appt.ID, models.AuditComplete, string(from), string(domain.ApptCompleted), adminID,
		fmt.Sprintf("Donation completed, unit %s collected", unit.SerialNumber))

	s.notifier.Notify(ctx, &NotifyInput{
		RecipientID: donor.UserID,
		Subject:     "Donation completed",
		Message:     fmt.Sprintf("Thank you for donating! Your unit %s has been registered.", unit.SerialNumber),
		EventType:   EventAppointmentScheduled,
	})

	log.Printf("✅ Appointment %d completed, unit %s (%s) registered", appt.ID, unit.SerialNumber, unit.BloodType)
	return appt.ToResponse(), nil
}

// SweepMissed marks active appointments whose date has passed as missed.
// Returns the number of appointments swept.
func (s *AppointmentService) SweepMissed(ctx context.Context) (int, error) {
	today := truncateToDay(time.Now())
	appts, err := s.apptRepo.ListActiveBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	for _, appt := range appts {
		from := appt.Status
		appt.Status = domain.ApptMissed
		if err := s.apptRepo.Update(ctx, appt); err != nil {
			return 0, err
		}
		s.audit(ctx, appt.ID, models.AuditStatusChange, string(from), string(domain.ApptMissed), 0,
			"Appointment date passed without completion")
	}

	if len(appts) > 0 {
		log.Printf("⚠️ %d appointments marked missed", len(appts))
	}
	return len(appts), nil
}

// SendReminders notifies donors with an active appointment tomorrow.
func (s *AppointmentService) SendReminders(ctx context.Context) (int, error) {
	tomorrow := truncateToDay(time.Now()).AddDate(0, 0, 1)
	appts, err := s.apptRepo.ListActiveOn(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	for _, appt := range appts {
		if appt.Donor == nil {
			continue
		}
		centerName := ""
		if appt.Center != nil {
			centerName = appt.Center.Name
		}
		s.notifier.Notify(ctx, &NotifyInput{
			RecipientID: appt.Donor.UserID,
			Subject:     "Donation appointment reminder",
			Message: fmt.Sprintf("Reminder: your donation at %s is tomorrow (%s) at %s.",
				centerName, appt.Date.Format("2006-01-02"), appt.TimeSlot),
			EventType: EventAppointmentScheduled,
		})
	}
	return len(appts), nil
}

// getAppointment fetches an appointment, mapping not-found
func (s *AppointmentService) getAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appt, nil
}

// transition moves an active appointment to a closed state
func (s *AppointmentService) transition(ctx context.Context, appt *models.Appointment, to domain.AppointmentStatus, action string, byUserID uint) (*models.AppointmentResponse, error) {
	if !appt.Status.IsActive() {
		return nil, ErrAppointmentNotActive
	}

	from := appt.Status
	now := time.Now()
	appt.Status = to
	if to == domain.ApptCancelled {
		appt.CancelledAt = &now
	}
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.audit(ctx, appt.ID, action, string(from), string(to), byUserID, "")

	if appt.Donor != nil && to != domain.ApptConfirmed {
		s.notifier.Notify(ctx, &NotifyInput{
			RecipientID: appt.Donor.UserID,
			Subject:     "Appointment " + string(to),
			Message:     fmt.Sprintf("Your appointment on %s at %s is now %s.", appt.Date.Format("2006-01-02"), appt.TimeSlot, to),
			EventType:   EventAppointmentScheduled,
		})
	}

	log.Printf("✅ Appointment %d: %s → %s", appt.ID, from, to)
	return appt.ToResponse(), nil
}

// audit records an appointment audit entry, logging on failure
func (s *AppointmentService) audit(ctx context.Context, apptID uint, action, from, to string, byUserID uint, description string) {
	entry := &models.AuditLog{
		EntityType:  models.AuditEntityAppointment,
		EntityID:    apptID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		PerformedBy: byUserID,
		IPAddress:   clientIP(ctx),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("❌ Failed to record audit entry for appointment %d: %v", apptID, err)
	}
}

// newUnitSerial builds a unique blood unit serial number
func newUnitSerial() string {
	return "BU-" + strings.ToUpper(uuid.New().String()[:8])
}

// truncateToDay drops the time-of-day component
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
