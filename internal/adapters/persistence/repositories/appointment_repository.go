package repositories

import (
	"context"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// appointmentRepository implements AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// activeStatuses is the bookable/cancellable subset
var activeStatuses = []domain.AppointmentStatus{domain.ApptScheduled, domain.ApptConfirmed}

// Create creates a new appointment
func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// GetByID gets an appointment by ID with relations
func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Center").
		First(&appt, id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Update updates an appointment
func (r *appointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// ListByDonor lists a donor's appointments, newest first
func (r *appointmentRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Center").
		Where("donor_id = ?", donorID).
		Order("date DESC, time_slot DESC").
		Find(&appts).Error
	return appts, err
}

// List lists all appointments with pagination
func (r *appointmentRepository) List(ctx context.Context, offset, limit int) ([]*models.Appointment, int64, error) {
	var appts []*models.Appointment
	var total int64

	r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Center").
		Order("date DESC, time_slot DESC").
		Offset(offset).
		Limit(limit).
		Find(&appts).Error

	return appts, total, err
}

// HasActiveBooking checks for a duplicate active booking on the same
// date/slot for a donor
func (r *appointmentRepository) HasActiveBooking(ctx context.Context, donorID uint, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("donor_id = ?", donorID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("time_slot = ?", slot).
		Where("status IN ?", activeStatuses).
		Count(&count).Error
	return count > 0, err
}

// ListActiveBefore lists still-active appointments dated strictly before
// the given date (missed-appointment sweep)
func (r *appointmentRepository) ListActiveBefore(ctx context.Context, date time.Time) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := r.db.WithContext(ctx).
		Where("date < ?", date.Format("2006-01-02")).
		Where("status IN ?", activeStatuses).
		Find(&appts).Error
	return appts, err
}

// ListActiveOn lists active appointments on the given date (reminders)
func (r *appointmentRepository) ListActiveOn(ctx context.Context, date time.Time) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Center").
		Where("date = ?", date.Format("2006-01-02")).
		Where("status IN ?", activeStatuses).
		Find(&appts).Error
	return appts, err
}
