package repositories

import (
	"context"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// ProfileRepository defines donor/hospital profile repository interface
type ProfileRepository interface {
	CreateDonor(ctx context.Context, profile *models.DonorProfile) error
	CreateHospital(ctx context.Context, profile *models.HospitalProfile) error
	GetDonorByID(ctx context.Context, id uint) (*models.DonorProfile, error)
	GetDonorByUserID(ctx context.Context, userID uint) (*models.DonorProfile, error)
	GetHospitalByID(ctx context.Context, id uint) (*models.HospitalProfile, error)
	GetHospitalByUserID(ctx context.Context, userID uint) (*models.HospitalProfile, error)
	UpdateDonor(ctx context.Context, profile *models.DonorProfile) error
	UpdateHospital(ctx context.Context, profile *models.HospitalProfile) error
	ExistsHospitalByLicense(ctx context.Context, license string) (bool, error)
	FindEligibleDonors(ctx context.Context, bloodTypes []domain.BloodType, limit int) ([]*models.DonorProfile, error)
}

// CenterRepository defines donation center repository interface
type CenterRepository interface {
	Create(ctx context.Context, center *models.DonationCenter) error
	GetByID(ctx context.Context, id uint) (*models.DonationCenter, error)
	List(ctx context.Context, activeOnly bool) ([]*models.DonationCenter, error)
	Update(ctx context.Context, center *models.DonationCenter) error
	Delete(ctx context.Context, id uint) error
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	ListByDonor(ctx context.Context, donorID uint) ([]*models.Appointment, error)
	List(ctx context.Context, offset, limit int) ([]*models.Appointment, int64, error)
	HasActiveBooking(ctx context.Context, donorID uint, date time.Time, slot string) (bool, error)
	ListActiveBefore(ctx context.Context, date time.Time) ([]*models.Appointment, error)
	ListActiveOn(ctx context.Context, date time.Time) ([]*models.Appointment, error)
}

// BloodUnitRepository defines blood unit repository interface
type BloodUnitRepository interface {
	Create(ctx context.Context, unit *models.BloodUnit) error
	GetByID(ctx context.Context, id uint) (*models.BloodUnit, error)
	Update(ctx context.Context, unit *models.BloodUnit) error
	List(ctx context.Context, filter UnitFilter, offset, limit int) ([]*models.BloodUnit, int64, error)
	CountAvailableByType(ctx context.Context) (map[domain.BloodType]int64, error)
	FindAvailable(ctx context.Context, bloodType domain.BloodType, limit int) ([]*models.BloodUnit, error)
	ListExpiredBefore(ctx context.Context, cutoff time.Time) ([]*models.BloodUnit, error)
}

// UnitFilter narrows blood unit listings
type UnitFilter struct {
	BloodType *domain.BloodType
	Status    *domain.UnitStatus
	DonorID   *uint
}

// RequestRepository defines blood request repository interface
type RequestRepository interface {
	Create(ctx context.Context, req *models.BloodRequest) error
	GetByID(ctx context.Context, id uint) (*models.BloodRequest, error)
	Update(ctx context.Context, req *models.BloodRequest) error
	List(ctx context.Context, hospitalID *uint, offset, limit int) ([]*models.BloodRequest, int64, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uint, offset, limit int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
}

// AuditRepository defines audit log repository interface
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]*models.AuditLog, error)
}

// SettingRepository defines system settings repository interface
type SettingRepository interface {
	List(ctx context.Context) ([]*models.SystemSetting, error)
	GetByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	Upsert(ctx context.Context, key, value string, updatedBy uint) error
	GetInt(ctx context.Context, key string, fallback int) int
}
