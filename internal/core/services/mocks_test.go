package services

import (
	"context"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateDonor(ctx context.Context, profile *models.DonorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) CreateHospital(ctx context.Context, profile *models.HospitalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetDonorByID(ctx context.Context, id uint) (*models.DonorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DonorProfile), args.Error(1)
}

func (m *MockProfileRepository) GetDonorByUserID(ctx context.Context, userID uint) (*models.DonorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DonorProfile), args.Error(1)
}

func (m *MockProfileRepository) GetHospitalByID(ctx context.Context, id uint) (*models.HospitalProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HospitalProfile), args.Error(1)
}

func (m *MockProfileRepository) GetHospitalByUserID(ctx context.Context, userID uint) (*models.HospitalProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HospitalProfile), args.Error(1)
}

func (m *MockProfileRepository) UpdateDonor(ctx context.Context, profile *models.DonorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateHospital(ctx context.Context, profile *models.HospitalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ExistsHospitalByLicense(ctx context.Context, license string) (bool, error) {
	args := m.Called(ctx, license)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) FindEligibleDonors(ctx context.Context, bloodTypes []domain.BloodType, limit int) ([]*models.DonorProfile, error) {
	args := m.Called(ctx, bloodTypes, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DonorProfile), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of repositories.AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.Appointment, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, offset, limit int) ([]*models.Appointment, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppointmentRepository) HasActiveBooking(ctx context.Context, donorID uint, date time.Time, slot string) (bool, error) {
	args := m.Called(ctx, donorID, date, slot)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) ListActiveBefore(ctx context.Context, date time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListActiveOn(ctx context.Context, date time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

// MockCenterRepository is a mock implementation of repositories.CenterRepository
type MockCenterRepository struct {
	mock.Mock
}

func (m *MockCenterRepository) Create(ctx context.Context, center *models.DonationCenter) error {
	args := m.Called(ctx, center)
	return args.Error(0)
}

func (m *MockCenterRepository) GetByID(ctx context.Context, id uint) (*models.DonationCenter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DonationCenter), args.Error(1)
}

func (m *MockCenterRepository) List(ctx context.Context, activeOnly bool) ([]*models.DonationCenter, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DonationCenter), args.Error(1)
}

func (m *MockCenterRepository) Update(ctx context.Context, center *models.DonationCenter) error {
	args := m.Called(ctx, center)
	return args.Error(0)
}

func (m *MockCenterRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBloodUnitRepository is a mock implementation of repositories.BloodUnitRepository
type MockBloodUnitRepository struct {
	mock.Mock
}

func (m *MockBloodUnitRepository) Create(ctx context.Context, unit *models.BloodUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockBloodUnitRepository) GetByID(ctx context.Context, id uint) (*models.BloodUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BloodUnit), args.Error(1)
}

func (m *MockBloodUnitRepository) Update(ctx context.Context, unit *models.BloodUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockBloodUnitRepository) List(ctx context.Context, filter repositories.UnitFilter, offset, limit int) ([]*models.BloodUnit, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.BloodUnit), args.Get(1).(int64), args.Error(2)
}

func (m *MockBloodUnitRepository) CountAvailableByType(ctx context.Context) (map[domain.BloodType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BloodType]int64), args.Error(1)
}

func (m *MockBloodUnitRepository) FindAvailable(ctx context.Context, bloodType domain.BloodType, limit int) ([]*models.BloodUnit, error) {
	args := m.Called(ctx, bloodType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BloodUnit), args.Error(1)
}

func (m *MockBloodUnitRepository) ListExpiredBefore(ctx context.Context, cutoff time.Time) ([]*models.BloodUnit, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BloodUnit), args.Error(1)
}

// MockRequestRepository is a mock implementation of repositories.RequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *models.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id uint) (*models.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BloodRequest), args.Error(1)
}

func (m *MockRequestRepository) Update(ctx context.Context, req *models.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) List(ctx context.Context, hospitalID *uint, offset, limit int) ([]*models.BloodRequest, int64, error) {
	args := m.Called(ctx, hospitalID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.BloodRequest), args.Get(1).(int64), args.Error(2)
}

// MockNotificationRepository is a mock implementation of repositories.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, offset, limit int) ([]*models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of repositories.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]*models.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

// MockSettingRepository is a mock implementation of repositories.SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SystemSetting), args.Error(1)
}

func (m *MockSettingRepository) GetByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSetting), args.Error(1)
}

func (m *MockSettingRepository) Upsert(ctx context.Context, key, value string, updatedBy uint) error {
	args := m.Called(ctx, key, value, updatedBy)
	return args.Error(0)
}

func (m *MockSettingRepository) GetInt(ctx context.Context, key string, fallback int) int {
	args := m.Called(ctx, key, fallback)
	return args.Int(0)
}
