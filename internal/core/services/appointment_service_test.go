package services

import (
	"context"
	"testing"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apptServiceMocks struct {
	apptRepo    *MockAppointmentRepository
	centerRepo  *MockCenterRepository
	profileRepo *MockProfileRepository
	unitRepo    *MockBloodUnitRepository
	auditRepo   *MockAuditRepository
	settingRepo *MockSettingRepository
	notifier    *NotificationService
}

func newTestAppointmentService() (*AppointmentService, *apptServiceMocks) {
	m := &apptServiceMocks{
		apptRepo:    new(MockAppointmentRepository),
		centerRepo:  new(MockCenterRepository),
		profileRepo: new(MockProfileRepository),
		unitRepo:    new(MockBloodUnitRepository),
		auditRepo:   new(MockAuditRepository),
		settingRepo: new(MockSettingRepository),
	}
	notificationRepo := new(MockNotificationRepository)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.notifier = NewNotificationService(notificationRepo)

	svc := NewAppointmentService(
		m.apptRepo, m.centerRepo, m.profileRepo, m.unitRepo,
		m.auditRepo, m.settingRepo, m.notifier)
	return svc, m
}

func testDonor() *models.DonorProfile {
	return &models.DonorProfile{
		ID:        7,
		UserID:    42,
		FullName:  "Jordan Reyes",
		BloodType: domain.BloodOPos,
	}
}

func testCenter() *models.DonationCenter {
	return &models.DonationCenter{
		ID:       3,
		Name:     "Central Blood Bank",
		IsActive: true,
	}
}

func TestBookAppointment(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	donor := testDonor()
	center := testCenter()
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(donor, nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(center, nil)
	m.settingRepo.On("GetInt", ctx, models.SettingAppointmentWindowDays, domain.AppointmentWindowDays).Return(30)
	m.apptRepo.On("HasActiveBooking", ctx, uint(7), mock.Anything, "10:00 AM").Return(false, nil)
	m.apptRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Appointment).ID = 99
	}).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Book(ctx, 42, &BookInput{
		CenterID: 3,
		Date:     date,
		TimeSlot: "10:00 AM",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(99), resp.ID)
	assert.Equal(t, string(domain.ApptScheduled), string(resp.Status))
	m.apptRepo.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestBookAppointmentInvalidSlot(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)

	_, err := svc.Book(ctx, 42, &BookInput{
		CenterID: 3,
		Date:     time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		TimeSlot: "10:30 AM",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeSlot)
	m.apptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookAppointmentOutsideWindow(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(testCenter(), nil)
	m.settingRepo.On("GetInt", ctx, models.SettingAppointmentWindowDays, domain.AppointmentWindowDays).Return(30)

	tests := []string{
		time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		time.Now().AddDate(0, 0, 31).Format("2006-01-02"),
	}
	for _, date := range tests {
		_, err := svc.Book(ctx, 42, &BookInput{
			CenterID: 3,
			Date:     date,
			TimeSlot: "10:00 AM",
		})
		assert.ErrorIs(t, err, ErrDateOutsideWindow, "date %s", date)
	}
	m.apptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookAppointmentWindowBoundsInclusive(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(testCenter(), nil)
	m.settingRepo.On("GetInt", ctx, models.SettingAppointmentWindowDays, domain.AppointmentWindowDays).Return(30)
	m.apptRepo.On("HasActiveBooking", ctx, uint(7), mock.Anything, "10:00 AM").Return(false, nil)
	m.apptRepo.On("Create", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	// Both edges of the window must book, whatever timezone the host runs in.
	for _, date := range []string{
		time.Now().Format("2006-01-02"),
		time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
	} {
		_, err := svc.Book(ctx, 42, &BookInput{
			CenterID: 3,
			Date:     date,
			TimeSlot: "10:00 AM",
		})
		require.NoError(t, err, "date %s", date)
	}
}

func TestBookAppointmentNotifiesDonorStream(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	donor := testDonor()
	client := &SSEClient{
		ID:      "donor-stream",
		UserID:  donor.UserID,
		Role:    models.RoleDonor,
		Channel: make(chan SSEEvent, 4),
	}
	m.notifier.Hub.Register(client)

	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(donor, nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(testCenter(), nil)
	m.settingRepo.On("GetInt", ctx, models.SettingAppointmentWindowDays, domain.AppointmentWindowDays).Return(30)
	m.apptRepo.On("HasActiveBooking", ctx, uint(7), mock.Anything, "10:00 AM").Return(false, nil)
	m.apptRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Appointment).ID = 99
	}).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	_, err := svc.Book(ctx, 42, &BookInput{
		CenterID: 3,
		Date:     date,
		TimeSlot: "10:00 AM",
	})
	require.NoError(t, err)

	select {
	case ev := <-client.Channel:
		assert.Equal(t, EventAppointmentScheduled, ev.Event)
		resp := ev.Data.(*models.AppointmentResponse)
		assert.Equal(t, uint(99), resp.ID)
		assert.Equal(t, date, resp.Date)
	default:
		t.Fatal("booking donor received no event on their stream")
	}
}

func TestBookAppointmentSlotTaken(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(testCenter(), nil)
	m.settingRepo.On("GetInt", ctx, models.SettingAppointmentWindowDays, domain.AppointmentWindowDays).Return(30)
	m.apptRepo.On("HasActiveBooking", ctx, uint(7), mock.Anything, "10:00 AM").Return(true, nil)

	_, err := svc.Book(ctx, 42, &BookInput{
		CenterID: 3,
		Date:     time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		TimeSlot: "10:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookAppointmentInactiveCenter(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	center := testCenter()
	center.IsActive = false
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(center, nil)

	_, err := svc.Book(ctx, 42, &BookInput{
		CenterID: 3,
		Date:     time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		TimeSlot: "10:00 AM",
	})
	assert.ErrorIs(t, err, ErrCenterInactive)
}

func TestBookAppointmentNoDonorProfile(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Book(ctx, 42, &BookInput{
		CenterID: 3,
		Date:     time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		TimeSlot: "10:00 AM",
	})
	assert.ErrorIs(t, err, ErrDonorProfileMissing)
}

func TestCancelAppointmentOwnership(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.apptRepo.On("GetByID", ctx, uint(5)).Return(&models.Appointment{
		ID:      5,
		DonorID: 999,
		Status:  domain.ApptScheduled,
	}, nil)

	_, err := svc.Cancel(ctx, 42, 5)
	assert.ErrorIs(t, err, ErrNotYourAppointment)
	m.apptRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelAppointmentNotActive(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.apptRepo.On("GetByID", ctx, uint(5)).Return(&models.Appointment{
		ID:      5,
		DonorID: 7,
		Status:  domain.ApptCompleted,
	}, nil)

	_, err := svc.Cancel(ctx, 42, 5)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)
}

func TestCancelAppointment(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	donor := testDonor()
	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(donor, nil)
	m.apptRepo.On("GetByID", ctx, uint(5)).Return(&models.Appointment{
		ID:      5,
		DonorID: 7,
		Donor:   donor,
		Status:  domain.ApptConfirmed,
		Date:    time.Now().AddDate(0, 0, 2),
	}, nil)
	m.apptRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Cancel(ctx, 42, 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApptCancelled), string(resp.Status))
}

func TestCompleteAppointmentRegistersUnit(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	donor := testDonor()
	center := testCenter()
	apptDate := truncateToDay(time.Now())

	m.apptRepo.On("GetByID", ctx, uint(5)).Return(&models.Appointment{
		ID:       5,
		DonorID:  7,
		CenterID: 3,
		Center:   center,
		Date:     apptDate,
		TimeSlot: "10:00 AM",
		Status:   domain.ApptConfirmed,
	}, nil)
	m.profileRepo.On("GetDonorByID", ctx, uint(7)).Return(donor, nil)
	m.apptRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.settingRepo.On("GetInt", ctx, models.SettingUnitShelfLifeDays, domain.DefaultShelfLifeDays).Return(42)

	var created *models.BloodUnit
	m.unitRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.BloodUnit)
	}).Return(nil)
	m.profileRepo.On("UpdateDonor", ctx, donor).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Complete(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApptCompleted), string(resp.Status))

	require.NotNil(t, created)
	assert.Equal(t, donor.BloodType, created.BloodType)
	assert.Equal(t, domain.UnitCollected, created.Status)
	assert.Equal(t, center.Name, created.CurrentLocation)
	assert.Equal(t, apptDate.AddDate(0, 0, 42), created.ExpiryDate)
	assert.Regexp(t, `^BU-[0-9A-F]{8}$`, created.SerialNumber)

	require.NotNil(t, donor.LastDonationDate)
	assert.Equal(t, apptDate, *donor.LastDonationDate)
}

func TestCompleteAppointmentNotActive(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	m.apptRepo.On("GetByID", ctx, uint(5)).Return(&models.Appointment{
		ID:     5,
		Status: domain.ApptCancelled,
	}, nil)

	_, err := svc.Complete(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)
	m.unitRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSweepMissed(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	stale := []*models.Appointment{
		{ID: 1, Status: domain.ApptScheduled, Date: time.Now().AddDate(0, 0, -2)},
		{ID: 2, Status: domain.ApptConfirmed, Date: time.Now().AddDate(0, 0, -1)},
	}
	m.apptRepo.On("ListActiveBefore", ctx, mock.Anything).Return(stale, nil)
	m.apptRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	count, err := svc.SweepMissed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	for _, appt := range stale {
		assert.Equal(t, domain.ApptMissed, appt.Status)
	}
}

func TestGetSlots(t *testing.T) {
	svc, m := newTestAppointmentService()
	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")

	m.profileRepo.On("GetDonorByUserID", ctx, uint(42)).Return(testDonor(), nil)
	m.centerRepo.On("GetByID", ctx, uint(3)).Return(testCenter(), nil)
	m.apptRepo.On("HasActiveBooking", ctx, uint(7), mock.Anything, "09:00 AM").Return(true, nil)
	m.apptRepo.On("HasActiveBooking", ctx, uint(7), mock.Anything, mock.Anything).Return(false, nil)

	slots, err := svc.GetSlots(ctx, 42, 3, date)
	require.NoError(t, err)
	require.Len(t, slots, 9)
	assert.False(t, slots[0].Available)
	for _, slot := range slots[1:] {
		assert.True(t, slot.Available, "slot %s", slot.TimeSlot)
	}
}
