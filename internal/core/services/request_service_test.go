package services

import (
	"context"
	"testing"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type requestServiceMocks struct {
	requestRepo *MockRequestRepository
	unitRepo    *MockBloodUnitRepository
	profileRepo *MockProfileRepository
	auditRepo   *MockAuditRepository
	settingRepo *MockSettingRepository
}

func newTestRequestService() (*RequestService, *requestServiceMocks) {
	m := &requestServiceMocks{
		requestRepo: new(MockRequestRepository),
		unitRepo:    new(MockBloodUnitRepository),
		profileRepo: new(MockProfileRepository),
		auditRepo:   new(MockAuditRepository),
		settingRepo: new(MockSettingRepository),
	}
	notificationRepo := new(MockNotificationRepository)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifier := NewNotificationService(notificationRepo)

	svc := NewRequestService(
		m.requestRepo, m.unitRepo, m.profileRepo,
		m.auditRepo, m.settingRepo, notifier)
	return svc, m
}

func testHospital() *models.HospitalProfile {
	return &models.HospitalProfile{
		ID:     4,
		UserID: 55,
		Name:   "Riverside Medical Center",
	}
}

func TestCreateRequest(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.profileRepo.On("GetHospitalByUserID", ctx, uint(55)).Return(testHospital(), nil)
	m.requestRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.BloodRequest).ID = 11
	}).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Create(ctx, 55, &CreateRequestInput{
		BloodType: "A+",
		Units:     3,
		Priority:  "medium",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(11), resp.Request.ID)
	assert.Equal(t, domain.RequestPending, resp.Request.Status)
	assert.Equal(t, domain.PriorityMedium, resp.Request.Priority)
	assert.Empty(t, resp.Matches)
	m.profileRepo.AssertNotCalled(t, "FindEligibleDonors", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRequestLegacyPriority(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.profileRepo.On("GetHospitalByUserID", ctx, uint(55)).Return(testHospital(), nil)
	m.requestRepo.On("Create", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Create(ctx, 55, &CreateRequestInput{
		BloodType: "B-",
		Units:     1,
		Priority:  "urgent",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, resp.Request.Priority)

	resp, err = svc.Create(ctx, 55, &CreateRequestInput{
		BloodType: "B-",
		Units:     1,
		Priority:  "normal",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, resp.Request.Priority)
}

func TestCreateRequestCriticalTriggersMatching(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	hospital := testHospital()
	donor := testDonor()

	m.profileRepo.On("GetHospitalByUserID", ctx, uint(55)).Return(hospital, nil)
	m.requestRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.BloodRequest).ID = 12
	}).Return(nil)
	m.requestRepo.On("GetByID", ctx, uint(12)).Return(&models.BloodRequest{
		ID:        12,
		BloodType: domain.BloodAPos,
		Units:     2,
		Priority:  domain.PriorityCritical,
		Status:    domain.RequestPending,
	}, nil)
	m.settingRepo.On("GetInt", ctx, models.SettingMatchingResultLimit, 10).Return(10)
	m.profileRepo.On("FindEligibleDonors", ctx, domain.CompatibleDonorTypes(domain.BloodAPos), 10).
		Return([]*models.DonorProfile{donor}, nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	out, err := svc.Create(ctx, 55, &CreateRequestInput{
		BloodType: "A+",
		Units:     2,
		Priority:  "critical",
	})
	require.NoError(t, err)
	m.profileRepo.AssertCalled(t, "FindEligibleDonors", ctx, domain.CompatibleDonorTypes(domain.BloodAPos), 10)

	// The requesting hospital gets the matched donors back in the
	// create response, not just a side-effect notification.
	require.Len(t, out.Matches, 1)
	assert.Equal(t, donor.ID, out.Matches[0].DonorID)
	assert.Equal(t, donor.BloodType, out.Matches[0].BloodType)
}

func TestCreateRequestValidation(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.profileRepo.On("GetHospitalByUserID", ctx, uint(55)).Return(testHospital(), nil)

	_, err := svc.Create(ctx, 55, &CreateRequestInput{BloodType: "Z+", Units: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)

	_, err = svc.Create(ctx, 55, &CreateRequestInput{BloodType: "A+", Units: 0})
	assert.ErrorIs(t, err, ErrInvalidUnitCount)

	_, err = svc.Create(ctx, 55, &CreateRequestInput{BloodType: "A+", Units: 1, Priority: "severe"})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	m.requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRequestNoHospitalProfile(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.profileRepo.On("GetHospitalByUserID", ctx, uint(55)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(ctx, 55, &CreateRequestInput{BloodType: "A+", Units: 1})
	assert.ErrorIs(t, err, ErrHospitalProfileMissing)
}

func TestApproveRequest(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.requestRepo.On("GetByID", ctx, uint(11)).Return(&models.BloodRequest{
		ID:        11,
		BloodType: domain.BloodAPos,
		Units:     3,
		Status:    domain.RequestPending,
		Hospital:  testHospital(),
	}, nil)
	m.requestRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Approve(ctx, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, resp.Status)
}

func TestApproveRequestNotPending(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	for _, status := range []domain.RequestStatus{
		domain.RequestApproved, domain.RequestRejected, domain.RequestFulfilled,
	} {
		m.requestRepo.ExpectedCalls = nil
		m.requestRepo.On("GetByID", ctx, uint(11)).Return(&models.BloodRequest{
			ID:     11,
			Status: status,
		}, nil)

		_, err := svc.Approve(ctx, 1, 11)
		assert.ErrorIs(t, err, ErrRequestNotPending, "status %s", status)
	}
}

func TestRejectRequest(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.requestRepo.On("GetByID", ctx, uint(11)).Return(&models.BloodRequest{
		ID:        11,
		BloodType: domain.BloodAPos,
		Units:     3,
		Status:    domain.RequestPending,
		Hospital:  testHospital(),
	}, nil)
	m.requestRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Reject(ctx, 1, 11, "stock reserved for surgery schedule")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, resp.Status)
	assert.Equal(t, "stock reserved for surgery schedule", resp.Notes)
}

func TestFulfillRequest(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	hospital := testHospital()
	req := &models.BloodRequest{
		ID:        11,
		BloodType: domain.BloodOPos,
		Units:     2,
		Status:    domain.RequestApproved,
		Hospital:  hospital,
	}
	units := []*models.BloodUnit{
		{ID: 1, SerialNumber: "BU-AAAA1111", Status: domain.UnitAvailable},
		{ID: 2, SerialNumber: "BU-BBBB2222", Status: domain.UnitAvailable},
	}

	m.requestRepo.On("GetByID", ctx, uint(11)).Return(req, nil)
	m.unitRepo.On("FindAvailable", ctx, domain.BloodOPos, 2).Return(units, nil)
	m.unitRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.requestRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.Fulfill(ctx, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestFulfilled, resp.Status)

	for _, unit := range units {
		assert.Equal(t, domain.UnitReserved, unit.Status)
		assert.Equal(t, hospital.Name, unit.Destination)
		require.NotNil(t, unit.RequestID)
		assert.Equal(t, uint(11), *unit.RequestID)
	}
}

func TestFulfillRequestInsufficientStock(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.requestRepo.On("GetByID", ctx, uint(11)).Return(&models.BloodRequest{
		ID:        11,
		BloodType: domain.BloodONeg,
		Units:     5,
		Status:    domain.RequestApproved,
	}, nil)
	m.unitRepo.On("FindAvailable", ctx, domain.BloodONeg, 5).Return([]*models.BloodUnit{
		{ID: 1, Status: domain.UnitAvailable},
	}, nil)

	_, err := svc.Fulfill(ctx, 1, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	m.unitRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFulfillRequestNotApproved(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.requestRepo.On("GetByID", ctx, uint(11)).Return(&models.BloodRequest{
		ID:     11,
		Status: domain.RequestPending,
	}, nil)

	_, err := svc.Fulfill(ctx, 1, 11)
	assert.ErrorIs(t, err, ErrRequestNotApproved)
}

func TestMatchDonorsCompatibility(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	donors := []*models.DonorProfile{
		{ID: 1, UserID: 10, FullName: "Sam Okafor", BloodType: domain.BloodONeg},
		{ID: 2, UserID: 20, FullName: "Ada Lin", BloodType: domain.BloodANeg},
	}

	m.requestRepo.On("GetByID", ctx, uint(11)).Return(&models.BloodRequest{
		ID:        11,
		BloodType: domain.BloodANeg,
		Units:     2,
		Status:    domain.RequestPending,
	}, nil)
	m.settingRepo.On("GetInt", ctx, models.SettingMatchingResultLimit, 10).Return(10)
	m.profileRepo.On("FindEligibleDonors", ctx, []domain.BloodType{domain.BloodANeg, domain.BloodONeg}, 10).
		Return(donors, nil)

	results, err := svc.MatchDonors(ctx, 11)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Sam Okafor", results[0].FullName)
	assert.Equal(t, domain.BloodANeg, results[1].BloodType)
}

func TestMatchDonorsRequestNotFound(t *testing.T) {
	svc, m := newTestRequestService()
	ctx := context.Background()
	m.requestRepo.On("GetByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.MatchDonors(ctx, 404)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
