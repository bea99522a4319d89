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

type inventoryServiceMocks struct {
	unitRepo  *MockBloodUnitRepository
	auditRepo *MockAuditRepository
}

func newTestInventoryService() (*InventoryService, *inventoryServiceMocks) {
	m := &inventoryServiceMocks{
		unitRepo:  new(MockBloodUnitRepository),
		auditRepo: new(MockAuditRepository),
	}
	notificationRepo := new(MockNotificationRepository)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifier := NewNotificationService(notificationRepo)

	svc := NewInventoryService(m.unitRepo, m.auditRepo, notifier, nil)
	return svc, m
}

func TestCreateUnitDefaults(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()

	var created *models.BloodUnit
	m.unitRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.BloodUnit)
	}).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.CreateUnit(ctx, 1, &CreateUnitInput{BloodType: "AB-"})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, domain.BloodABNeg, created.BloodType)
	assert.Equal(t, domain.UnitCollected, created.Status)
	today := truncateToDay(time.Now())
	assert.Equal(t, today, created.DonationDate)
	assert.Equal(t, today.AddDate(0, 0, domain.DefaultShelfLifeDays), created.ExpiryDate)
	assert.Equal(t, 13, resp.ProgressPercent)
}

func TestCreateUnitInvalidBloodType(t *testing.T) {
	svc, m := newTestInventoryService()
	_, err := svc.CreateUnit(context.Background(), 1, &CreateUnitInput{BloodType: "AB"})
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
	m.unitRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateStatusForward(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()
	unit := &models.BloodUnit{
		ID:           8,
		SerialNumber: "BU-CAFE0123",
		BloodType:    domain.BloodOPos,
		Status:       domain.UnitTested,
	}
	m.unitRepo.On("GetByID", ctx, uint(8)).Return(unit, nil)
	m.unitRepo.On("Update", ctx, unit).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := svc.UpdateStatus(ctx, 1, 8, &UpdateStatusInput{
		Status:   "available",
		Location: "Central Blood Bank",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, resp.Status)
	assert.Equal(t, 50, resp.ProgressPercent)
	assert.Equal(t, "Central Blood Bank", unit.CurrentLocation)
}

func TestUpdateStatusAuditsClientIP(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.WithValue(context.Background(), "clientIP", "203.0.113.9")
	unit := &models.BloodUnit{
		ID:        8,
		BloodType: domain.BloodOPos,
		Status:    domain.UnitTested,
	}
	m.unitRepo.On("GetByID", ctx, uint(8)).Return(unit, nil)
	m.unitRepo.On("Update", ctx, unit).Return(nil)

	var entry *models.AuditLog
	m.auditRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*models.AuditLog)
	}).Return(nil)

	_, err := svc.UpdateStatus(ctx, 1, 8, &UpdateStatusInput{Status: "available"})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "203.0.113.9", entry.IPAddress)
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()
	m.unitRepo.On("GetByID", ctx, uint(8)).Return(&models.BloodUnit{
		ID:     8,
		Status: domain.UnitAvailable,
	}, nil)

	_, err := svc.UpdateStatus(ctx, 1, 8, &UpdateStatusInput{Status: "stored"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	m.unitRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatusTerminalRejected(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()
	m.unitRepo.On("GetByID", ctx, uint(8)).Return(&models.BloodUnit{
		ID:     8,
		Status: domain.UnitExpired,
	}, nil)

	_, err := svc.UpdateStatus(ctx, 1, 8, &UpdateStatusInput{Status: "available"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, _ := newTestInventoryService()
	_, err := svc.UpdateStatus(context.Background(), 1, 8, &UpdateStatusInput{Status: "teleported"})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitStatus)
}

func TestUpdateStatusUnitNotFound(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()
	m.unitRepo.On("GetByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateStatus(ctx, 1, 404, &UpdateStatusInput{Status: "stored"})
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestSummaryZeroFillsAllTypes(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()
	m.unitRepo.On("CountAvailableByType", ctx).Return(map[domain.BloodType]int64{
		domain.BloodOPos: 5,
		domain.BloodANeg: 2,
	}, nil)

	out, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, out.Entries, 8)
	assert.Equal(t, int64(7), out.TotalAvailable)

	byType := make(map[domain.BloodType]int64)
	for _, e := range out.Entries {
		byType[e.BloodType] = e.Available
	}
	assert.Equal(t, int64(5), byType[domain.BloodOPos])
	assert.Equal(t, int64(2), byType[domain.BloodANeg])
	assert.Equal(t, int64(0), byType[domain.BloodABPos])
}

func TestSweepExpired(t *testing.T) {
	svc, m := newTestInventoryService()
	ctx := context.Background()
	units := []*models.BloodUnit{
		{ID: 1, Status: domain.UnitAvailable, ExpiryDate: time.Now().AddDate(0, 0, -1)},
		{ID: 2, Status: domain.UnitStored, ExpiryDate: time.Now().AddDate(0, 0, -3)},
	}
	m.unitRepo.On("ListExpiredBefore", ctx, mock.Anything).Return(units, nil)
	m.unitRepo.On("Update", ctx, mock.Anything).Return(nil)
	m.auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	count, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	for _, unit := range units {
		assert.Equal(t, domain.UnitExpired, unit.Status)
	}
}

func TestListUnitsInvalidFilter(t *testing.T) {
	svc, _ := newTestInventoryService()
	ctx := context.Background()

	_, err := svc.ListUnits(ctx, &ListUnitsInput{BloodType: "Q+"})
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)

	_, err = svc.ListUnits(ctx, &ListUnitsInput{Status: "melted"})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitStatus)
}
