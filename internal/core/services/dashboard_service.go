package services

import (
	"context"
	"errors"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers     int64 `json:"total_users"`
	TotalDonors    int64 `json:"total_donors"`
	TotalHospitals int64 `json:"total_hospitals"`
	TotalAdmins    int64 `json:"total_admins"`

	// Inventory Statistics
	TotalUnits       int64                       `json:"total_units"`
	AvailableUnits   int64                       `json:"available_units"`
	ExpiringSoon     int64                       `json:"expiring_soon"`
	UnitsByBloodType map[domain.BloodType]int64  `json:"units_by_blood_type"`
	UnitsByStatus    map[domain.UnitStatus]int64 `json:"units_by_status"`

	// Request Statistics
	TotalRequests     int64 `json:"total_requests"`
	PendingRequests   int64 `json:"pending_requests"`
	ApprovedRequests  int64 `json:"approved_requests"`
	FulfilledRequests int64 `json:"fulfilled_requests"`
	RejectedRequests  int64 `json:"rejected_requests"`

	// Appointments
	AppointmentsToday int64 `json:"appointments_today"`

	// Recent Activity
	RecentRequests []RequestSummary `json:"recent_requests"`
}

// RequestSummary represents a request summary line
type RequestSummary struct {
	ID           uint      `json:"id"`
	HospitalName string    `json:"hospital_name"`
	BloodType    string    `json:"blood_type"`
	Units        int       `json:"units"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	RequestedAt  time.Time `json:"requested_at"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{
		UnitsByBloodType: make(map[domain.BloodType]int64),
		UnitsByStatus:    make(map[domain.UnitStatus]int64),
	}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", models.RoleDonor).Count(&data.TotalDonors)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", models.RoleHospital).Count(&data.TotalHospitals)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", models.RoleAdmin).Count(&data.TotalAdmins)

	// Unit counts
	s.db.WithContext(ctx).Table("blood_units").Where("deleted_at IS NULL").Count(&data.TotalUnits)
	s.db.WithContext(ctx).Table("blood_units").
		Where("status = ? AND deleted_at IS NULL", domain.UnitAvailable).
		Count(&data.AvailableUnits)

	// Available units expiring within 7 days
	s.db.WithContext(ctx).Table("blood_units").
		Where("status = ? AND expiry_date <= ? AND deleted_at IS NULL",
			domain.UnitAvailable, time.Now().AddDate(0, 0, 7)).
		Count(&data.ExpiringSoon)

	// Available units per blood type
	var typeCounts []struct {
		BloodType string
		Count     int64
	}
	s.db.WithContext(ctx).Table("blood_units").
		Select("blood_type, COUNT(*) as count").
		Where("status = ? AND deleted_at IS NULL", domain.UnitAvailable).
		Group("blood_type").
		Scan(&typeCounts)
	for _, bt := range domain.BloodTypes {
		data.UnitsByBloodType[bt] = 0
	}
	for _, tc := range typeCounts {
		data.UnitsByBloodType[domain.BloodType(tc.BloodType)] = tc.Count
	}

	// Units per lifecycle status
	var statusCounts []struct {
		Status string
		Count  int64
	}
	s.db.WithContext(ctx).Table("blood_units").
		Select("status, COUNT(*) as count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&statusCounts)
	for _, sc := range statusCounts {
		data.UnitsByStatus[domain.UnitStatus(sc.Status)] = sc.Count
	}

	// Request counts by status
	s.db.WithContext(ctx).Table("blood_requests").Where("deleted_at IS NULL").Count(&data.TotalRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where("status = ? AND deleted_at IS NULL", domain.RequestPending).Count(&data.PendingRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where("status = ? AND deleted_at IS NULL", domain.RequestApproved).Count(&data.ApprovedRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where("status = ? AND deleted_at IS NULL", domain.RequestFulfilled).Count(&data.FulfilledRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where("status = ? AND deleted_at IS NULL", domain.RequestRejected).Count(&data.RejectedRequests)

	// Appointments today
	today := time.Now().Format("2006-01-02")
	s.db.WithContext(ctx).Table("appointments").
		Where("date = ? AND deleted_at IS NULL", today).
		Count(&data.AppointmentsToday)

	// Recent requests
	var recent []struct {
		ID           uint
		HospitalName string
		BloodType    string
		Units        int
		Priority     string
		Status       string
		RequestedAt  time.Time
	}
	s.db.WithContext(ctx).Table("blood_requests").
		Select("blood_requests.id, hospital_profiles.name as hospital_name, blood_requests.blood_type, blood_requests.units, blood_requests.priority, blood_requests.status, blood_requests.requested_at").
		Joins("LEFT JOIN hospital_profiles ON blood_requests.hospital_id = hospital_profiles.id").
		Where("blood_requests.deleted_at IS NULL").
		Order("blood_requests.requested_at DESC").
		Limit(10).
		Scan(&recent)

	data.RecentRequests = make([]RequestSummary, len(recent))
	for i, r := range recent {
		data.RecentRequests[i] = RequestSummary{
			ID:           r.ID,
			HospitalName: r.HospitalName,
			BloodType:    r.BloodType,
			Units:        r.Units,
			Priority:     r.Priority,
			Status:       r.Status,
			RequestedAt:  r.RequestedAt,
		}
	}

	return data, nil
}

// ============================================================
// Donor Dashboard
// ============================================================

// DonorDashboardData represents donor dashboard data
type DonorDashboardData struct {
	BloodType            domain.BloodType              `json:"blood_type"`
	IsEligible           bool                          `json:"is_eligible"`
	LastDonationDate     *time.Time                    `json:"last_donation_date"`
	TotalDonations       int64                         `json:"total_donations"`
	UpcomingAppointments []*models.AppointmentResponse `json:"upcoming_appointments"`
}

// GetDonorDashboard returns donor dashboard data for a user
func (s *DashboardService) GetDonorDashboard(ctx context.Context, userID uint) (*DonorDashboardData, error) {
	var donor models.DonorProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorProfileMissing
		}
		return nil, err
	}

	data := &DonorDashboardData{
		BloodType:        donor.BloodType,
		IsEligible:       donor.IsEligible,
		LastDonationDate: donor.LastDonationDate,
	}

	// Completed donations
	s.db.WithContext(ctx).Table("appointments").
		Where("donor_id = ? AND status = ? AND deleted_at IS NULL", donor.ID, domain.ApptCompleted).
		Count(&data.TotalDonations)

	// Active upcoming appointments
	var appts []models.Appointment
	s.db.WithContext(ctx).
		Preload("Center").
		Where("donor_id = ? AND status IN ? AND date >= ?",
			donor.ID,
			[]domain.AppointmentStatus{domain.ApptScheduled, domain.ApptConfirmed},
			time.Now().Format("2006-01-02")).
		Order("date ASC").
		Find(&appts)

	data.UpcomingAppointments = make([]*models.AppointmentResponse, len(appts))
	for i := range appts {
		data.UpcomingAppointments[i] = appts[i].ToResponse()
	}

	return data, nil
}

// ============================================================
// Hospital Dashboard
// ============================================================

// HospitalDashboardData represents hospital dashboard data
type HospitalDashboardData struct {
	TotalRequests     int64            `json:"total_requests"`
	PendingRequests   int64            `json:"pending_requests"`
	ApprovedRequests  int64            `json:"approved_requests"`
	FulfilledRequests int64            `json:"fulfilled_requests"`
	RejectedRequests  int64            `json:"rejected_requests"`
	UnitsReceived     int64            `json:"units_received"`
	RecentRequests    []RequestSummary `json:"recent_requests"`
}

// GetHospitalDashboard returns hospital dashboard data for a user
func (s *DashboardService) GetHospitalDashboard(ctx context.Context, userID uint) (*HospitalDashboardData, error) {
	var hospital models.HospitalProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalProfileMissing
		}
		return nil, err
	}

	data := &HospitalDashboardData{}

	base := "hospital_id = ? AND deleted_at IS NULL"
	s.db.WithContext(ctx).Table("blood_requests").Where(base, hospital.ID).Count(&data.TotalRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where(base+" AND status = ?", hospital.ID, domain.RequestPending).Count(&data.PendingRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where(base+" AND status = ?", hospital.ID, domain.RequestApproved).Count(&data.ApprovedRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where(base+" AND status = ?", hospital.ID, domain.RequestFulfilled).Count(&data.FulfilledRequests)
	s.db.WithContext(ctx).Table("blood_requests").
		Where(base+" AND status = ?", hospital.ID, domain.RequestRejected).Count(&data.RejectedRequests)

	// Units assigned to this hospital's fulfilled requests
	s.db.WithContext(ctx).Table("blood_units").
		Joins("JOIN blood_requests ON blood_units.request_id = blood_requests.id").
		Where("blood_requests.hospital_id = ? AND blood_units.deleted_at IS NULL", hospital.ID).
		Count(&data.UnitsReceived)

	var recent []struct {
		ID          uint
		BloodType   string
		Units       int
		Priority    string
		Status      string
		RequestedAt time.Time
	}
	s.db.WithContext(ctx).Table("blood_requests").
		Select("id, blood_type, units, priority, status, requested_at").
		Where("hospital_id = ? AND deleted_at IS NULL", hospital.ID).
		Order("requested_at DESC").
		Limit(10).
		Scan(&recent)

	data.RecentRequests = make([]RequestSummary, len(recent))
	for i, r := range recent {
		data.RecentRequests[i] = RequestSummary{
			ID:           r.ID,
			HospitalName: hospital.Name,
			BloodType:    r.BloodType,
			Units:        r.Units,
			Priority:     r.Priority,
			Status:       r.Status,
			RequestedAt:  r.RequestedAt,
		}
	}

	return data, nil
}
