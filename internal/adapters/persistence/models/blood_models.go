package models

import (
	"time"

	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Donation Centers & Appointments
// ============================================================

// DonationCenter represents donation_centers table (Master)
type DonationCenter struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:20" json:"phone"`
	OpenHours string         `gorm:"size:50" json:"open_hours"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DonationCenter) TableName() string {
	return "donation_centers"
}

// Appointment represents appointments table
type Appointment struct {
	ID          uint                     `gorm:"primaryKey" json:"id"`
	DonorID     uint                     `gorm:"not null;index" json:"donor_id"`
	CenterID    uint                     `gorm:"not null;index" json:"center_id"`
	Date        time.Time                `gorm:"type:date;not null;index" json:"date"`
	TimeSlot    string                   `gorm:"size:10;not null" json:"time_slot"`
	Status      domain.AppointmentStatus `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	Notes       string                   `gorm:"type:text" json:"notes"`
	CompletedAt *time.Time               `json:"completed_at"`
	CancelledAt *time.Time               `json:"cancelled_at"`
	CreatedAt   time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt           `gorm:"index" json:"-"`

	Donor  *DonorProfile   `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Center *DonationCenter `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentResponse DTO
type AppointmentResponse struct {
	ID         uint                     `json:"id"`
	DonorID    uint                     `json:"donor_id"`
	DonorName  string                   `json:"donor_name,omitempty"`
	CenterID   uint                     `json:"center_id"`
	CenterName string                   `json:"center_name,omitempty"`
	Date       string                   `json:"date"`
	TimeSlot   string                   `json:"time_slot"`
	Status     domain.AppointmentStatus `json:"status"`
	Notes      string                   `json:"notes,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

func (a *Appointment) ToResponse() *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:        a.ID,
		DonorID:   a.DonorID,
		CenterID:  a.CenterID,
		Date:      a.Date.Format("2006-01-02"),
		TimeSlot:  a.TimeSlot,
		Status:    a.Status,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
	}
	if a.Donor != nil {
		resp.DonorName = a.Donor.FullName
	}
	if a.Center != nil {
		resp.CenterName = a.Center.Name
	}
	return resp
}

// ============================================================
// Blood Units
// ============================================================

// BloodUnit represents blood_units table: a trackable quantity of donated
// blood moving through the collection-to-use lifecycle.
type BloodUnit struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	SerialNumber    string            `gorm:"size:40;uniqueIndex;not null" json:"serial_number"`
	BloodType       domain.BloodType  `gorm:"size:3;not null;index" json:"blood_type"`
	Status          domain.UnitStatus `gorm:"size:20;not null;default:'collected';index" json:"status"`
	DonationDate    time.Time         `gorm:"type:date;not null" json:"donation_date"`
	ExpiryDate      time.Time         `gorm:"type:date;not null;index" json:"expiry_date"`
	DonorID         *uint             `gorm:"index" json:"donor_id"`
	CurrentLocation string            `gorm:"size:100" json:"current_location"`
	Destination     string            `gorm:"size:100" json:"destination"`
	RequestID       *uint             `gorm:"index" json:"request_id"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	Donor   *DonorProfile `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Request *BloodRequest `gorm:"foreignKey:RequestID" json:"-"`
}

func (BloodUnit) TableName() string {
	return "blood_units"
}

// UnitResponse DTO with the progress indicator the client renders.
type UnitResponse struct {
	ID              uint              `json:"id"`
	SerialNumber    string            `json:"serial_number"`
	BloodType       domain.BloodType  `json:"blood_type"`
	Status          domain.UnitStatus `json:"status"`
	ProgressPercent int               `json:"progress_percent"`
	IsTerminal      bool              `json:"is_terminal"`
	DonationDate    string            `json:"donation_date"`
	ExpiryDate      string            `json:"expiry_date"`
	DonorID         *uint             `json:"donor_id,omitempty"`
	DonorName       string            `json:"donor_name,omitempty"`
	CurrentLocation string            `json:"current_location,omitempty"`
	Destination     string            `json:"destination,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (u *BloodUnit) ToResponse() *UnitResponse {
	resp := &UnitResponse{
		ID:              u.ID,
		SerialNumber:    u.SerialNumber,
		BloodType:       u.BloodType,
		Status:          u.Status,
		ProgressPercent: u.Status.ProgressPercent(),
		IsTerminal:      u.Status.IsTerminal(),
		DonationDate:    u.DonationDate.Format("2006-01-02"),
		ExpiryDate:      u.ExpiryDate.Format("2006-01-02"),
		DonorID:         u.DonorID,
		CurrentLocation: u.CurrentLocation,
		Destination:     u.Destination,
		CreatedAt:       u.CreatedAt,
	}
	if u.Donor != nil {
		resp.DonorName = u.Donor.FullName
	}
	return resp
}

// ============================================================
// Blood Requests
// ============================================================

// BloodRequest represents blood_requests table
type BloodRequest struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	HospitalID  uint                   `gorm:"not null;index" json:"hospital_id"`
	BloodType   domain.BloodType       `gorm:"size:3;not null;index" json:"blood_type"`
	Units       int                    `gorm:"not null" json:"units"`
	Priority    domain.RequestPriority `gorm:"size:10;not null;default:'low'" json:"priority"`
	Status      domain.RequestStatus   `gorm:"size:10;not null;default:'pending';index" json:"status"`
	Notes       string                 `gorm:"type:text" json:"notes"`
	RequestedAt time.Time              `gorm:"autoCreateTime" json:"requested_at"`
	ApprovedBy  *uint                  `json:"approved_by"`
	ApprovedAt  *time.Time             `json:"approved_at"`
	FulfilledBy *uint                  `json:"fulfilled_by"`
	FulfilledAt *time.Time             `json:"fulfilled_at"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`

	Hospital      *HospitalProfile `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Approver      *User            `gorm:"foreignKey:ApprovedBy" json:"-"`
	Fulfiller     *User            `gorm:"foreignKey:FulfilledBy" json:"-"`
	AssignedUnits []BloodUnit      `gorm:"foreignKey:RequestID" json:"assigned_units,omitempty"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}

// RequestResponse DTO
type RequestResponse struct {
	ID           uint                   `json:"id"`
	HospitalID   uint                   `json:"hospital_id"`
	HospitalName string                 `json:"hospital_name,omitempty"`
	BloodType    domain.BloodType       `json:"blood_type"`
	Units        int                    `json:"units"`
	Priority     domain.RequestPriority `json:"priority"`
	Status       domain.RequestStatus   `json:"status"`
	Notes        string                 `json:"notes,omitempty"`
	RequestedAt  time.Time              `json:"requested_at"`
	ApprovedAt   *time.Time             `json:"approved_at,omitempty"`
	FulfilledAt  *time.Time             `json:"fulfilled_at,omitempty"`
}

func (r *BloodRequest) ToResponse() *RequestResponse {
	resp := &RequestResponse{
		ID:          r.ID,
		HospitalID:  r.HospitalID,
		BloodType:   r.BloodType,
		Units:       r.Units,
		Priority:    r.Priority,
		Status:      r.Status,
		Notes:       r.Notes,
		RequestedAt: r.RequestedAt,
		ApprovedAt:  r.ApprovedAt,
		FulfilledAt: r.FulfilledAt,
	}
	if r.Hospital != nil {
		resp.HospitalName = r.Hospital.Name
	}
	return resp
}
