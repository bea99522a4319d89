package models

import (
	"time"

	"bloodlink/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Profile Tables
// ============================================================

// User roles
const (
	RoleDonor    = "DONOR"
	RoleHospital = "HOSPITAL"
	RoleAdmin    = "ADMIN"
)

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'DONOR'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DonorProfile    *DonorProfile    `gorm:"foreignKey:UserID" json:"donor_profile,omitempty"`
	HospitalProfile *HospitalProfile `gorm:"foreignKey:UserID" json:"hospital_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint             `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	IsActive   bool             `json:"is_active"`
	FullName   string           `json:"full_name,omitempty"`
	BloodType  domain.BloodType `json:"blood_type,omitempty"`
	DonorID    *uint            `json:"donor_id,omitempty"`
	HospitalID *uint            `json:"hospital_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.DonorProfile != nil {
		resp.FullName = u.DonorProfile.FullName
		resp.BloodType = u.DonorProfile.BloodType
		resp.DonorID = &u.DonorProfile.ID
	}
	if u.HospitalProfile != nil {
		resp.FullName = u.HospitalProfile.Name
		resp.HospitalID = &u.HospitalProfile.ID
	}
	return resp
}

// DonorProfile represents donor_profiles table
type DonorProfile struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string           `gorm:"size:100;not null" json:"full_name"`
	BloodType        domain.BloodType `gorm:"size:3;not null;index" json:"blood_type"`
	Phone            string           `gorm:"size:20" json:"phone"`
	DateOfBirth      *time.Time       `gorm:"type:date" json:"date_of_birth"`
	Address          string           `gorm:"size:255" json:"address"`
	IsEligible       bool             `gorm:"default:true" json:"is_eligible"`
	MedicalHistory   string           `gorm:"type:text" json:"medical_history"`
	LastDonationDate *time.Time       `gorm:"type:date;index" json:"last_donation_date"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (DonorProfile) TableName() string {
	return "donor_profiles"
}

// HospitalProfile represents hospital_profiles table
type HospitalProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	LicenseNumber string    `gorm:"size:50;uniqueIndex;not null" json:"license_number"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Address       string    `gorm:"size:255" json:"address"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (HospitalProfile) TableName() string {
	return "hospital_profiles"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Support Tables
// ============================================================

// SystemSetting represents system_settings table (key/value)
type SystemSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"size:255;not null" json:"value"`
	Description string    `gorm:"size:255" json:"description"`
	UpdatedBy   *uint     `json:"updated_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// Setting keys seeded at boot
const (
	SettingAppointmentWindowDays = "appointment_window_days"
	SettingUnitShelfLifeDays     = "unit_shelf_life_days"
	SettingMatchingResultLimit   = "matching_result_limit"
)

// Notification channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelApp   = "app"
)

// Notification delivery statuses
const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// Notification represents notifications table. Append-only from the
// client's perspective: only ever read and marked read.
type Notification struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	RecipientID    uint              `gorm:"not null;index" json:"recipient_id"`
	Subject        string            `gorm:"size:150;not null" json:"subject"`
	Message        string            `gorm:"type:text" json:"message"`
	EventType      string            `gorm:"size:50;index" json:"event_type"`
	BloodType      *domain.BloodType `gorm:"size:3" json:"blood_type,omitempty"`
	Units          *int              `json:"units,omitempty"`
	Channel        string            `gorm:"size:10;default:'app'" json:"channel"`
	DeliveryStatus string            `gorm:"size:10;default:'pending'" json:"delivery_status"`
	IsRead         bool              `gorm:"default:false;index" json:"is_read"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`

	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Audit entity kinds
const (
	AuditEntityUnit        = "blood_unit"
	AuditEntityRequest     = "blood_request"
	AuditEntityAppointment = "appointment"
)

// Audit actions
const (
	AuditCreate       = "CREATE"
	AuditStatusChange = "STATUS_CHANGE"
	AuditApprove      = "APPROVE"
	AuditReject       = "REJECT"
	AuditFulfill      = "FULFILL"
	AuditCancel       = "CANCEL"
	AuditComplete     = "COMPLETE"
	AuditExpire       = "EXPIRE"
)

// AuditLog represents audit_logs table: one row per state-changing action
// on a unit, request, or appointment.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EntityType  string    `gorm:"size:30;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID    uint      `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Action      string    `gorm:"size:30;not null" json:"action"`
	FromStatus  string    `gorm:"size:20" json:"from_status,omitempty"`
	ToStatus    string    `gorm:"size:20" json:"to_status,omitempty"`
	Description string    `gorm:"type:text" json:"description"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	IPAddress   string    `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth & profiles
		&User{},
		&DonorProfile{},
		&HospitalProfile{},
		&RefreshToken{},
		// Master
		&DonationCenter{},
		// Main
		&Appointment{},
		&BloodUnit{},
		&BloodRequest{},
		// Support
		&Notification{},
		&AuditLog{},
		&SystemSetting{},
	)
}
