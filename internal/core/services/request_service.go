package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Request workflow errors
var (
	ErrRequestNotFound        = errors.New("blood request not found")
	ErrRequestNotPending      = errors.New("request is not pending")
	ErrRequestNotApproved     = errors.New("request is not approved")
	ErrHospitalProfileMissing = errors.New("hospital profile not found")
	ErrInsufficientStock      = errors.New("not enough available units to fulfill this request")
	ErrInvalidUnitCount       = errors.New("units must be at least 1")
)

// RequestService handles the blood request workflow
type RequestService struct {
	requestRepo repositories.RequestRepository
	unitRepo    repositories.BloodUnitRepository
	profileRepo repositories.ProfileRepository
	auditRepo   repositories.AuditRepository
	settingRepo repositories.SettingRepository
	notifier    *NotificationService
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo repositories.RequestRepository,
	unitRepo repositories.BloodUnitRepository,
	profileRepo repositories.ProfileRepository,
	auditRepo repositories.AuditRepository,
	settingRepo repositories.SettingRepository,
	notifier *NotificationService,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		unitRepo:    unitRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		settingRepo: settingRepo,
		notifier:    notifier,
	}
}

// CreateRequestInput represents blood request creation input. Priority
// accepts both the canonical vocabulary and the legacy aliases
// "normal" and "urgent".
type CreateRequestInput struct {
	BloodType string `json:"blood_type"`
	Units     int    `json:"units"`
	Priority  string `json:"priority"`
	Notes     string `json:"notes"`
}

// CreateRequestOutput carries the created request and, for high and
// critical priorities, the donors matched for it.
type CreateRequestOutput struct {
	Request *models.RequestResponse `json:"request"`
	Matches []MatchResult           `json:"matches,omitempty"`
}

// Create files a new blood request for the hospital behind userID.
// High and critical priority requests trigger donor matching right away
// and hand the matches back to the requesting hospital.
func (s *RequestService) Create(ctx context.Context, userID uint, input *CreateRequestInput) (*CreateRequestOutput, error) {
	hospital, err := s.profileRepo.GetHospitalByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalProfileMissing
		}
		return nil, err
	}

	bloodType := domain.BloodType(input.BloodType)
	if !bloodType.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if input.Units < 1 {
		return nil, ErrInvalidUnitCount
	}

	priority := domain.PriorityLow
	if input.Priority != "" {
		normalized, ok := domain.NormalizePriority(input.Priority)
		if !ok {
			return nil, domain.ErrInvalidPriority
		}
		priority = normalized
	}

	req := &models.BloodRequest{
		HospitalID: hospital.ID,
		BloodType:  bloodType,
		Units:      input.Units,
		Priority:   priority,
		Status:     domain.RequestPending,
		Notes:      input.Notes,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	req.Hospital = hospital

	s.auditRequest(ctx, req.ID, models.AuditCreate, "", string(domain.RequestPending), userID,
		fmt.Sprintf("%s requested %d units of %s (%s)", hospital.Name, input.Units, bloodType, priority))

	s.notifier.Hub.BroadcastToRole(models.RoleAdmin, SSEEvent{
		Event: EventRequestStatusChanged,
		Data:  req.ToResponse(),
	})

	log.Printf("✅ Blood request %d created: %s needs %d × %s (%s)",
		req.ID, hospital.Name, input.Units, bloodType, priority)

	out := &CreateRequestOutput{Request: req.ToResponse()}

	// Urgent demand reaches out to compatible donors immediately
	if priority.IsUrgent() {
		matches, err := s.MatchDonors(ctx, req.ID)
		if err != nil {
			log.Printf("⚠️ Donor matching for request %d failed: %v", req.ID, err)
		} else {
			out.Matches = matches
		}
	}

	return out, nil
}

// ListInput represents request listing input
type ListRequestsInput struct {
	Page  int
	Limit int
}

// ListRequestsOutput represents a paged request listing
type ListRequestsOutput struct {
	Requests []*models.RequestResponse `json:"requests"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	Limit    int                       `json:"limit"`
}

// ListForHospital lists the hospital's own requests
func (s *RequestService) ListForHospital(ctx context.Context, userID uint, input *ListRequestsInput) (*ListRequestsOutput, error) {
	hospital, err := s.profileRepo.GetHospitalByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalProfileMissing
		}
		return nil, err
	}
	return s.list(ctx, &hospital.ID, input)
}

// ListAll lists every request (admin)
func (s *RequestService) ListAll(ctx context.Context, input *ListRequestsInput) (*ListRequestsOutput, error) {
	return s.list(ctx, nil, input)
}

func (s *RequestService) list(ctx context.Context, hospitalID *uint, input *ListRequestsInput) (*ListRequestsOutput, error) {
	p := pagination.Normalize(input.Page, input.Limit)

	requests, total, err := s.requestRepo.List(ctx, hospitalID, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = r.ToResponse()
	}

	return &ListRequestsOutput{
		Requests: responses,
		Total:    total,
		Page:     p.Page,
		Limit:    p.Limit,
	}, nil
}

// GetByID gets one request
func (s *RequestService) GetByID(ctx context.Context, id uint) (*models.RequestResponse, error) {
	req, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return req.ToResponse(), nil
}

// Approve approves a pending request (admin)
func (s *RequestService) Approve(ctx context.Context, adminID uint, requestID uint) (*models.RequestResponse, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now()
	req.Status = domain.RequestApproved
	req.ApprovedBy = &adminID
	req.ApprovedAt = &now
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.auditRequest(ctx, req.ID, models.AuditApprove, string(domain.RequestPending), string(domain.RequestApproved), adminID, "")
	s.notifyHospital(ctx, req, "Request approved",
		fmt.Sprintf("Your request for %d units of %s has been approved.", req.Units, req.BloodType))

	log.Printf("✅ Request %d approved by admin %d", req.ID, adminID)
	return req.ToResponse(), nil
}

// Reject rejects a pending request (admin)
func (s *RequestService) Reject(ctx context.Context, adminID uint, requestID uint, reason string) (*models.RequestResponse, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestPending {
		return nil, ErrRequestNotPending
	}

	req.Status = domain.RequestRejected
	if reason != "" {
		req.Notes = reason
	}
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.auditRequest(ctx, req.ID, models.AuditReject, string(domain.RequestPending), string(domain.RequestRejected), adminID, reason)
	s.notifyHospital(ctx, req, "Request rejected",
		fmt.Sprintf("Your request for %d units of %s has been rejected.", req.Units, req.BloodType))

	log.Printf("⚠️ Request %d rejected by admin %d", req.ID, adminID)
	return req.ToResponse(), nil
}

// Fulfill assigns the oldest available units of the requested type to an
// approved request and reserves them for the hospital (admin). Fails
// with ErrInsufficientStock when stock cannot cover the request.
func (s *RequestService) Fulfill(ctx context.Context, adminID uint, requestID uint) (*models.RequestResponse, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestApproved {
		return nil, ErrRequestNotApproved
	}

	units, err := s.unitRepo.FindAvailable(ctx, req.BloodType, req.Units)
	if err != nil {
		return nil, err
	}
	if len(units) < req.Units {
		return nil, ErrInsufficientStock
	}

	destination := ""
	if req.Hospital != nil {
		destination = req.Hospital.Name
	}

	for _, unit := range units {
		from := unit.Status
		unit.Status = domain.UnitReserved
		unit.Destination = destination
		unit.RequestID = &req.ID
		if err := s.unitRepo.Update(ctx, unit); err != nil {
			return nil, err
		}
		s.auditUnitChange(ctx, unit.ID, string(from), string(domain.UnitReserved), adminID,
			fmt.Sprintf("Reserved for request %d", req.ID))
	}

	now := time.Now()
	req.Status = domain.RequestFulfilled
	req.FulfilledBy = &adminID
	req.FulfilledAt = &now
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.auditRequest(ctx, req.ID, models.AuditFulfill, string(domain.RequestApproved), string(domain.RequestFulfilled), adminID,
		fmt.Sprintf("%d units reserved", len(units)))
	s.notifyHospital(ctx, req, "Request fulfilled",
		fmt.Sprintf("%d units of %s have been reserved for you and are being prepared for delivery.", req.Units, req.BloodType))

	log.Printf("✅ Request %d fulfilled: %d × %s reserved for %s", req.ID, len(units), req.BloodType, destination)
	return req.ToResponse(), nil
}

// MatchResult is one donor suggested for a request
type MatchResult struct {
	DonorID          uint             `json:"donor_id"`
	FullName         string           `json:"full_name"`
	BloodType        domain.BloodType `json:"blood_type"`
	Phone            string           `json:"phone,omitempty"`
	LastDonationDate *time.Time       `json:"last_donation_date,omitempty"`
}

// MatchDonors finds eligible donors whose blood type can serve the
// request, longest-rested first, and notifies them.
func (s *RequestService) MatchDonors(ctx context.Context, requestID uint) ([]MatchResult, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	compatible := domain.CompatibleDonorTypes(req.BloodType)
	limit := s.settingRepo.GetInt(ctx, models.SettingMatchingResultLimit, 10)

	donors, err := s.profileRepo.FindEligibleDonors(ctx, compatible, limit)
	if err != nil {
		return nil, err
	}

	results := make([]MatchResult, 0, len(donors))
	for _, donor := range donors {
		results = append(results, MatchResult{
			DonorID:          donor.ID,
			FullName:         donor.FullName,
			BloodType:        donor.BloodType,
			Phone:            donor.Phone,
			LastDonationDate: donor.LastDonationDate,
		})

		s.notifier.Notify(ctx, &NotifyInput{
			RecipientID: donor.UserID,
			Subject:     "Urgent request for your blood type",
			Message: fmt.Sprintf("A hospital urgently needs %d units of %s blood. Your %s donation could help. Please book an appointment.",
				req.Units, req.BloodType, donor.BloodType),
			EventType: EventRequestStatusChanged,
			BloodType: &req.BloodType,
			Units:     &req.Units,
		})
	}

	log.Printf("📡 Request %d matched %d compatible donors", req.ID, len(results))
	return results, nil
}

func (s *RequestService) getRequest(ctx context.Context, id uint) (*models.BloodRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *RequestService) notifyHospital(ctx context.Context, req *models.BloodRequest, subject, message string) {
	if req.Hospital == nil {
		return
	}
	s.notifier.Notify(ctx, &NotifyInput{
		RecipientID: req.Hospital.UserID,
		Subject:     subject,
		Message:     message,
		EventType:   EventRequestStatusChanged,
		BloodType:   &req.BloodType,
		Units:       &req.Units,
	})
	s.notifier.Hub.SendToUser(req.Hospital.UserID, SSEEvent{
		Event: EventRequestStatusChanged,
		Data:  req.ToResponse(),
	})
}

func (s *RequestService) auditRequest(ctx context.Context, requestID uint, action, from, to string, byUserID uint, description string) {
	entry := &models.AuditLog{
		EntityType:  models.AuditEntityRequest,
		EntityID:    requestID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		PerformedBy: byUserID,
		IPAddress:   clientIP(ctx),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("❌ Failed to record audit entry for request %d: %v", requestID, err)
	}
}

func (s *RequestService) auditUnitChange(ctx context.Context, unitID uint, from, to string, byUserID uint, description string) {
	entry := &models.AuditLog{
		EntityType:  models.AuditEntityUnit,
		EntityID:    unitID,
		Action:      models.AuditStatusChange,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		PerformedBy: byUserID,
		IPAddress:   clientIP(ctx),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("❌ Failed to record audit entry for unit %d: %v", unitID, err)
	}
}
