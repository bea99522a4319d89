package domain

import "math"

// BloodType is one of the 8 ABO/Rh combinations. Every form and filter in
// the system restricts input to this set.
type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

// BloodTypes lists all valid blood types in display order.
var BloodTypes = []BloodType{
	BloodAPos, BloodANeg,
	BloodBPos, BloodBNeg,
	BloodABPos, BloodABNeg,
	BloodOPos, BloodONeg,
}

// IsValid reports whether t is one of the 8 recognized blood types.
func (t BloodType) IsValid() bool {
	for _, bt := range BloodTypes {
		if t == bt {
			return true
		}
	}
	return false
}

// donorCompatibility maps a recipient blood type to the donor types whose
// blood it can receive (ABO/Rh red-cell compatibility).
var donorCompatibility = map[BloodType][]BloodType{
	BloodAPos:  {BloodAPos, BloodANeg, BloodOPos, BloodONeg},
	BloodANeg:  {BloodANeg, BloodONeg},
	BloodBPos:  {BloodBPos, BloodBNeg, BloodOPos, BloodONeg},
	BloodBNeg:  {BloodBNeg, BloodONeg},
	BloodABPos: BloodTypes,
	BloodABNeg: {BloodANeg, BloodBNeg, BloodABNeg, BloodONeg},
	BloodOPos:  {BloodOPos, BloodONeg},
	BloodONeg:  {BloodONeg},
}

// CompatibleDonorTypes returns the donor blood types that can give to a
// recipient of type t. Unknown types get an empty slice.
func CompatibleDonorTypes(t BloodType) []BloodType {
	return donorCompatibility[t]
}

// CanDonateTo reports whether blood of type donor can be transfused to a
// recipient of type recipient.
func CanDonateTo(donor, recipient BloodType) bool {
	for _, d := range donorCompatibility[recipient] {
		if d == donor {
			return true
		}
	}
	return false
}

// ============================================================
// Blood unit lifecycle
// ============================================================

// UnitStatus is a blood unit's lifecycle state.
type UnitStatus string

const (
	UnitCollected UnitStatus = "collected"
	UnitStored    UnitStatus = "stored"
	UnitTested    UnitStatus = "tested"
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitInTransit UnitStatus = "in_transit"
	UnitDelivered UnitStatus = "delivered"
	UnitUsed      UnitStatus = "used"
	UnitExpired   UnitStatus = "expired"
	UnitDiscarded UnitStatus = "discarded"
)

// unitOrder maps each forward-path state to its ordinal (1..8). The two
// absorbing states expired/discarded are deliberately absent.
var unitOrder = map[UnitStatus]int{
	UnitCollected: 1,
	UnitStored:    2,
	UnitTested:    3,
	UnitAvailable: 4,
	UnitReserved:  5,
	UnitInTransit: 6,
	UnitDelivered: 7,
	UnitUsed:      8,
}

// UnitStatuses lists all unit statuses, forward path first.
var UnitStatuses = []UnitStatus{
	UnitCollected, UnitStored, UnitTested, UnitAvailable,
	UnitReserved, UnitInTransit, UnitDelivered, UnitUsed,
	UnitExpired, UnitDiscarded,
}

// IsValid reports whether s is a recognized unit status.
func (s UnitStatus) IsValid() bool {
	_, forward := unitOrder[s]
	return forward || s == UnitExpired || s == UnitDiscarded
}

// IsTerminal reports whether s blocks any further transition. The absorbing
// off-path states and the final forward state are terminal.
func (s UnitStatus) IsTerminal() bool {
	return s == UnitExpired || s == UnitDiscarded || s == UnitUsed
}

// Ordinal returns the 1..8 position of a forward-path state, 0 otherwise.
func (s UnitStatus) Ordinal() int {
	return unitOrder[s]
}

// ProgressPercent returns the progress indicator value for a unit status:
// round(ordinal/8*100) on the forward path, 100 for the absorbing states.
func (s UnitStatus) ProgressPercent() int {
	if s == UnitExpired || s == UnitDiscarded {
		return 100
	}
	n, ok := unitOrder[s]
	if !ok {
		return 0
	}
	return int(math.Round(float64(n) / 8 * 100))
}

// CanTransitionTo reports whether a unit may move from s to next.
// Forward moves (one or more steps) are allowed, as is dropping into an
// absorbing state from any non-terminal state. Terminal states never exit
// and backward moves are rejected.
func (s UnitStatus) CanTransitionTo(next UnitStatus) bool {
	if !s.IsValid() || !next.IsValid() || s == next {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == UnitExpired || next == UnitDiscarded {
		return true
	}
	return unitOrder[next] > unitOrder[s]
}

// ============================================================
// Blood request workflow
// ============================================================

// RequestStatus is a blood request's workflow state.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestFulfilled RequestStatus = "fulfilled"
)

// IsValid reports whether s is a recognized request status.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestFulfilled:
		return true
	}
	return false
}

// IsTerminal reports whether the request accepts no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestRejected || s == RequestFulfilled
}

// RequestPriority is the urgency axis of a blood request, independent of
// its workflow status.
type RequestPriority string

const (
	PriorityLow      RequestPriority = "low"
	PriorityMedium   RequestPriority = "medium"
	PriorityHigh     RequestPriority = "high"
	PriorityCritical RequestPriority = "critical"
)

// priorityRank orders priorities for comparison and sorting.
var priorityRank = map[RequestPriority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// NormalizePriority maps the legacy urgency vocabulary (normal/urgent) onto
// the canonical low/medium/high/critical set. Unknown values report false.
func NormalizePriority(raw string) (RequestPriority, bool) {
	switch RequestPriority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return RequestPriority(raw), true
	}
	switch raw {
	case "normal":
		return PriorityLow, true
	case "urgent":
		return PriorityMedium, true
	}
	return "", false
}

// Rank returns the comparable urgency rank (1..4), 0 for unknown values.
func (p RequestPriority) Rank() int {
	return priorityRank[p]
}

// IsUrgent reports whether a request at this priority triggers immediate
// donor matching on submission.
func (p RequestPriority) IsUrgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// ============================================================
// Appointments
// ============================================================

// AppointmentStatus is a donation appointment's lifecycle state.
type AppointmentStatus string

const (
	ApptScheduled AppointmentStatus = "scheduled"
	ApptConfirmed AppointmentStatus = "confirmed"
	ApptCompleted AppointmentStatus = "completed"
	ApptCancelled AppointmentStatus = "cancelled"
	ApptMissed    AppointmentStatus = "missed"
	ApptRejected  AppointmentStatus = "rejected"
)

// IsActive reports whether the appointment is still in the bookable/
// cancellable subset {scheduled, confirmed}.
func (s AppointmentStatus) IsActive() bool {
	return s == ApptScheduled || s == ApptConfirmed
}

// TimeSlots is the fixed nine-slot daily donation schedule, hourly from
// 09:00 to 17:00.
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

// IsValidTimeSlot reports whether slot is one of the nine daily slots.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// AppointmentWindowDays is how far ahead a donor may book, inclusive.
const AppointmentWindowDays = 30

// DefaultShelfLifeDays is the whole-blood shelf life used to derive a
// unit's expiry date when none is supplied.
const DefaultShelfLifeDays = 42
