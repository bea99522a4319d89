package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBloodTypeIsValid(t *testing.T) {
	for _, bt := range BloodTypes {
		assert.True(t, bt.IsValid(), "expected %s to be valid", bt)
	}
	assert.False(t, BloodType("C+").IsValid())
	assert.False(t, BloodType("").IsValid())
	assert.False(t, BloodType("a+").IsValid())
}

func TestCompatibleDonorTypes(t *testing.T) {
	// O- donates to everyone
	for _, recipient := range BloodTypes {
		assert.True(t, CanDonateTo(BloodONeg, recipient),
			"O- should donate to %s", recipient)
	}

	// AB+ receives from everyone
	assert.Len(t, CompatibleDonorTypes(BloodABPos), 8)

	// O- receives only from O-
	assert.Equal(t, []BloodType{BloodONeg}, CompatibleDonorTypes(BloodONeg))

	assert.True(t, CanDonateTo(BloodANeg, BloodAPos))
	assert.False(t, CanDonateTo(BloodAPos, BloodANeg))
	assert.False(t, CanDonateTo(BloodBPos, BloodAPos))

	assert.Empty(t, CompatibleDonorTypes(BloodType("nope")))
}

func TestUnitStatusOrdinal(t *testing.T) {
	forward := []UnitStatus{
		UnitCollected, UnitStored, UnitTested, UnitAvailable,
		UnitReserved, UnitInTransit, UnitDelivered, UnitUsed,
	}
	for i, s := range forward {
		assert.Equal(t, i+1, s.Ordinal())
	}
	assert.Equal(t, 0, UnitExpired.Ordinal())
	assert.Equal(t, 0, UnitDiscarded.Ordinal())
}

func TestUnitStatusProgressPercent(t *testing.T) {
	tests := []struct {
		status UnitStatus
		want   int
	}{
		{UnitCollected, 13},
		{UnitStored, 25},
		{UnitTested, 38},
		{UnitAvailable, 50},
		{UnitReserved, 63},
		{UnitInTransit, 75},
		{UnitDelivered, 88},
		{UnitUsed, 100},
		{UnitExpired, 100},
		{UnitDiscarded, 100},
		{UnitStatus("bogus"), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.ProgressPercent(), "status %s", tt.status)
	}
}

func TestUnitStatusCanTransitionTo(t *testing.T) {
	// Forward moves, single and multi step
	assert.True(t, UnitCollected.CanTransitionTo(UnitStored))
	assert.True(t, UnitCollected.CanTransitionTo(UnitAvailable))
	assert.True(t, UnitAvailable.CanTransitionTo(UnitUsed))

	// Backward moves are rejected
	assert.False(t, UnitAvailable.CanTransitionTo(UnitTested))
	assert.False(t, UnitUsed.CanTransitionTo(UnitCollected))

	// Self transition is rejected
	assert.False(t, UnitStored.CanTransitionTo(UnitStored))

	// Absorbing states are reachable from any non-terminal state
	assert.True(t, UnitCollected.CanTransitionTo(UnitExpired))
	assert.True(t, UnitDelivered.CanTransitionTo(UnitDiscarded))

	// Terminal states never exit
	assert.False(t, UnitUsed.CanTransitionTo(UnitExpired))
	assert.False(t, UnitExpired.CanTransitionTo(UnitAvailable))
	assert.False(t, UnitDiscarded.CanTransitionTo(UnitExpired))

	// Unknown statuses never transition
	assert.False(t, UnitStatus("bogus").CanTransitionTo(UnitStored))
	assert.False(t, UnitStored.CanTransitionTo(UnitStatus("bogus")))
}

func TestUnitStatusIsTerminal(t *testing.T) {
	assert.True(t, UnitUsed.IsTerminal())
	assert.True(t, UnitExpired.IsTerminal())
	assert.True(t, UnitDiscarded.IsTerminal())
	assert.False(t, UnitCollected.IsTerminal())
	assert.False(t, UnitDelivered.IsTerminal())
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		raw  string
		want RequestPriority
		ok   bool
	}{
		{"low", PriorityLow, true},
		{"medium", PriorityMedium, true},
		{"high", PriorityHigh, true},
		{"critical", PriorityCritical, true},
		{"normal", PriorityLow, true},
		{"urgent", PriorityMedium, true},
		{"", "", false},
		{"severe", "", false},
		{"LOW", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizePriority(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestPriorityIsUrgent(t *testing.T) {
	assert.False(t, PriorityLow.IsUrgent())
	assert.False(t, PriorityMedium.IsUrgent())
	assert.True(t, PriorityHigh.IsUrgent())
	assert.True(t, PriorityCritical.IsUrgent())
}

func TestPriorityRank(t *testing.T) {
	assert.True(t, PriorityCritical.Rank() > PriorityHigh.Rank())
	assert.True(t, PriorityHigh.Rank() > PriorityMedium.Rank())
	assert.True(t, PriorityMedium.Rank() > PriorityLow.Rank())
	assert.Equal(t, 0, RequestPriority("bogus").Rank())
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestPending.IsTerminal())
	assert.False(t, RequestApproved.IsTerminal())
	assert.True(t, RequestRejected.IsTerminal())
	assert.True(t, RequestFulfilled.IsTerminal())
}

func TestAppointmentStatusIsActive(t *testing.T) {
	assert.True(t, ApptScheduled.IsActive())
	assert.True(t, ApptConfirmed.IsActive())
	assert.False(t, ApptCompleted.IsActive())
	assert.False(t, ApptCancelled.IsActive())
	assert.False(t, ApptMissed.IsActive())
	assert.False(t, ApptRejected.IsActive())
}

func TestTimeSlots(t *testing.T) {
	assert.Len(t, TimeSlots, 9)
	assert.Equal(t, "09:00 AM", TimeSlots[0])
	assert.Equal(t, "05:00 PM", TimeSlots[8])

	for _, slot := range TimeSlots {
		assert.True(t, IsValidTimeSlot(slot))
	}
	assert.False(t, IsValidTimeSlot("09:00"))
	assert.False(t, IsValidTimeSlot("06:00 PM"))
	assert.False(t, IsValidTimeSlot(""))
}
