package domain

import "time"

// SlotPatch describes a partial update of a course slot.
// Set* fields are applied when non-nil; Unset* flags clear the
// corresponding columns. A field can only be set or unset, never both:
// unset flags win over set values.
type SlotPatch struct {
	SetStartDate   *time.Time
	SetEndDate     *time.Time
	SetAddress     *Address
	SetMeetingLink *string
	SetTrainees    []int64

	UnsetDates       bool // clears both start and end dates
	UnsetAddress     bool
	UnsetMeetingLink bool
	UnsetTrainees    bool
}

// IsEmpty returns true if the patch changes nothing
func (p *SlotPatch) IsEmpty() bool {
	return p.SetStartDate == nil && p.SetEndDate == nil &&
		p.SetAddress == nil && p.SetMeetingLink == nil && p.SetTrainees == nil &&
		!p.UnsetDates && !p.UnsetAddress && !p.UnsetMeetingLink && !p.UnsetTrainees
}
