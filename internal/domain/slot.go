package domain

import "time"

// StepType represents the delivery mode of a course step
type StepType string

const (
	StepOnSite    StepType = "on_site"
	StepRemote    StepType = "remote"
	StepELearning StepType = "e_learning"
)

// Valid returns true if the step type is one of the known delivery modes
func (t StepType) Valid() bool {
	return t == StepOnSite || t == StepRemote || t == StepELearning
}

// Address represents the physical location of an on-site slot
type Address struct {
	FullAddress string
	Street      string
	City        string
	ZipCode     string
}

// CourseSlot represents a single schedulable session of a course step
type CourseSlot struct {
	ID       int64
	CourseID int64
	StepID   int64
	StepType StepType

	// StartDate and EndDate are either both set (planned slot)
	// or both nil (slot waiting to be planned)
	StartDate *time.Time
	EndDate   *time.Time

	Address     *Address // only meaningful for on_site steps
	MeetingLink *string  // only meaningful for remote steps

	// Trainees restricts the slot to a subset of the course roster.
	// nil means the slot applies to every trainee of the course.
	Trainees []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPlanned returns true if the slot has a scheduled interval
func (s *CourseSlot) IsPlanned() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// IsRestricted returns true if the slot targets a subset of the course roster
func (s *CourseSlot) IsRestricted() bool {
	return len(s.Trainees) > 0
}

// IntervalsOverlap reports whether two half-open intervals [aStart, aEnd)
// and [bStart, bEnd) actually overlap. Touching boundaries
// (aEnd == bStart or bEnd == aStart) do not count as an overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
