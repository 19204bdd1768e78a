package domain

import "time"

// Attendance records that a trainee was present at a course slot.
// The (TraineeID, CourseSlotID) pair is unique: marking the same
// attendance twice is a conflict, not an update.
type Attendance struct {
	ID           int64
	TraineeID    int64
	CourseSlotID int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AttendanceFilter filters attendance lookups
type AttendanceFilter struct {
	TraineeID    *int64
	CourseSlotID *int64
	SlotIDs      []int64 // non-empty overrides CourseSlotID
}
