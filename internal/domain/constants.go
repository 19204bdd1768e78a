package domain

// Whole-day scheduling constants
// A whole-day action keeps the supplied morning interval and pairs it
// with a synthesized afternoon slot at these fixed hours, evaluated in
// the business timezone configured for the service.
const (
	AfternoonStartHour = 14
	AfternoonEndHour   = 17
	AfternoonEndMinute = 30
)

// Business validation constants
const (
	MinSlotsPerCreation  = 1
	MaxSlotsPerCreation  = 30
	MaxMeetingLinkLength = 500
)

// Time format constants
const (
	DisplayDateFormat = "02/01/2006" // DD/MM/YYYY, used in convocation documents
)
