package create_course_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourseID <= 0 {
		return fmt.Errorf("%w: courseID must be positive", ErrInvalidInput)
	}

	if req.StepID <= 0 {
		return fmt.Errorf("%w: stepID must be positive", ErrInvalidInput)
	}

	if !req.StepType.Valid() {
		return fmt.Errorf("%w: unknown step type %q", ErrInvalidInput, req.StepType)
	}

	if req.Quantity < domain.MinSlotsPerCreation || req.Quantity > domain.MaxSlotsPerCreation {
		return fmt.Errorf("%w: quantity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotsPerCreation, domain.MaxSlotsPerCreation)
	}

	if req.MeetingLink != nil && len(*req.MeetingLink) > domain.MaxMeetingLinkLength {
		return fmt.Errorf("%w: meetingLink exceeds %d characters", ErrInvalidInput, domain.MaxMeetingLinkLength)
	}

	return nil
}
