package update_course_slot

import (
	"fmt"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !req.Action.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	switch req.Action {
	case ActionReschedule:
		if req.MeetingLink != nil && len(*req.MeetingLink) > domain.MaxMeetingLinkLength {
			return fmt.Errorf("%w: meetingLink exceeds %d characters", ErrInvalidInput, domain.MaxMeetingLinkLength)
		}
	case ActionRestrict:
		for _, traineeID := range req.Trainees {
			if traineeID <= 0 {
				return fmt.Errorf("%w: trainee ids must be positive", ErrInvalidInput)
			}
		}
	}

	return nil
}

// validateTraineesSubset проверяет, что все стажеры из списка
// ограничения входят в состав курса
func validateTraineesSubset(trainees []int64, course *domain.Course) error {
	for _, traineeID := range trainees {
		if !course.HasTrainee(traineeID) {
			return fmt.Errorf("%w: trainee id=%d", ErrTraineeNotInCourse, traineeID)
		}
	}
	return nil
}
