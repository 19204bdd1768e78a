package update_course_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_course_slot: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("update_course_slot: slot not found")

	// ErrCourseNotFound возвращается, когда курс слота не найден
	ErrCourseNotFound = errors.New("update_course_slot: course not found")

	// ErrCourseArchived возвращается при попытке изменить слот
	// архивного курса
	ErrCourseArchived = errors.New("update_course_slot: course is archived")

	// ErrScheduleConflict возвращается, когда запрашиваемый интервал
	// пересекается с другим слотом того же курса
	ErrScheduleConflict = errors.New("update_course_slot: schedule conflict with another slot")

	// ErrTraineeNotInCourse возвращается, когда список ограничения
	// содержит стажера вне состава курса
	ErrTraineeNotInCourse = errors.New("update_course_slot: trainee is not part of the course")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_course_slot: internal error")
)
