package create_course_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_course_slots: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("create_course_slots: course not found")

	// ErrCourseArchived возвращается при попытке добавить слоты
	// в архивный курс
	ErrCourseArchived = errors.New("create_course_slots: course is archived")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_course_slots: internal error")
)
