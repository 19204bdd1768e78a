package convocations

import "errors"

var (
	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("convocations: course not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("convocations: internal error")
)
