package list_course_slots

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

type SlotService interface {
	ListByCourse(ctx context.Context, courseID int64) ([]*domain.CourseSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
