package list_course_history

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

type SlotService interface {
	ListHistory(ctx context.Context, courseID int64) ([]*domain.CourseHistory, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
