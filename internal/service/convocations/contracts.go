package convocations

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByCourse(ctx context.Context, courseID int64) ([]*domain.CourseSlot, error)
}

// CourseRepository интерфейс read-only репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
