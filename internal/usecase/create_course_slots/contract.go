package create_course_slots

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.CourseSlot) ([]*domain.CourseSlot, error)
}

// CourseRepository интерфейс read-only репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// HistoryRepository интерфейс хранилища истории курса
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.CourseHistory) (*domain.CourseHistory, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
