package slots

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CourseSlot, error)
	GetByCourse(ctx context.Context, courseID int64) ([]*domain.CourseSlot, error)
	Delete(ctx context.Context, id int64) error
}

// HistoryRepository интерфейс хранилища истории курса
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.CourseHistory) (*domain.CourseHistory, error)
	GetByCourse(ctx context.Context, courseID int64) ([]*domain.CourseHistory, error)
}

// CourseRepository интерфейс read-only репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
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
