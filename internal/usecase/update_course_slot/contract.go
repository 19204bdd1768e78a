package update_course_slot

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	"github.com/m04kA/SMC-CourseService/internal/service/conflicts"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CourseSlot, error)
	CreateBatch(ctx context.Context, slots []*domain.CourseSlot) ([]*domain.CourseSlot, error)
	Update(ctx context.Context, id int64, patch domain.SlotPatch) error
	FindUnplanned(ctx context.Context, courseID, stepID, excludeID int64) (*domain.CourseSlot, error)
}

// CourseRepository интерфейс read-only репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// HistoryRepository интерфейс хранилища истории курса
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.CourseHistory) (*domain.CourseHistory, error)
}

// ConflictChecker интерфейс проверки пересечений интервалов расписания
type ConflictChecker interface {
	HasConflicts(ctx context.Context, candidate conflicts.Candidate) (bool, error)
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
