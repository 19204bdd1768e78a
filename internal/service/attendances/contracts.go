package attendances

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	"github.com/m04kA/SMC-CourseService/internal/integrations/userservice"
)

// AttendanceRepository интерфейс репозитория посещаемости
type AttendanceRepository interface {
	Create(ctx context.Context, att *domain.Attendance) (*domain.Attendance, error)
	CountMatching(ctx context.Context, filter domain.AttendanceFilter) (int, error)
	GetMatching(ctx context.Context, filter domain.AttendanceFilter) ([]*domain.Attendance, error)
	DeleteMatching(ctx context.Context, filter domain.AttendanceFilter) (int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CourseSlot, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.CourseSlot, error)
	GetByCourse(ctx context.Context, courseID int64) ([]*domain.CourseSlot, error)
}

// CourseRepository интерфейс read-only репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	GetByCompanies(ctx context.Context, companyIDs []int64) ([]*domain.Course, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
	GetHolding(ctx context.Context, holdingID int64) (*userservice.Holding, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
