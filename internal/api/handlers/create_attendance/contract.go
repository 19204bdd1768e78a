package create_attendance

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

type AttendanceService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.AttendanceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
