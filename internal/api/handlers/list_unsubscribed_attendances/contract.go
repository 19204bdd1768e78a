package list_unsubscribed_attendances

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

type AttendanceService interface {
	ListUnsubscribed(ctx context.Context, req *models.ListUnsubscribedRequest) (*models.UnsubscribedListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
