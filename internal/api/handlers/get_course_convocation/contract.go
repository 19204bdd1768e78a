package get_course_convocation

import (
	"context"

	"github.com/m04kA/SMC-CourseService/internal/service/convocations"
)

type ConvocationService interface {
	BuildContent(ctx context.Context, courseID int64) (*convocations.Content, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
