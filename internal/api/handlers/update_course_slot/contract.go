package update_course_slot

import (
	"context"

	updateCourseSlot "github.com/m04kA/SMC-CourseService/internal/usecase/update_course_slot"
)

type UpdateCourseSlotUseCase interface {
	Execute(ctx context.Context, req *updateCourseSlot.Request) (*updateCourseSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
