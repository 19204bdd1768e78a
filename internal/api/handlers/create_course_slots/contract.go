package create_course_slots

import (
	"context"

	createCourseSlots "github.com/m04kA/SMC-CourseService/internal/usecase/create_course_slots"
)

type CreateCourseSlotsUseCase interface {
	Execute(ctx context.Context, req *createCourseSlots.Request) (*createCourseSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
