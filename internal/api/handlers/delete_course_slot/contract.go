package delete_course_slot

import "context"

type SlotService interface {
	Remove(ctx context.Context, slotID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
