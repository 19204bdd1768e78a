package conflicts

import (
	"context"
	"time"
)

// SlotCounter интерфейс подсчёта пересекающихся слотов
type SlotCounter interface {
	CountInInterval(ctx context.Context, courseID int64, start, end time.Time, excludeID *int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
