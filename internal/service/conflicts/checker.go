package conflicts

import (
	"context"
	"fmt"
	"time"
)

// Candidate интервал-кандидат для проверки на конфликты расписания
type Candidate struct {
	CourseID  int64
	StartDate time.Time
	EndDate   time.Time

	// ExcludeSlotID исключает сам обновляемый слот из сравнения,
	// чтобы слот не конфликтовал со своим же прежним интервалом
	ExcludeSlotID *int64
}

// Checker проверяет интервалы-кандидаты на пересечение с уже
// запланированными слотами того же курса
// Пересечение считается по полуоткрытому правилу со строгими
// неравенствами: existing.start < candidate.end И existing.end > candidate.start
type Checker struct {
	slots  SlotCounter
	logger Logger
}

// NewChecker создает новый экземпляр проверки конфликтов
func NewChecker(slots SlotCounter, logger Logger) *Checker {
	return &Checker{
		slots:  slots,
		logger: logger,
	}
}

// HasConflicts возвращает true, если интервал кандидата пересекается
// хотя бы с одним запланированным слотом того же курса
// Детерминирована относительно состояния репозитория, побочных эффектов нет
func (c *Checker) HasConflicts(ctx context.Context, candidate Candidate) (bool, error) {
	if !candidate.EndDate.After(candidate.StartDate) {
		return false, ErrInvalidInterval
	}

	count, err := c.slots.CountInInterval(ctx, candidate.CourseID, candidate.StartDate, candidate.EndDate, candidate.ExcludeSlotID)
	if err != nil {
		c.logger.Error("HasConflicts: failed to count overlapping slots for course=%d: %v", candidate.CourseID, err)
		return false, fmt.Errorf("%w: failed to count overlapping slots: %v", ErrInternal, err)
	}

	if count > 0 {
		c.logger.Warn("HasConflicts: course=%d has %d slot(s) overlapping [%s, %s)",
			candidate.CourseID, count,
			candidate.StartDate.Format(time.RFC3339), candidate.EndDate.Format(time.RFC3339))
	}

	return count > 0, nil
}
