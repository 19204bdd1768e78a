package update_course_slot

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// afternoonInterval вычисляет интервал послеобеденного слота для
// планирования на весь день: тот же календарный день, что и начало
// утреннего интервала, с 14:00 до 17:30 по рабочему часовому поясу
func afternoonInterval(morningStart time.Time, loc *time.Location) (time.Time, time.Time) {
	local := morningStart.In(loc)
	year, month, day := local.Date()

	start := time.Date(year, month, day, domain.AfternoonStartHour, 0, 0, 0, loc)
	end := time.Date(year, month, day, domain.AfternoonEndHour, domain.AfternoonEndMinute, 0, 0, loc)

	return start.UTC(), end.UTC()
}
