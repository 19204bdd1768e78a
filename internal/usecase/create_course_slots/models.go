package create_course_slots

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// Request модель запроса на пакетное создание слотов
// Создает quantity одинаковых незапланированных слотов - заготовок,
// которые будут распланированы позже
type Request struct {
	UserID   int64           // ID пользователя, создающего слоты
	CourseID int64           // ID курса
	StepID   int64           // ID шага курса
	StepType domain.StepType // Режим проведения шага
	Quantity int             // Количество создаваемых слотов

	Address     *domain.Address // Адрес проведения (опционально)
	MeetingLink *string         // Ссылка на встречу (опционально)
}

// SlotResponse модель созданного слота
type SlotResponse struct {
	ID        int64
	CourseID  int64
	StepID    int64
	StepType  domain.StepType
	CreatedAt time.Time
}

// Response модель ответа со списком созданных слотов
type Response struct {
	Slots []*SlotResponse
}
