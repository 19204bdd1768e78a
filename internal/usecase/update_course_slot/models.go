package update_course_slot

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// Action тип операции над слотом
type Action string

const (
	// ActionReschedule планирование или перенос слота
	ActionReschedule Action = "reschedule"
	// ActionUnschedule снятие слота с расписания
	ActionUnschedule Action = "unschedule"
	// ActionRestrict ограничение списка стажеров слота
	ActionRestrict Action = "restrict"
)

// Valid проверяет принадлежность значения к известным операциям
func (a Action) Valid() bool {
	switch a {
	case ActionReschedule, ActionUnschedule, ActionRestrict:
		return true
	}
	return false
}

// Request модель запроса на изменение слота
// Набор используемых полей зависит от Action: restrict читает Trainees,
// unschedule не читает ничего, reschedule читает даты, адрес, ссылку
// и признак WholeDay
type Request struct {
	SlotID int64
	UserID int64
	Action Action

	// Ограничение списка стажеров (restrict)
	Trainees []int64

	// Планирование (reschedule)
	StartDate   *time.Time
	EndDate     *time.Time
	Address     *domain.Address
	MeetingLink *string
	WholeDay    bool
}

// SlotResponse модель слота в ответе
type SlotResponse struct {
	ID          int64
	CourseID    int64
	StepID      int64
	StepType    domain.StepType
	StartDate   *time.Time
	EndDate     *time.Time
	Address     *domain.Address
	MeetingLink *string
	Trainees    []int64
	UpdatedAt   time.Time
}

// Response модель ответа
// AfternoonSlot заполняется только при планировании на весь день,
// когда из утреннего интервала выделяется второй слот
type Response struct {
	Slot          *SlotResponse
	AfternoonSlot *SlotResponse
}

func toSlotResponse(slot *domain.CourseSlot) *SlotResponse {
	return &SlotResponse{
		ID:          slot.ID,
		CourseID:    slot.CourseID,
		StepID:      slot.StepID,
		StepType:    slot.StepType,
		StartDate:   slot.StartDate,
		EndDate:     slot.EndDate,
		Address:     slot.Address,
		MeetingLink: slot.MeetingLink,
		Trainees:    slot.Trainees,
		UpdatedAt:   slot.UpdatedAt,
	}
}
