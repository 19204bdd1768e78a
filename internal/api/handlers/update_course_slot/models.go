package update_course_slot

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	updateCourseSlot "github.com/m04kA/SMC-CourseService/internal/usecase/update_course_slot"
)

// AddressModel HTTP модель адреса проведения
type AddressModel struct {
	FullAddress string `json:"fullAddress"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
}

// UpdateCourseSlotRequest HTTP request model
// Поле action определяет операцию: reschedule, unschedule или restrict
type UpdateCourseSlotRequest struct {
	Action string `json:"action"`

	// restrict
	Trainees []int64 `json:"trainees,omitempty"`

	// reschedule
	StartDate   *string       `json:"startDate,omitempty"` // RFC 3339
	EndDate     *string       `json:"endDate,omitempty"`   // RFC 3339
	Address     *AddressModel `json:"address,omitempty"`
	MeetingLink *string       `json:"meetingLink,omitempty"`
	WholeDay    bool          `json:"wholeDay,omitempty"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID          int64         `json:"id"`
	CourseID    int64         `json:"courseId"`
	StepID      int64         `json:"stepId"`
	StepType    string        `json:"stepType"`
	StartDate   *string       `json:"startDate,omitempty"`
	EndDate     *string       `json:"endDate,omitempty"`
	Address     *AddressModel `json:"address,omitempty"`
	MeetingLink *string       `json:"meetingLink,omitempty"`
	Trainees    []int64       `json:"trainees,omitempty"`
	UpdatedAt   string        `json:"updatedAt"`
}

// UpdateCourseSlotResponse HTTP response model
// afternoonSlot присутствует только при планировании на весь день
type UpdateCourseSlotResponse struct {
	Slot          *SlotResponse `json:"slot"`
	AfternoonSlot *SlotResponse `json:"afternoonSlot,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом дат)
func (r *UpdateCourseSlotRequest) ToUseCaseRequest(slotID, userID int64) (*updateCourseSlot.Request, error) {
	req := &updateCourseSlot.Request{
		SlotID:      slotID,
		UserID:      userID,
		Action:      updateCourseSlot.Action(r.Action),
		Trainees:    r.Trainees,
		MeetingLink: r.MeetingLink,
		WholeDay:    r.WholeDay,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if r.Address != nil {
		req.Address = &domain.Address{
			FullAddress: r.Address.FullAddress,
			Street:      r.Address.Street,
			City:        r.Address.City,
			ZipCode:     r.Address.ZipCode,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateCourseSlot.Response) *UpdateCourseSlotResponse {
	result := &UpdateCourseSlotResponse{
		Slot: fromSlotResponse(resp.Slot),
	}
	if resp.AfternoonSlot != nil {
		result.AfternoonSlot = fromSlotResponse(resp.AfternoonSlot)
	}
	return result
}

func fromSlotResponse(slot *updateCourseSlot.SlotResponse) *SlotResponse {
	result := &SlotResponse{
		ID:          slot.ID,
		CourseID:    slot.CourseID,
		StepID:      slot.StepID,
		StepType:    string(slot.StepType),
		MeetingLink: slot.MeetingLink,
		Trainees:    slot.Trainees,
		UpdatedAt:   slot.UpdatedAt.Format(time.RFC3339),
	}
	if slot.StartDate != nil {
		formatted := slot.StartDate.Format(time.RFC3339)
		result.StartDate = &formatted
	}
	if slot.EndDate != nil {
		formatted := slot.EndDate.Format(time.RFC3339)
		result.EndDate = &formatted
	}
	if slot.Address != nil {
		result.Address = &AddressModel{
			FullAddress: slot.Address.FullAddress,
			Street:      slot.Address.Street,
			City:        slot.Address.City,
			ZipCode:     slot.Address.ZipCode,
		}
	}
	return result
}
