package list_course_slots

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// AddressModel HTTP модель адреса проведения
type AddressModel struct {
	FullAddress string `json:"fullAddress"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
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
}

// ListCourseSlotsResponse HTTP response model
type ListCourseSlotsResponse struct {
	Slots []*SlotResponse `json:"slots"`
}

// FromDomainSlots конвертирует слоты курса в HTTP response
func FromDomainSlots(slots []*domain.CourseSlot) *ListCourseSlotsResponse {
	result := make([]*SlotResponse, 0, len(slots))
	for _, slot := range slots {
		item := &SlotResponse{
			ID:          slot.ID,
			CourseID:    slot.CourseID,
			StepID:      slot.StepID,
			StepType:    string(slot.StepType),
			MeetingLink: slot.MeetingLink,
			Trainees:    slot.Trainees,
		}
		if slot.StartDate != nil {
			formatted := slot.StartDate.Format(time.RFC3339)
			item.StartDate = &formatted
		}
		if slot.EndDate != nil {
			formatted := slot.EndDate.Format(time.RFC3339)
			item.EndDate = &formatted
		}
		if slot.Address != nil {
			item.Address = &AddressModel{
				FullAddress: slot.Address.FullAddress,
				Street:      slot.Address.Street,
				City:        slot.Address.City,
				ZipCode:     slot.Address.ZipCode,
			}
		}
		result = append(result, item)
	}
	return &ListCourseSlotsResponse{Slots: result}
}
