package create_course_slots

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	createCourseSlots "github.com/m04kA/SMC-CourseService/internal/usecase/create_course_slots"
)

// AddressModel HTTP модель адреса проведения
type AddressModel struct {
	FullAddress string `json:"fullAddress"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
}

// CreateCourseSlotsRequest HTTP request model
type CreateCourseSlotsRequest struct {
	CourseID    int64         `json:"courseId"`
	StepID      int64         `json:"stepId"`
	StepType    string        `json:"stepType"`
	Quantity    int           `json:"quantity"`
	Address     *AddressModel `json:"address,omitempty"`
	MeetingLink *string       `json:"meetingLink,omitempty"`
}

// SlotResponse HTTP модель созданного слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"courseId"`
	StepID    int64  `json:"stepId"`
	StepType  string `json:"stepType"`
	CreatedAt string `json:"createdAt"`
}

// CreateCourseSlotsResponse HTTP response model
type CreateCourseSlotsResponse struct {
	Slots []*SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCourseSlotsRequest) ToUseCaseRequest(userID int64) *createCourseSlots.Request {
	req := &createCourseSlots.Request{
		UserID:      userID,
		CourseID:    r.CourseID,
		StepID:      r.StepID,
		StepType:    domain.StepType(r.StepType),
		Quantity:    r.Quantity,
		MeetingLink: r.MeetingLink,
	}
	if r.Address != nil {
		req.Address = &domain.Address{
			FullAddress: r.Address.FullAddress,
			Street:      r.Address.Street,
			City:        r.Address.City,
			ZipCode:     r.Address.ZipCode,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCourseSlots.Response) *CreateCourseSlotsResponse {
	slots := make([]*SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, &SlotResponse{
			ID:        slot.ID,
			CourseID:  slot.CourseID,
			StepID:    slot.StepID,
			StepType:  string(slot.StepType),
			CreatedAt: slot.CreatedAt.Format(time.RFC3339),
		})
	}
	return &CreateCourseSlotsResponse{Slots: slots}
}
