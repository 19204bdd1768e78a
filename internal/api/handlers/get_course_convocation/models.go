package get_course_convocation

import "github.com/m04kA/SMC-CourseService/internal/service/convocations"

// ConvocationResponse HTTP модель содержимого приглашения на курс
type ConvocationResponse struct {
	CourseID   int64    `json:"courseId"`
	CourseName string   `json:"courseName"`
	TrainerID  *int64   `json:"trainerId,omitempty"`
	Addresses  []string `json:"addresses"`
	Dates      []string `json:"dates"`
}

// FromServiceContent конвертирует содержимое приглашения в HTTP response
func FromServiceContent(content *convocations.Content) *ConvocationResponse {
	return &ConvocationResponse{
		CourseID:   content.CourseID,
		CourseName: content.CourseName,
		TrainerID:  content.TrainerID,
		Addresses:  content.Addresses,
		Dates:      content.Dates,
	}
}
