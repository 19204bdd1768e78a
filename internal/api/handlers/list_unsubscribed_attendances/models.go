package list_unsubscribed_attendances

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

// UnsubscribedAttendanceResponse HTTP модель посещения слота стажером,
// не числящимся в составе курса
type UnsubscribedAttendanceResponse struct {
	AttendanceID  int64   `json:"attendanceId"`
	TraineeID     int64   `json:"traineeId"`
	CourseID      int64   `json:"courseId"`
	CourseName    string  `json:"courseName"`
	CourseSlotID  int64   `json:"courseSlotId"`
	SlotStartDate *string `json:"slotStartDate,omitempty"`
}

// ListUnsubscribedResponse HTTP response model
type ListUnsubscribedResponse struct {
	Attendances []*UnsubscribedAttendanceResponse `json:"attendances"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.UnsubscribedListResponse) *ListUnsubscribedResponse {
	result := make([]*UnsubscribedAttendanceResponse, 0, len(resp.Attendances))
	for _, att := range resp.Attendances {
		item := &UnsubscribedAttendanceResponse{
			AttendanceID: att.AttendanceID,
			TraineeID:    att.TraineeID,
			CourseID:     att.CourseID,
			CourseName:   att.CourseName,
			CourseSlotID: att.CourseSlotID,
		}
		if att.SlotStartDate != nil {
			formatted := att.SlotStartDate.Format(time.RFC3339)
			item.SlotStartDate = &formatted
		}
		result = append(result, item)
	}
	return &ListUnsubscribedResponse{Attendances: result}
}
