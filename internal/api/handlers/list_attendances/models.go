package list_attendances

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

// AttendanceResponse HTTP модель записи посещаемости
type AttendanceResponse struct {
	ID           int64  `json:"id"`
	TraineeID    int64  `json:"traineeId"`
	CourseSlotID int64  `json:"courseSlotId"`
	CreatedAt    string `json:"createdAt"`
}

// ListAttendancesResponse HTTP response model
type ListAttendancesResponse struct {
	Attendances []*AttendanceResponse `json:"attendances"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AttendanceListResponse) *ListAttendancesResponse {
	result := make([]*AttendanceResponse, 0, len(resp.Attendances))
	for _, att := range resp.Attendances {
		result = append(result, &AttendanceResponse{
			ID:           att.ID,
			TraineeID:    att.TraineeID,
			CourseSlotID: att.CourseSlotID,
			CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		})
	}
	return &ListAttendancesResponse{Attendances: result}
}
