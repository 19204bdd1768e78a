package create_attendance

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

// CreateAttendanceRequest HTTP request model
// Если traineeId не указан, отмечаются все стажеры курса
type CreateAttendanceRequest struct {
	CourseSlotID int64  `json:"courseSlotId"`
	TraineeID    *int64 `json:"traineeId,omitempty"`
}

// AttendanceResponse HTTP модель записи посещаемости
type AttendanceResponse struct {
	ID           int64  `json:"id"`
	TraineeID    int64  `json:"traineeId"`
	CourseSlotID int64  `json:"courseSlotId"`
	CreatedAt    string `json:"createdAt"`
}

// CreateAttendanceResponse HTTP response model
type CreateAttendanceResponse struct {
	Attendances []*AttendanceResponse `json:"attendances"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAttendanceRequest) ToServiceRequest(userID int64) *models.CreateRequest {
	return &models.CreateRequest{
		UserID:       userID,
		CourseSlotID: r.CourseSlotID,
		TraineeID:    r.TraineeID,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AttendanceListResponse) *CreateAttendanceResponse {
	result := make([]*AttendanceResponse, 0, len(resp.Attendances))
	for _, att := range resp.Attendances {
		result = append(result, &AttendanceResponse{
			ID:           att.ID,
			TraineeID:    att.TraineeID,
			CourseSlotID: att.CourseSlotID,
			CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		})
	}
	return &CreateAttendanceResponse{Attendances: result}
}
