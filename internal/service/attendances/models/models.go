package models

import (
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// ListRequest запрос списка посещаемости по курсу или по слоту
// Должен быть указан ровно один из CourseID/CourseSlotID
type ListRequest struct {
	UserID       int64
	CourseID     *int64
	CourseSlotID *int64
}

// CreateRequest запрос на отметку посещения
// Если TraineeID не указан, отмечаются все стажеры курса,
// ещё не отмеченные на этом слоте
type CreateRequest struct {
	UserID       int64
	CourseSlotID int64
	TraineeID    *int64
}

// DeleteRequest запрос на снятие отметки посещения
// Если TraineeID не указан, снимаются все отметки слота
type DeleteRequest struct {
	UserID       int64
	CourseSlotID int64
	TraineeID    *int64
}

// ListUnsubscribedRequest запрос посещаемости неподписанных стажеров
// Допустимые комбинации параметров зависят от роли пользователя
type ListUnsubscribedRequest struct {
	UserID    int64
	CourseID  *int64
	TraineeID *int64
	CompanyID *int64
	HoldingID *int64
}

// AttendanceResponse модель записи посещаемости
type AttendanceResponse struct {
	ID           int64
	TraineeID    int64
	CourseSlotID int64
	CreatedAt    time.Time
}

// AttendanceListResponse список записей посещаемости
type AttendanceListResponse struct {
	Attendances []*AttendanceResponse
}

// UnsubscribedAttendance посещение слота стажером, не числящимся
// в ростере курса
type UnsubscribedAttendance struct {
	AttendanceID  int64
	TraineeID     int64
	CourseID      int64
	CourseName    string
	CourseSlotID  int64
	SlotStartDate *time.Time
}

// UnsubscribedListResponse список посещений неподписанных стажеров
type UnsubscribedListResponse struct {
	Attendances []*UnsubscribedAttendance
}

// FromDomainAttendance конвертирует domain.Attendance в response-модель
func FromDomainAttendance(att *domain.Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		ID:           att.ID,
		TraineeID:    att.TraineeID,
		CourseSlotID: att.CourseSlotID,
		CreatedAt:    att.CreatedAt,
	}
}

// FromDomainAttendanceList конвертирует список domain.Attendance
func FromDomainAttendanceList(atts []*domain.Attendance) *AttendanceListResponse {
	result := make([]*AttendanceResponse, 0, len(atts))
	for _, att := range atts {
		result = append(result, FromDomainAttendance(att))
	}
	return &AttendanceListResponse{Attendances: result}
}
