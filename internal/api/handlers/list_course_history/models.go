package list_course_history

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

// HistoryEntryResponse HTTP модель записи истории курса
type HistoryEntryResponse struct {
	ID              int64           `json:"id"`
	CourseID        int64           `json:"courseId"`
	Action          string          `json:"action"`
	SlotStartDate   *string         `json:"slotStartDate,omitempty"`
	SlotEndDate     *string         `json:"slotEndDate,omitempty"`
	SlotAddress     *string         `json:"slotAddress,omitempty"`
	SlotMeetingLink *string         `json:"slotMeetingLink,omitempty"`
	Update          json.RawMessage `json:"update,omitempty"`
	CreatedBy       int64           `json:"createdBy"`
	CreatedAt       string          `json:"createdAt"`
}

// ListCourseHistoryResponse HTTP response model
type ListCourseHistoryResponse struct {
	History []*HistoryEntryResponse `json:"history"`
}

// FromDomainHistory конвертирует записи истории в HTTP response
func FromDomainHistory(entries []*domain.CourseHistory) *ListCourseHistoryResponse {
	result := make([]*HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		item := &HistoryEntryResponse{
			ID:              entry.ID,
			CourseID:        entry.CourseID,
			Action:          string(entry.Action),
			SlotAddress:     entry.SlotAddress,
			SlotMeetingLink: entry.SlotMeetingLink,
			Update:          entry.Update,
			CreatedBy:       entry.CreatedBy,
			CreatedAt:       entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.SlotStartDate != nil {
			formatted := entry.SlotStartDate.Format(time.RFC3339)
			item.SlotStartDate = &formatted
		}
		if entry.SlotEndDate != nil {
			formatted := entry.SlotEndDate.Format(time.RFC3339)
			item.SlotEndDate = &formatted
		}
		result = append(result, item)
	}
	return &ListCourseHistoryResponse{History: result}
}
