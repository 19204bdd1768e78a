package update_course_slot

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	updateCourseSlot "github.com/m04kA/SMC-CourseService/internal/usecase/update_course_slot"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(context.Context, *updateCourseSlot.Request) (*updateCourseSlot.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &updateCourseSlot.Response{Slot: &updateCourseSlot.SlotResponse{ID: 5}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func performUpdateSlot(ucErr error) *httptest.ResponseRecorder {
	handler := NewHandler(&fakeUseCase{err: ucErr}, nopLogger{})

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/course-slots/{slotId}", handler.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/course-slots/5",
		bytes.NewBufferString(`{"action":"reschedule","startDate":"2020-03-03T08:00:00Z","endDate":"2020-03-03T11:30:00Z"}`))
	req.Header.Set("X-User-ID", "10")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		ucErr    error
		expected int
	}{
		{"success", nil, http.StatusOK},
		{"archived course is forbidden", updateCourseSlot.ErrCourseArchived, http.StatusForbidden},
		{"trainee outside roster is forbidden", updateCourseSlot.ErrTraineeNotInCourse, http.StatusForbidden},
		{"schedule conflict", updateCourseSlot.ErrScheduleConflict, http.StatusConflict},
		{"unknown slot", updateCourseSlot.ErrSlotNotFound, http.StatusNotFound},
		{"invalid input", updateCourseSlot.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performUpdateSlot(tt.ucErr)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
