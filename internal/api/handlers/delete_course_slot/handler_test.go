package delete_course_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	slotsService "github.com/m04kA/SMC-CourseService/internal/service/slots"
)

type fakeSlotService struct {
	err error
}

func (f *fakeSlotService) Remove(context.Context, int64, int64) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func performDeleteSlot(svcErr error) *httptest.ResponseRecorder {
	handler := NewHandler(&fakeSlotService{err: svcErr}, nopLogger{})

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/course-slots/{slotId}", handler.Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/course-slots/5", nil)
	req.Header.Set("X-User-ID", "10")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		expected int
	}{
		{"success", nil, http.StatusNoContent},
		{"archived course is forbidden", slotsService.ErrCourseArchived, http.StatusForbidden},
		{"unknown slot", slotsService.ErrSlotNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performDeleteSlot(tt.svcErr)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
