package delete_attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	attendancesService "github.com/m04kA/SMC-CourseService/internal/service/attendances"
	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

type fakeAttendanceService struct {
	err error
}

func (f *fakeAttendanceService) Delete(context.Context, *models.DeleteRequest) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func performDeleteAttendance(svcErr error) *httptest.ResponseRecorder {
	handler := NewHandler(&fakeAttendanceService{err: svcErr}, nopLogger{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/attendances?courseSlot=5&trainee=7", nil)
	req.Header.Set("X-User-ID", "10")

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		expected int
	}{
		{"success", nil, http.StatusNoContent},
		{"archived course is forbidden", attendancesService.ErrCourseArchived, http.StatusForbidden},
		{"missing attendance", attendancesService.ErrAttendanceNotFound, http.StatusNotFound},
		{"forbidden scope", attendancesService.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performDeleteAttendance(tt.svcErr)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
