package create_attendance

import (
	"bytes"
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

func (f *fakeAttendanceService) Create(context.Context, *models.CreateRequest) (*models.AttendanceListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AttendanceListResponse{Attendances: []*models.AttendanceResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func performCreateAttendance(svcErr error) *httptest.ResponseRecorder {
	handler := NewHandler(&fakeAttendanceService{err: svcErr}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances",
		bytes.NewBufferString(`{"courseSlotId":5,"traineeId":7}`))
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
		{"success", nil, http.StatusCreated},
		{"archived course is forbidden", attendancesService.ErrCourseArchived, http.StatusForbidden},
		{"trainee outside course is forbidden", attendancesService.ErrTraineeNotInCourse, http.StatusForbidden},
		{"course without company is unprocessable", attendancesService.ErrCourseWithoutCompany, http.StatusUnprocessableEntity},
		{"duplicate attendance is a conflict", attendancesService.ErrDuplicateAttendance, http.StatusConflict},
		{"forbidden scope", attendancesService.ErrForbidden, http.StatusForbidden},
		{"unknown slot", attendancesService.ErrSlotNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performCreateAttendance(tt.svcErr)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandle_RequiresAuth(t *testing.T) {
	handler := NewHandler(&fakeAttendanceService{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances",
		bytes.NewBufferString(`{"courseSlotId":5}`))

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
