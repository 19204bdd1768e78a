package create_course_slots

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	createCourseSlots "github.com/m04kA/SMC-CourseService/internal/usecase/create_course_slots"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(context.Context, *createCourseSlots.Request) (*createCourseSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &createCourseSlots.Response{Slots: []*createCourseSlots.SlotResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func performCreateSlots(ucErr error) *httptest.ResponseRecorder {
	handler := NewHandler(&fakeUseCase{err: ucErr}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/course-slots",
		bytes.NewBufferString(`{"courseId":42,"stepId":3,"stepType":"on_site","quantity":2}`))
	req.Header.Set("X-User-ID", "10")

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		ucErr    error
		expected int
	}{
		{"success", nil, http.StatusCreated},
		{"archived course is forbidden", createCourseSlots.ErrCourseArchived, http.StatusForbidden},
		{"unknown course", createCourseSlots.ErrCourseNotFound, http.StatusNotFound},
		{"invalid input", createCourseSlots.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performCreateSlots(tt.ucErr)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
