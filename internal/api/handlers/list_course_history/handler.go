package list_course_history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	"github.com/m04kA/SMC-CourseService/internal/service/slots"
)

const (
	msgInvalidCourseID = "некорректный ID курса"
	msgCourseNotFound  = "курс не найден"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses/{courseId}/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courses/{courseId}/history - Invalid course ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	entries, err := h.service.ListHistory(r.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrCourseNotFound):
			h.logger.Warn("GET /courses/{courseId}/history - Course not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)
		default:
			h.logger.Error("GET /courses/{courseId}/history - Failed to list history: course_id=%d, error=%v",
				courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainHistory(entries))
}
