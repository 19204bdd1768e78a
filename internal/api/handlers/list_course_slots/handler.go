package list_course_slots

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
)

const (
	msgInvalidCourseID = "некорректный ID курса"
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

// Handle GET /api/v1/courses/{courseId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courses/{courseId}/slots - Invalid course ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	slots, err := h.service.ListByCourse(r.Context(), courseID)
	if err != nil {
		h.logger.Error("GET /courses/{courseId}/slots - Failed to list slots: course_id=%d, error=%v",
			courseID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSlots(slots))
}
