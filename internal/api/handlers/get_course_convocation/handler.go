package get_course_convocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	convocationsService "github.com/m04kA/SMC-CourseService/internal/service/convocations"
)

const (
	msgInvalidCourseID = "некорректный ID курса"
	msgCourseNotFound  = "курс не найден"
)

type Handler struct {
	service ConvocationService
	logger  Logger
}

func NewHandler(service ConvocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses/{courseId}/convocation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courses/{courseId}/convocation - Invalid course ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	content, err := h.service.BuildContent(r.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, convocationsService.ErrCourseNotFound):
			h.logger.Warn("GET /courses/{courseId}/convocation - Course not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		default:
			h.logger.Error("GET /courses/{courseId}/convocation - Failed to build content: course_id=%d, error=%v",
				courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceContent(content))
}
