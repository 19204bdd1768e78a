package create_course_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	createCourseSlots "github.com/m04kA/SMC-CourseService/internal/usecase/create_course_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidInput       = "некорректные параметры создания слотов"
	msgCourseNotFound     = "курс не найден"
	msgCourseArchived     = "курс архивирован"
)

type Handler struct {
	useCase CreateCourseSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CreateCourseSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/course-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateCourseSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /course-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createCourseSlots.ErrInvalidInput):
			h.logger.Warn("POST /course-slots - Invalid input: course_id=%d, error=%v", req.CourseID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createCourseSlots.ErrCourseNotFound):
			h.logger.Warn("POST /course-slots - Course not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createCourseSlots.ErrCourseArchived):
			h.logger.Warn("POST /course-slots - Course archived: course_id=%d", req.CourseID)
			handlers.RespondForbidden(w, msgCourseArchived)

		default:
			h.logger.Error("POST /course-slots - Failed to create slots: course_id=%d, error=%v", req.CourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /course-slots - Created %d slot(s): course_id=%d, user_id=%d",
		len(result.Slots), req.CourseID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
