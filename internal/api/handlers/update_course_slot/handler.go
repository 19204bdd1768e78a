package update_course_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	updateCourseSlot "github.com/m04kA/SMC-CourseService/internal/usecase/update_course_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC 3339"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidInput       = "некорректные параметры изменения слота"
	msgSlotNotFound       = "слот не найден"
	msgCourseNotFound     = "курс не найден"
	msgCourseArchived     = "курс архивирован"
	msgScheduleConflict   = "интервал пересекается с другим слотом курса"
	msgTraineeNotInCourse = "стажер не входит в состав курса"
)

type Handler struct {
	useCase UpdateCourseSlotUseCase
	logger  Logger
}

func NewHandler(useCase UpdateCourseSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/course-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /course-slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateCourseSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /course-slots/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(slotID, userID)
	if err != nil {
		h.logger.Warn("PUT /course-slots/{slotId} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateCourseSlot.ErrInvalidInput):
			h.logger.Warn("PUT /course-slots/{slotId} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateCourseSlot.ErrSlotNotFound):
			h.logger.Warn("PUT /course-slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, updateCourseSlot.ErrCourseNotFound):
			h.logger.Warn("PUT /course-slots/{slotId} - Course not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, updateCourseSlot.ErrCourseArchived):
			h.logger.Warn("PUT /course-slots/{slotId} - Course archived: slot_id=%d", slotID)
			handlers.RespondForbidden(w, msgCourseArchived)

		case errors.Is(err, updateCourseSlot.ErrScheduleConflict):
			h.logger.Warn("PUT /course-slots/{slotId} - Schedule conflict: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleConflict)

		case errors.Is(err, updateCourseSlot.ErrTraineeNotInCourse):
			h.logger.Warn("PUT /course-slots/{slotId} - Trainee not in course: slot_id=%d, error=%v", slotID, err)
			handlers.RespondForbidden(w, msgTraineeNotInCourse)

		default:
			h.logger.Error("PUT /course-slots/{slotId} - Failed to update slot: slot_id=%d, user_id=%d, error=%v",
				slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /course-slots/{slotId} - Slot updated: slot_id=%d, user_id=%d, action=%s",
		slotID, userID, req.Action)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
