package delete_course_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	slotsService "github.com/m04kA/SMC-CourseService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgUnauthorized   = "пользователь не аутентифицирован"
	msgSlotNotFound   = "слот не найден"
	msgCourseArchived = "курс архивирован"
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

// Handle DELETE /api/v1/course-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /course-slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Remove(r.Context(), slotID, userID); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("DELETE /course-slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrCourseArchived):
			h.logger.Warn("DELETE /course-slots/{slotId} - Course archived: slot_id=%d", slotID)
			handlers.RespondForbidden(w, msgCourseArchived)

		default:
			h.logger.Error("DELETE /course-slots/{slotId} - Failed to delete slot: slot_id=%d, user_id=%d, error=%v",
				slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /course-slots/{slotId} - Slot deleted: slot_id=%d, user_id=%d", slotID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
