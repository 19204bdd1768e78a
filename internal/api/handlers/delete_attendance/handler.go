package delete_attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	attendancesService "github.com/m04kA/SMC-CourseService/internal/service/attendances"
	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

const (
	msgMissingSlotID      = "параметр courseSlot обязателен"
	msgInvalidID          = "некорректный ID в параметрах запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgForbidden          = "недостаточно прав для снятия отметки посещения"
	msgSlotNotFound       = "слот не найден"
	msgCourseNotFound     = "курс не найден"
	msgAttendanceNotFound = "отметка посещения не найдена"
	msgCourseArchived     = "курс архивирован"
)

type Handler struct {
	service AttendanceService
	logger  Logger
}

func NewHandler(service AttendanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/attendances?courseSlot=&trainee=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	query := r.URL.Query()

	rawSlotID := query.Get("courseSlot")
	if rawSlotID == "" {
		h.logger.Warn("DELETE /attendances - Missing courseSlot parameter: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingSlotID)
		return
	}
	slotID, err := strconv.ParseInt(rawSlotID, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /attendances - Invalid course slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	serviceReq := &models.DeleteRequest{
		UserID:       userID,
		CourseSlotID: slotID,
	}

	if raw := query.Get("trainee"); raw != "" {
		traineeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /attendances - Invalid trainee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		serviceReq.TraineeID = &traineeID
	}

	if err := h.service.Delete(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, attendancesService.ErrForbidden):
			h.logger.Warn("DELETE /attendances - Forbidden: user_id=%d, slot_id=%d", userID, slotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, attendancesService.ErrSlotNotFound):
			h.logger.Warn("DELETE /attendances - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, attendancesService.ErrCourseNotFound):
			h.logger.Warn("DELETE /attendances - Course not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, attendancesService.ErrAttendanceNotFound):
			h.logger.Warn("DELETE /attendances - Attendance not found: user_id=%d, slot_id=%d", userID, slotID)
			handlers.RespondNotFound(w, msgAttendanceNotFound)

		case errors.Is(err, attendancesService.ErrCourseArchived):
			h.logger.Warn("DELETE /attendances - Course archived: slot_id=%d", slotID)
			handlers.RespondForbidden(w, msgCourseArchived)

		default:
			h.logger.Error("DELETE /attendances - Failed to delete attendance: user_id=%d, slot_id=%d, error=%v",
				userID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /attendances - Attendance removed: user_id=%d, slot_id=%d", userID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
