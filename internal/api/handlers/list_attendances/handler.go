package list_attendances

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
	msgInvalidQuery   = "должен быть указан ровно один из параметров course и courseSlot"
	msgInvalidID      = "некорректный ID в параметрах запроса"
	msgUnauthorized   = "пользователь не аутентифицирован"
	msgForbidden      = "недостаточно прав для просмотра посещаемости"
	msgSlotNotFound   = "слот не найден"
	msgCourseNotFound = "курс не найден"
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

// Handle GET /api/v1/attendances?course=|courseSlot=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	serviceReq := &models.ListRequest{UserID: userID}

	query := r.URL.Query()
	if raw := query.Get("course"); raw != "" {
		courseID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /attendances - Invalid course ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		serviceReq.CourseID = &courseID
	}
	if raw := query.Get("courseSlot"); raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /attendances - Invalid course slot ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		serviceReq.CourseSlotID = &slotID
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, attendancesService.ErrInvalidQuery):
			h.logger.Warn("GET /attendances - Invalid query: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, attendancesService.ErrForbidden):
			h.logger.Warn("GET /attendances - Forbidden: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, attendancesService.ErrSlotNotFound):
			h.logger.Warn("GET /attendances - Slot not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, attendancesService.ErrCourseNotFound):
			h.logger.Warn("GET /attendances - Course not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		default:
			h.logger.Error("GET /attendances - Failed to list attendances: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
