package create_attendance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourseService/internal/api/handlers"
	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	attendancesService "github.com/m04kA/SMC-CourseService/internal/service/attendances"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgForbidden            = "недостаточно прав для отметки посещения"
	msgSlotNotFound         = "слот не найден"
	msgCourseNotFound       = "курс не найден"
	msgTraineeNotFound      = "стажер не найден"
	msgDuplicateAttendance  = "посещение уже отмечено"
	msgCourseArchived       = "курс архивирован"
	msgCourseWithoutCompany = "курс не привязан ни к одной компании"
	msgTraineeNotInCourse   = "стажер не входит в состав курса"
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

// Handle POST /api/v1/attendances
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /attendances - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, attendancesService.ErrForbidden):
			h.logger.Warn("POST /attendances - Forbidden: user_id=%d, slot_id=%d", userID, req.CourseSlotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, attendancesService.ErrSlotNotFound):
			h.logger.Warn("POST /attendances - Slot not found: slot_id=%d", req.CourseSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, attendancesService.ErrCourseNotFound):
			h.logger.Warn("POST /attendances - Course not found: slot_id=%d", req.CourseSlotID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, attendancesService.ErrTraineeNotFound):
			h.logger.Warn("POST /attendances - Trainee not found: slot_id=%d", req.CourseSlotID)
			handlers.RespondNotFound(w, msgTraineeNotFound)

		case errors.Is(err, attendancesService.ErrDuplicateAttendance):
			h.logger.Warn("POST /attendances - Duplicate attendance: user_id=%d, slot_id=%d", userID, req.CourseSlotID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateAttendance)

		case errors.Is(err, attendancesService.ErrCourseArchived):
			h.logger.Warn("POST /attendances - Course archived: slot_id=%d", req.CourseSlotID)
			handlers.RespondForbidden(w, msgCourseArchived)

		case errors.Is(err, attendancesService.ErrCourseWithoutCompany):
			h.logger.Warn("POST /attendances - Course without company: slot_id=%d", req.CourseSlotID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCourseWithoutCompany)

		case errors.Is(err, attendancesService.ErrTraineeNotInCourse):
			h.logger.Warn("POST /attendances - Trainee not in course: slot_id=%d", req.CourseSlotID)
			handlers.RespondForbidden(w, msgTraineeNotInCourse)

		default:
			h.logger.Error("POST /attendances - Failed to create attendance: user_id=%d, slot_id=%d, error=%v",
				userID, req.CourseSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /attendances - Marked %d attendance(s): user_id=%d, slot_id=%d",
		len(result.Attendances), userID, req.CourseSlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
