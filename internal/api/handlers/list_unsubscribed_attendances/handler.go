package list_unsubscribed_attendances

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
	msgInvalidQuery   = "некорректная комбинация параметров запроса"
	msgInvalidID      = "некорректный ID в параметрах запроса"
	msgUnauthorized   = "пользователь не аутентифицирован"
	msgForbidden      = "недостаточно прав для просмотра посещаемости"
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

// Handle GET /api/v1/attendances/unsubscribed?course=&trainee=&company=&holding=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	serviceReq := &models.ListUnsubscribedRequest{UserID: userID}

	query := r.URL.Query()
	params := []struct {
		name string
		dst  **int64
	}{
		{"course", &serviceReq.CourseID},
		{"trainee", &serviceReq.TraineeID},
		{"company", &serviceReq.CompanyID},
		{"holding", &serviceReq.HoldingID},
	}
	for _, param := range params {
		raw := query.Get(param.name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /attendances/unsubscribed - Invalid %s ID: %v", param.name, err)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		*param.dst = &value
	}

	result, err := h.service.ListUnsubscribed(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, attendancesService.ErrInvalidQuery):
			h.logger.Warn("GET /attendances/unsubscribed - Invalid query: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, attendancesService.ErrForbidden):
			h.logger.Warn("GET /attendances/unsubscribed - Forbidden: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, attendancesService.ErrCourseNotFound):
			h.logger.Warn("GET /attendances/unsubscribed - Course not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		default:
			h.logger.Error("GET /attendances/unsubscribed - Failed to list: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
