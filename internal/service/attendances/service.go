package attendances

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	attendanceRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/attendance"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
	slotRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/courseslot"
	userClient "github.com/m04kA/SMC-CourseService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
)

// Service сервис посещаемости с гардами авторизации
// Каждая операция сначала проверяет права пользователя на курс слота
// и только потом выполняет мутацию или чтение
type Service struct {
	attendanceRepo AttendanceRepository
	slotRepo       SlotRepository
	courseRepo     CourseRepository
	userClient     UserServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса посещаемости
func NewService(
	attendanceRepo AttendanceRepository,
	slotRepo SlotRepository,
	courseRepo CourseRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		slotRepo:       slotRepo,
		courseRepo:     courseRepo,
		userClient:     userClient,
		logger:         logger,
	}
}

// List возвращает посещаемость по курсу или по слоту
// Доступно вендорным ролям, тренеру курса и клиентским ролям,
// организация которых участвует в курсе
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AttendanceListResponse, error) {
	if (req.CourseID == nil) == (req.CourseSlotID == nil) {
		s.logger.Warn("List: exactly one of course/courseSlot must be set, user=%d", req.UserID)
		return nil, ErrInvalidQuery
	}

	user, err := s.getUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var (
		course  *domain.Course
		slotIDs []int64
	)

	if req.CourseSlotID != nil {
		slot, err := s.getSlot(ctx, *req.CourseSlotID)
		if err != nil {
			return nil, err
		}
		course, err = s.getCourse(ctx, slot.CourseID)
		if err != nil {
			return nil, err
		}
		slotIDs = []int64{slot.ID}
	} else {
		course, err = s.getCourse(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		slots, err := s.slotRepo.GetByCourse(ctx, *req.CourseID)
		if err != nil {
			s.logger.Error("List: failed to list slots for course=%d: %v", *req.CourseID, err)
			return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}
		for _, slot := range slots {
			slotIDs = append(slotIDs, slot.ID)
		}
	}

	if err := s.authorizeCourseRead(ctx, user, course); err != nil {
		s.logger.Warn("List: access denied for user=%d (role=%s) to course=%d", user.ID, user.Role, course.ID)
		return nil, err
	}

	if len(slotIDs) == 0 {
		return &models.AttendanceListResponse{Attendances: []*models.AttendanceResponse{}}, nil
	}

	atts, err := s.attendanceRepo.GetMatching(ctx, domain.AttendanceFilter{SlotIDs: slotIDs})
	if err != nil {
		s.logger.Error("List: failed to list attendances for course=%d: %v", course.ID, err)
		return nil, fmt.Errorf("%w: failed to list attendances: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d attendances for course=%d by user=%d", len(atts), course.ID, req.UserID)
	return models.FromDomainAttendanceList(atts), nil
}

// Create отмечает посещение слота
// Если стажер указан - отмечает его одного, проверив отсутствие дубликата
// и принадлежность к курсу; иначе отмечает весь ростер курса,
// пропуская уже отмеченных
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.AttendanceListResponse, error) {
	user, err := s.getUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	slot, err := s.getSlot(ctx, req.CourseSlotID)
	if err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, slot.CourseID)
	if err != nil {
		return nil, err
	}

	if course.IsArchived() {
		s.logger.Warn("Create: course id=%d is archived, attendance rejected", course.ID)
		return nil, ErrCourseArchived
	}

	if len(course.CompanyIDs) == 0 {
		s.logger.Warn("Create: course id=%d has no company assigned", course.ID)
		return nil, ErrCourseWithoutCompany
	}

	if err := s.authorizeCourseRead(ctx, user, course); err != nil {
		s.logger.Warn("Create: access denied for user=%d (role=%s) to course=%d", user.ID, user.Role, course.ID)
		return nil, err
	}

	if req.TraineeID != nil {
		att, err := s.createForTrainee(ctx, slot, course, *req.TraineeID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Create: attendance id=%d recorded for trainee=%d, slot=%d", att.ID, *req.TraineeID, slot.ID)
		return models.FromDomainAttendanceList([]*domain.Attendance{att}), nil
	}

	// Отмечаем весь ростер курса, пропуская уже отмеченных
	created := make([]*domain.Attendance, 0, len(course.TraineeIDs))
	for _, traineeID := range course.TraineeIDs {
		att, err := s.attendanceRepo.Create(ctx, &domain.Attendance{
			TraineeID:    traineeID,
			CourseSlotID: slot.ID,
		})
		if err != nil {
			if errors.Is(err, attendanceRepo.ErrDuplicateAttendance) {
				continue
			}
			s.logger.Error("Create: failed to record attendance for trainee=%d, slot=%d: %v", traineeID, slot.ID, err)
			return nil, fmt.Errorf("%w: failed to record attendance: %v", ErrInternal, err)
		}
		created = append(created, att)
	}

	s.logger.Info("Create: %d attendances recorded for slot=%d by user=%d", len(created), slot.ID, req.UserID)
	return models.FromDomainAttendanceList(created), nil
}

// Delete снимает отметку посещения
// Если стажер указан, его отметка должна существовать
func (s *Service) Delete(ctx context.Context, req *models.DeleteRequest) error {
	user, err := s.getUser(ctx, req.UserID)
	if err != nil {
		return err
	}

	slot, err := s.getSlot(ctx, req.CourseSlotID)
	if err != nil {
		return err
	}

	course, err := s.getCourse(ctx, slot.CourseID)
	if err != nil {
		return err
	}

	if course.IsArchived() {
		s.logger.Warn("Delete: course id=%d is archived, unmark rejected", course.ID)
		return ErrCourseArchived
	}

	if err := s.authorizeCourseRead(ctx, user, course); err != nil {
		s.logger.Warn("Delete: access denied for user=%d (role=%s) to course=%d", user.ID, user.Role, course.ID)
		return err
	}

	filter := domain.AttendanceFilter{CourseSlotID: &slot.ID, TraineeID: req.TraineeID}

	if req.TraineeID != nil {
		count, err := s.attendanceRepo.CountMatching(ctx, filter)
		if err != nil {
			s.logger.Error("Delete: failed to check attendance for trainee=%d, slot=%d: %v", *req.TraineeID, slot.ID, err)
			return fmt.Errorf("%w: failed to check attendance: %v", ErrInternal, err)
		}
		if count == 0 {
			s.logger.Warn("Delete: no attendance for trainee=%d, slot=%d", *req.TraineeID, slot.ID)
			return ErrAttendanceNotFound
		}
	}

	deleted, err := s.attendanceRepo.DeleteMatching(ctx, filter)
	if err != nil {
		s.logger.Error("Delete: failed to delete attendances for slot=%d: %v", slot.ID, err)
		return fmt.Errorf("%w: failed to delete attendances: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: %d attendance(s) removed for slot=%d by user=%d", deleted, slot.ID, req.UserID)
	return nil
}

// ListUnsubscribed возвращает посещения слотов стажерами, не числящимися
// в ростере соответствующего курса
// Поддерживает три режима запроса: по курсу, по стажеру и объединение
// по компании/холдингу; допустимые комбинации зависят от роли
func (s *Service) ListUnsubscribed(ctx context.Context, req *models.ListUnsubscribedRequest) (*models.UnsubscribedListResponse, error) {
	user, err := s.getUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	scope, err := s.resolveUnsubscribedScope(ctx, user, req)
	if err != nil {
		return nil, err
	}

	var entries []*models.UnsubscribedAttendance
	switch {
	case req.TraineeID != nil:
		entries, err = s.unsubscribedByTrainee(ctx, *req.TraineeID, scope)
	case req.CourseID != nil:
		entries, err = s.unsubscribedByCourse(ctx, *req.CourseID, nil, scope)
	default:
		entries, err = s.unsubscribedByCompanies(ctx, scope)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListUnsubscribed: %d entries for user=%d", len(entries), req.UserID)
	return &models.UnsubscribedListResponse{Attendances: entries}, nil
}

// Вспомогательные методы

// authorizeCourseRead проверяет право пользователя видеть курс
// Вендорные роли видят любой курс; тренер - только собственные курсы;
// клиентские роли - курсы своей компании; холдинговые - курсы компаний
// своего холдинга. Несовпадение клиентского/холдингового скоупа
// маскируется как NotFound, чтобы не раскрывать существование курса
func (s *Service) authorizeCourseRead(ctx context.Context, user *userClient.User, course *domain.Course) error {
	role := domain.Role(user.Role)
	if !role.Valid() {
		return ErrForbidden
	}

	switch {
	case role.IsVendor():
		return nil

	case role.OwnCoursesOnly():
		if course.IsTrainer(user.ID) {
			return nil
		}
		return ErrForbidden

	case role.IsClient():
		if user.CompanyID != nil && course.HasCompany(*user.CompanyID) {
			return nil
		}
		return ErrCourseNotFound

	case role.IsHolding():
		if user.HoldingID == nil {
			return ErrCourseNotFound
		}
		holding, err := s.userClient.GetHolding(ctx, *user.HoldingID)
		if err != nil {
			if errors.Is(err, userClient.ErrHoldingNotFound) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("%w: failed to get holding: %v", ErrInternal, err)
		}
		if course.HasAnyCompany(holding.CompanyIDs) {
			return nil
		}
		return ErrCourseNotFound
	}

	return ErrForbidden
}

// resolveUnsubscribedScope валидирует комбинацию параметров запроса
// для роли пользователя и возвращает список компаний, ограничивающих
// выборку (nil - без ограничения, для вендорных ролей без параметров)
func (s *Service) resolveUnsubscribedScope(ctx context.Context, user *userClient.User, req *models.ListUnsubscribedRequest) ([]int64, error) {
	if req.CompanyID != nil && req.HoldingID != nil {
		return nil, ErrInvalidQuery
	}
	if req.CourseID == nil && req.TraineeID == nil && req.CompanyID == nil && req.HoldingID == nil {
		return nil, ErrInvalidQuery
	}

	role := domain.Role(user.Role)
	if !role.Valid() || role.OwnCoursesOnly() {
		return nil, ErrForbidden
	}

	switch {
	case role.IsVendor():
		if req.HoldingID != nil {
			return s.holdingCompanies(ctx, *req.HoldingID)
		}
		if req.CompanyID != nil {
			return []int64{*req.CompanyID}, nil
		}
		return nil, nil

	case role.IsClient():
		// Клиентская роль обязана указать собственную компанию
		if req.CompanyID == nil {
			return nil, ErrInvalidQuery
		}
		if user.CompanyID == nil || *user.CompanyID != *req.CompanyID {
			// Чужая компания - скрываем существование данных
			return nil, ErrCourseNotFound
		}
		return []int64{*req.CompanyID}, nil

	case role.IsHolding():
		if req.HoldingID == nil {
			return nil, ErrInvalidQuery
		}
		if user.HoldingID == nil || *user.HoldingID != *req.HoldingID {
			return nil, ErrCourseNotFound
		}
		return s.holdingCompanies(ctx, *req.HoldingID)
	}

	return nil, ErrForbidden
}

func (s *Service) holdingCompanies(ctx context.Context, holdingID int64) ([]int64, error) {
	holding, err := s.userClient.GetHolding(ctx, holdingID)
	if err != nil {
		if errors.Is(err, userClient.ErrHoldingNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%w: failed to get holding: %v", ErrInternal, err)
	}
	return holding.CompanyIDs, nil
}

// unsubscribedByCourse собирает посещения неподписанных стажеров одного курса
// traineeID дополнительно сужает выборку до одного стажера
func (s *Service) unsubscribedByCourse(ctx context.Context, courseID int64, traineeID *int64, scope []int64) ([]*models.UnsubscribedAttendance, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if len(scope) > 0 && !course.HasAnyCompany(scope) {
		// Курс вне скоупа - скрываем его существование
		return nil, ErrCourseNotFound
	}

	slots, err := s.slotRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		return []*models.UnsubscribedAttendance{}, nil
	}

	slotByID := make(map[int64]*domain.CourseSlot, len(slots))
	slotIDs := make([]int64, 0, len(slots))
	for _, slot := range slots {
		slotByID[slot.ID] = slot
		slotIDs = append(slotIDs, slot.ID)
	}

	atts, err := s.attendanceRepo.GetMatching(ctx, domain.AttendanceFilter{SlotIDs: slotIDs, TraineeID: traineeID})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list attendances: %v", ErrInternal, err)
	}

	entries := make([]*models.UnsubscribedAttendance, 0)
	for _, att := range atts {
		if course.HasTrainee(att.TraineeID) {
			continue
		}
		slot := slotByID[att.CourseSlotID]
		entries = append(entries, &models.UnsubscribedAttendance{
			AttendanceID:  att.ID,
			TraineeID:     att.TraineeID,
			CourseID:      course.ID,
			CourseName:    course.Name,
			CourseSlotID:  att.CourseSlotID,
			SlotStartDate: slot.StartDate,
		})
	}

	return entries, nil
}

// unsubscribedByTrainee собирает все посещения стажера на курсах,
// в ростерах которых он не числится
func (s *Service) unsubscribedByTrainee(ctx context.Context, traineeID int64, scope []int64) ([]*models.UnsubscribedAttendance, error) {
	atts, err := s.attendanceRepo.GetMatching(ctx, domain.AttendanceFilter{TraineeID: &traineeID})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list attendances: %v", ErrInternal, err)
	}
	if len(atts) == 0 {
		return []*models.UnsubscribedAttendance{}, nil
	}

	slotIDs := make([]int64, 0, len(atts))
	for _, att := range atts {
		slotIDs = append(slotIDs, att.CourseSlotID)
	}

	slots, err := s.slotRepo.GetByIDs(ctx, slotIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	slotByID := make(map[int64]*domain.CourseSlot, len(slots))
	courses := make(map[int64]*domain.Course)
	for _, slot := range slots {
		slotByID[slot.ID] = slot
		if _, ok := courses[slot.CourseID]; !ok {
			course, err := s.getCourse(ctx, slot.CourseID)
			if err != nil {
				return nil, err
			}
			courses[slot.CourseID] = course
		}
	}

	entries := make([]*models.UnsubscribedAttendance, 0)
	for _, att := range atts {
		slot, ok := slotByID[att.CourseSlotID]
		if !ok {
			continue
		}
		course := courses[slot.CourseID]
		if len(scope) > 0 && !course.HasAnyCompany(scope) {
			continue
		}
		if course.HasTrainee(att.TraineeID) {
			continue
		}
		entries = append(entries, &models.UnsubscribedAttendance{
			AttendanceID:  att.ID,
			TraineeID:     att.TraineeID,
			CourseID:      course.ID,
			CourseName:    course.Name,
			CourseSlotID:  att.CourseSlotID,
			SlotStartDate: slot.StartDate,
		})
	}

	return entries, nil
}

// unsubscribedByCompanies собирает посещения неподписанных стажеров
// по всем курсам указанных компаний
func (s *Service) unsubscribedByCompanies(ctx context.Context, scope []int64) ([]*models.UnsubscribedAttendance, error) {
	courses, err := s.courseRepo.GetByCompanies(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list courses: %v", ErrInternal, err)
	}

	entries := make([]*models.UnsubscribedAttendance, 0)
	for _, course := range courses {
		courseEntries, err := s.unsubscribedByCourse(ctx, course.ID, nil, nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, courseEntries...)
	}

	return entries, nil
}

// createForTrainee отмечает посещение одного стажера с проверками
// дубликата и принадлежности к курсу
func (s *Service) createForTrainee(ctx context.Context, slot *domain.CourseSlot, course *domain.Course, traineeID int64) (*domain.Attendance, error) {
	count, err := s.attendanceRepo.CountMatching(ctx, domain.AttendanceFilter{
		TraineeID:    &traineeID,
		CourseSlotID: &slot.ID,
	})
	if err != nil {
		s.logger.Error("Create: failed to check duplicate for trainee=%d, slot=%d: %v", traineeID, slot.ID, err)
		return nil, fmt.Errorf("%w: failed to check duplicate: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Create: attendance already exists for trainee=%d, slot=%d", traineeID, slot.ID)
		return nil, ErrDuplicateAttendance
	}

	// Стажер должен числиться на курсе либо принадлежать одной из
	// организаций курса на дату слота
	if !course.HasTrainee(traineeID) {
		trainee, err := s.userClient.GetUser(ctx, traineeID)
		if err != nil {
			if errors.Is(err, userClient.ErrUserNotFound) {
				return nil, ErrTraineeNotFound
			}
			return nil, fmt.Errorf("%w: failed to get trainee: %v", ErrInternal, err)
		}

		at := time.Now()
		if slot.StartDate != nil {
			at = *slot.StartDate
		}

		linked := false
		for _, companyID := range course.CompanyIDs {
			if trainee.LinkedToCompanyAt(companyID, at) {
				linked = true
				break
			}
		}
		if !linked {
			s.logger.Warn("Create: trainee=%d not linked to course=%d", traineeID, course.ID)
			return nil, ErrTraineeNotInCourse
		}
	}

	att, err := s.attendanceRepo.Create(ctx, &domain.Attendance{
		TraineeID:    traineeID,
		CourseSlotID: slot.ID,
	})
	if err != nil {
		if errors.Is(err, attendanceRepo.ErrDuplicateAttendance) {
			return nil, ErrDuplicateAttendance
		}
		s.logger.Error("Create: failed to record attendance for trainee=%d, slot=%d: %v", traineeID, slot.ID, err)
		return nil, fmt.Errorf("%w: failed to record attendance: %v", ErrInternal, err)
	}

	return att, nil
}

func (s *Service) getUser(ctx context.Context, userID int64) (*userClient.User, error) {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("getUser: user id=%d not found", userID)
			return nil, ErrForbidden
		}
		s.logger.Error("getUser: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return user, nil
}

func (s *Service) getSlot(ctx context.Context, slotID int64) (*domain.CourseSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("getSlot: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("getSlot: failed to get slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	return slot, nil
}

func (s *Service) getCourse(ctx context.Context, courseID int64) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			s.logger.Warn("getCourse: course id=%d not found", courseID)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("getCourse: failed to get course id=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}
	return course, nil
}
