package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
	slotRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/courseslot"
)

// Service сервис для работы со слотами курсов (удаление, чтение)
// Создание и обновление слотов живут в отдельных usecase
type Service struct {
	slotRepo    SlotRepository
	historyRepo HistoryRepository
	courseRepo  CourseRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	historyRepo HistoryRepository,
	courseRepo CourseRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		historyRepo: historyRepo,
		courseRepo:  courseRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Remove удаляет слот и фиксирует удаление в истории курса
// Каскадная очистка посещаемости выполняется ограничением БД (ON DELETE CASCADE)
func (s *Service) Remove(ctx context.Context, slotID int64, userID int64) error {
	s.logger.Info("Remove: deleting slot id=%d by user=%d", slotID, userID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Remove: slot id=%d not found", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("Remove: failed to get slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		course, err := s.courseRepo.GetByID(txCtx, slot.CourseID)
		if err != nil && !errors.Is(err, courseRepo.ErrCourseNotFound) {
			s.logger.Error("Remove: failed to get course id=%d: %v", slot.CourseID, err)
			return fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
		}
		if course != nil && course.IsArchived() {
			s.logger.Warn("Remove: course id=%d is archived, slot id=%d not deleted", slot.CourseID, slotID)
			return ErrCourseArchived
		}

		entry := &domain.CourseHistory{
			CourseID:      slot.CourseID,
			Action:        domain.ActionSlotDeletion,
			SlotStartDate: slot.StartDate,
			SlotEndDate:   slot.EndDate,
			CreatedBy:     userID,
		}
		if slot.Address != nil {
			entry.SlotAddress = &slot.Address.FullAddress
		}
		entry.SlotMeetingLink = slot.MeetingLink

		if _, err := s.historyRepo.Create(txCtx, entry); err != nil {
			s.logger.Error("Remove: failed to record deletion history for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: failed to record history: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Delete(txCtx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			s.logger.Error("Remove: failed to delete slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: failed to delete slot: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Remove: successfully deleted slot id=%d", slotID)
	return nil
}

// ListByCourse возвращает все слоты курса
func (s *Service) ListByCourse(ctx context.Context, courseID int64) ([]*domain.CourseSlot, error) {
	slots, err := s.slotRepo.GetByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("ListByCourse: failed to list slots for course=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}
	return slots, nil
}

// ListHistory возвращает журнал изменений расписания курса, новые записи первыми
func (s *Service) ListHistory(ctx context.Context, courseID int64) ([]*domain.CourseHistory, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			s.logger.Warn("ListHistory: course id=%d not found", courseID)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("ListHistory: failed to get course id=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	entries, err := s.historyRepo.GetByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("ListHistory: failed to list history for course=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to list history: %v", ErrInternal, err)
	}
	return entries, nil
}
