package create_course_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
)

// UseCase use case пакетного создания незапланированных слотов
// Слоты создаются без дат, поэтому проверка конфликтов расписания
// не требуется
type UseCase struct {
	slotRepo    SlotRepository
	courseRepo  CourseRepository
	historyRepo HistoryRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	courseRepo CourseRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		courseRepo:  courseRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCourseSlots: user=%d, course=%d, step=%d, quantity=%d",
		req.UserID, req.CourseID, req.StepID, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCourseSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем курс и проверяем, что он не архивный
	course, err := uc.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("CreateCourseSlots: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("CreateCourseSlots: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	if course.IsArchived() {
		uc.logger.Warn("CreateCourseSlots: course id=%d is archived", req.CourseID)
		return nil, ErrCourseArchived
	}

	// 3. Готовим quantity одинаковых незапланированных слотов
	slots := make([]*domain.CourseSlot, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		slots = append(slots, &domain.CourseSlot{
			CourseID:    req.CourseID,
			StepID:      req.StepID,
			StepType:    req.StepType,
			Address:     req.Address,
			MeetingLink: req.MeetingLink,
		})
	}

	// 4. Создаем слоты и записи истории в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.slotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			uc.logger.Error("CreateCourseSlots: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}
		slots = created

		for _, slot := range slots {
			entry := &domain.CourseHistory{
				CourseID:  slot.CourseID,
				Action:    domain.ActionSlotCreation,
				CreatedBy: req.UserID,
			}
			if slot.Address != nil {
				entry.SlotAddress = &slot.Address.FullAddress
			}
			entry.SlotMeetingLink = slot.MeetingLink

			if _, err := uc.historyRepo.Create(txCtx, entry); err != nil {
				uc.logger.Error("CreateCourseSlots: failed to record creation history for slot id=%d: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to record history: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateCourseSlots: successfully created %d slot(s) for course=%d", len(slots), req.CourseID)

	// 5. Конвертируем в response
	result := make([]*SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, &SlotResponse{
			ID:        slot.ID,
			CourseID:  slot.CourseID,
			StepID:    slot.StepID,
			StepType:  slot.StepType,
			CreatedAt: slot.CreatedAt,
		})
	}

	return &Response{Slots: result}, nil
}
