package update_course_slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
	slotRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/courseslot"
	"github.com/m04kA/SMC-CourseService/internal/service/conflicts"
)

// UseCase use case изменения слота курса
// Поддерживает три операции: планирование/перенос (в том числе на весь
// день с выделением послеобеденного слота), снятие с расписания и
// ограничение списка стажеров. Все изменения выполняются в serializable
// транзакции и сопровождаются записью в историю курса
type UseCase struct {
	slotRepo        SlotRepository
	courseRepo      CourseRepository
	historyRepo     HistoryRepository
	conflictChecker ConflictChecker
	txManager       TransactionManager
	logger          Logger
	businessTZ      *time.Location
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots SlotRepository,
	courses CourseRepository,
	history HistoryRepository,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
	businessTZ *time.Location,
) *UseCase {
	if businessTZ == nil {
		businessTZ = time.UTC
	}
	return &UseCase{
		slotRepo:        slots,
		courseRepo:      courses,
		historyRepo:     history,
		conflictChecker: conflictChecker,
		txManager:       txManager,
		logger:          logger,
		businessTZ:      businessTZ,
	}
}

// Execute выполняет use case изменения слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateCourseSlot: slot=%d, user=%d, action=%s", req.SlotID, req.UserID, req.Action)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateCourseSlot: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Все чтения и записи в одной serializable транзакции:
	// слот блокируется через FOR UPDATE до проверки конфликтов
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("UpdateCourseSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("UpdateCourseSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		course, err := uc.courseRepo.GetByID(txCtx, slot.CourseID)
		if err != nil {
			if errors.Is(err, courseRepo.ErrCourseNotFound) {
				uc.logger.Warn("UpdateCourseSlot: course id=%d not found", slot.CourseID)
				return ErrCourseNotFound
			}
			uc.logger.Error("UpdateCourseSlot: failed to get course id=%d: %v", slot.CourseID, err)
			return fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
		}

		if course.IsArchived() {
			uc.logger.Warn("UpdateCourseSlot: course id=%d is archived", course.ID)
			return ErrCourseArchived
		}

		switch req.Action {
		case ActionRestrict:
			resp, err = uc.restrict(txCtx, req, slot, course)
		case ActionUnschedule:
			resp, err = uc.unschedule(txCtx, req, slot)
		case ActionReschedule:
			resp, err = uc.reschedule(txCtx, req, slot)
		default:
			err = fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateCourseSlot: slot id=%d successfully updated (action=%s)", req.SlotID, req.Action)

	return resp, nil
}

// --- Операции ---

// restrict ограничивает список стажеров слота.
// Список, совпадающий по размеру с составом курса, означает снятие
// ограничения: колонка очищается, слот снова доступен всему составу
func (uc *UseCase) restrict(ctx context.Context, req *Request, slot *domain.CourseSlot, course *domain.Course) (*Response, error) {
	if err := validateTraineesSubset(req.Trainees, course); err != nil {
		uc.logger.Warn("UpdateCourseSlot: restriction rejected for slot id=%d: %v", slot.ID, err)
		return nil, err
	}

	patch := domain.SlotPatch{}
	if len(req.Trainees) == len(course.TraineeIDs) {
		patch.UnsetTrainees = true
	} else {
		patch.SetTrainees = req.Trainees
	}

	entry := historySnapshot(slot, domain.ActionSlotRestriction, req.UserID)
	if _, err := uc.historyRepo.Create(ctx, entry); err != nil {
		uc.logger.Error("UpdateCourseSlot: failed to record restriction history for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to record history: %v", ErrInternal, err)
	}

	updated, err := uc.applyPatch(ctx, slot.ID, patch)
	if err != nil {
		return nil, err
	}

	return &Response{Slot: toSlotResponse(updated)}, nil
}

// unschedule снимает слот с расписания: очищаются даты, адрес, ссылка
// на встречу и ограничение списка стажеров
func (uc *UseCase) unschedule(ctx context.Context, req *Request, slot *domain.CourseSlot) (*Response, error) {
	entry := historySnapshot(slot, domain.ActionSlotDeletion, req.UserID)
	if _, err := uc.historyRepo.Create(ctx, entry); err != nil {
		uc.logger.Error("UpdateCourseSlot: failed to record unschedule history for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to record history: %v", ErrInternal, err)
	}

	patch := domain.SlotPatch{
		UnsetDates:       true,
		UnsetAddress:     true,
		UnsetMeetingLink: true,
		UnsetTrainees:    true,
	}

	updated, err := uc.applyPatch(ctx, slot.ID, patch)
	if err != nil {
		return nil, err
	}

	return &Response{Slot: toSlotResponse(updated)}, nil
}

// reschedule планирует слот или переносит его на новый интервал.
// Недостающие границы интервала берутся из текущего состояния слота
func (uc *UseCase) reschedule(ctx context.Context, req *Request, slot *domain.CourseSlot) (*Response, error) {
	newStart := slot.StartDate
	if req.StartDate != nil {
		newStart = req.StartDate
	}
	newEnd := slot.EndDate
	if req.EndDate != nil {
		newEnd = req.EndDate
	}

	if newStart == nil || newEnd == nil {
		return nil, fmt.Errorf("%w: both startDate and endDate are required to schedule a slot", ErrInvalidInput)
	}
	if !newEnd.After(*newStart) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	// Проверка пересечений с другими слотами курса; сам слот
	// исключается, его старый интервал заменяется этим же запросом
	hasConflicts, err := uc.conflictChecker.HasConflicts(ctx, conflicts.Candidate{
		CourseID:      slot.CourseID,
		StartDate:     *newStart,
		EndDate:       *newEnd,
		ExcludeSlotID: &slot.ID,
	})
	if err != nil {
		uc.logger.Error("UpdateCourseSlot: conflict check failed for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}
	if hasConflicts {
		uc.logger.Warn("UpdateCourseSlot: schedule conflict for slot id=%d on [%s, %s)",
			slot.ID, newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339))
		return nil, ErrScheduleConflict
	}

	// Послеобеденный интервал проверяется до любых записей, чтобы
	// конфликт не оставил наполовину распланированный день
	var afternoonStart, afternoonEnd time.Time
	if req.WholeDay {
		afternoonStart, afternoonEnd = afternoonInterval(*newStart, uc.businessTZ)

		hasConflicts, err := uc.conflictChecker.HasConflicts(ctx, conflicts.Candidate{
			CourseID:      slot.CourseID,
			StartDate:     afternoonStart,
			EndDate:       afternoonEnd,
			ExcludeSlotID: &slot.ID,
		})
		if err != nil {
			uc.logger.Error("UpdateCourseSlot: afternoon conflict check failed for slot id=%d: %v", slot.ID, err)
			return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if hasConflicts {
			uc.logger.Warn("UpdateCourseSlot: schedule conflict on afternoon interval for slot id=%d", slot.ID)
			return nil, ErrScheduleConflict
		}
	}

	// Очный слот не хранит ссылку на встречу, дистанционный - адрес
	unsetMeetingLink := slot.StepType == domain.StepOnSite || req.MeetingLink == nil
	unsetAddress := slot.StepType == domain.StepRemote || req.Address == nil

	patch := domain.SlotPatch{
		SetStartDate: newStart,
		SetEndDate:   newEnd,
	}
	if unsetAddress {
		patch.UnsetAddress = true
	} else {
		patch.SetAddress = req.Address
	}
	if unsetMeetingLink {
		patch.UnsetMeetingLink = true
	} else {
		patch.SetMeetingLink = req.MeetingLink
	}

	entry := historySnapshot(slot, domain.ActionSlotEdition, req.UserID)
	entry.Update, err = editionDiff(slot, &patch)
	if err != nil {
		uc.logger.Error("UpdateCourseSlot: failed to build edition diff for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to build edition diff: %v", ErrInternal, err)
	}
	if _, err := uc.historyRepo.Create(ctx, entry); err != nil {
		uc.logger.Error("UpdateCourseSlot: failed to record edition history for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to record history: %v", ErrInternal, err)
	}

	updated, err := uc.applyPatch(ctx, slot.ID, patch)
	if err != nil {
		return nil, err
	}

	resp := &Response{Slot: toSlotResponse(updated)}

	if req.WholeDay {
		afternoon, err := uc.planAfternoonSlot(ctx, req, updated, afternoonStart, afternoonEnd)
		if err != nil {
			return nil, err
		}
		resp.AfternoonSlot = toSlotResponse(afternoon)
	}

	return resp, nil
}

// planAfternoonSlot выделяет послеобеденный слот при планировании на
// весь день. Незапланированная заготовка того же шага переиспользуется,
// новый слот создается только когда заготовок не осталось
func (uc *UseCase) planAfternoonSlot(ctx context.Context, req *Request, morning *domain.CourseSlot, start, end time.Time) (*domain.CourseSlot, error) {
	patch := domain.SlotPatch{
		SetStartDate: &start,
		SetEndDate:   &end,
	}
	if morning.Address != nil {
		patch.SetAddress = morning.Address
	} else {
		patch.UnsetAddress = true
	}
	if morning.MeetingLink != nil {
		patch.SetMeetingLink = morning.MeetingLink
	} else {
		patch.UnsetMeetingLink = true
	}

	var afternoon *domain.CourseSlot

	sibling, err := uc.slotRepo.FindUnplanned(ctx, morning.CourseID, morning.StepID, morning.ID)
	switch {
	case err == nil:
		afternoon, err = uc.applyPatch(ctx, sibling.ID, patch)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		created, err := uc.slotRepo.CreateBatch(ctx, []*domain.CourseSlot{{
			CourseID:    morning.CourseID,
			StepID:      morning.StepID,
			StepType:    morning.StepType,
			StartDate:   &start,
			EndDate:     &end,
			Address:     morning.Address,
			MeetingLink: morning.MeetingLink,
		}})
		if err != nil {
			uc.logger.Error("UpdateCourseSlot: failed to create afternoon slot for course=%d: %v", morning.CourseID, err)
			return nil, fmt.Errorf("%w: failed to create afternoon slot: %v", ErrInternal, err)
		}
		afternoon = created[0]
	default:
		uc.logger.Error("UpdateCourseSlot: failed to look up unplanned slot for course=%d: %v", morning.CourseID, err)
		return nil, fmt.Errorf("%w: failed to look up unplanned slot: %v", ErrInternal, err)
	}

	entry := historySnapshot(afternoon, domain.ActionSlotCreation, req.UserID)
	if _, err := uc.historyRepo.Create(ctx, entry); err != nil {
		uc.logger.Error("UpdateCourseSlot: failed to record afternoon history for slot id=%d: %v", afternoon.ID, err)
		return nil, fmt.Errorf("%w: failed to record history: %v", ErrInternal, err)
	}

	return afternoon, nil
}

// --- Вспомогательные методы ---

// applyPatch применяет патч и перечитывает слот в рамках транзакции
func (uc *UseCase) applyPatch(ctx context.Context, slotID int64, patch domain.SlotPatch) (*domain.CourseSlot, error) {
	if err := uc.slotRepo.Update(ctx, slotID, patch); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("UpdateCourseSlot: failed to update slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
	}

	updated, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		uc.logger.Error("UpdateCourseSlot: failed to reload slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to reload slot: %v", ErrInternal, err)
	}

	return updated, nil
}

// historySnapshot строит запись истории со снимком текущего состояния
// слота
func historySnapshot(slot *domain.CourseSlot, action domain.HistoryAction, userID int64) *domain.CourseHistory {
	entry := &domain.CourseHistory{
		CourseID:      slot.CourseID,
		Action:        action,
		SlotStartDate: slot.StartDate,
		SlotEndDate:   slot.EndDate,
		CreatedBy:     userID,
	}
	if slot.Address != nil {
		entry.SlotAddress = &slot.Address.FullAddress
	}
	entry.SlotMeetingLink = slot.MeetingLink
	return entry
}

type fieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// editionDiff строит JSON-диф старых и новых значений полей слота для
// записи slot_edition
func editionDiff(slot *domain.CourseSlot, patch *domain.SlotPatch) (json.RawMessage, error) {
	diff := make(map[string]fieldChange)

	if patch.SetStartDate != nil && !equalTimes(slot.StartDate, patch.SetStartDate) {
		diff["startDate"] = fieldChange{From: slot.StartDate, To: patch.SetStartDate}
	}
	if patch.SetEndDate != nil && !equalTimes(slot.EndDate, patch.SetEndDate) {
		diff["endDate"] = fieldChange{From: slot.EndDate, To: patch.SetEndDate}
	}

	var oldAddress *string
	if slot.Address != nil {
		oldAddress = &slot.Address.FullAddress
	}
	switch {
	case patch.UnsetAddress && oldAddress != nil:
		diff["address"] = fieldChange{From: oldAddress, To: nil}
	case patch.SetAddress != nil:
		newAddress := patch.SetAddress.FullAddress
		if oldAddress == nil || *oldAddress != newAddress {
			diff["address"] = fieldChange{From: oldAddress, To: newAddress}
		}
	}

	switch {
	case patch.UnsetMeetingLink && slot.MeetingLink != nil:
		diff["meetingLink"] = fieldChange{From: slot.MeetingLink, To: nil}
	case patch.SetMeetingLink != nil:
		if slot.MeetingLink == nil || *slot.MeetingLink != *patch.SetMeetingLink {
			diff["meetingLink"] = fieldChange{From: slot.MeetingLink, To: patch.SetMeetingLink}
		}
	}

	return json.Marshal(diff)
}

func equalTimes(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
