package convocations

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
)

// remoteNotice фиксированная пометка для дистанционных шагов,
// добавляемая к списку адресов в документе-приглашении
const remoteNotice = "Cette formation contient des créneaux en distanciel"

// maxDistinctAddresses порог, после которого список полных адресов
// сворачивается до списка городов, чтобы не перегружать документ
const maxDistinctAddresses = 2

// Content структура содержимого приглашения на курс
// Потребляется генератором PDF-документов (вне этого сервиса)
type Content struct {
	CourseID   int64
	CourseName string
	TrainerID  *int64
	Addresses  []string
	Dates      []string
}

// Service собирает содержимое приглашений на курс
type Service struct {
	slotRepo   SlotRepository
	courseRepo CourseRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса приглашений
func NewService(slotRepo SlotRepository, courseRepo CourseRepository, logger Logger) *Service {
	return &Service{
		slotRepo:   slotRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// BuildContent собирает содержимое приглашения для курса
func (s *Service) BuildContent(ctx context.Context, courseID int64) (*Content, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			s.logger.Warn("BuildContent: course id=%d not found", courseID)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("BuildContent: failed to get course id=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.GetByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("BuildContent: failed to list slots for course=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	return &Content{
		CourseID:   course.ID,
		CourseName: course.Name,
		TrainerID:  course.TrainerID,
		Addresses:  GetAddressList(slots),
		Dates:      FormatSlotDates(slots),
	}, nil
}

// GetAddressList возвращает список мест проведения курса
// Если различных полных адресов не больше двух - возвращает их;
// иначе сворачивает до списка различных городов
// Если среди шагов есть дистанционные, добавляет фиксированную пометку
// Чистая функция без побочных эффектов
func GetAddressList(slots []*domain.CourseSlot) []string {
	addresses := make([]string, 0)
	cities := make([]string, 0)
	seenAddresses := make(map[string]bool)
	seenCities := make(map[string]bool)
	hasRemote := false

	for _, slot := range slots {
		if slot.StepType == domain.StepRemote {
			hasRemote = true
		}
		if slot.Address == nil {
			continue
		}
		if full := slot.Address.FullAddress; full != "" && !seenAddresses[full] {
			seenAddresses[full] = true
			addresses = append(addresses, full)
		}
		if city := slot.Address.City; city != "" && !seenCities[city] {
			seenCities[city] = true
			cities = append(cities, city)
		}
	}

	result := addresses
	if len(addresses) > maxDistinctAddresses {
		result = cities
	}

	if hasRemote {
		result = append(result, remoteNotice)
	}

	return result
}

// FormatSlotDates возвращает даты слотов курса для отображения:
// отсортированные по возрастанию, отформатированные, без дубликатов
// (порядок первого вхождения сохраняется)
// Чистая функция без побочных эффектов
func FormatSlotDates(slots []*domain.CourseSlot) []string {
	planned := make([]*domain.CourseSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsPlanned() {
			planned = append(planned, slot)
		}
	}

	sort.SliceStable(planned, func(i, j int) bool {
		return planned[i].StartDate.Before(*planned[j].StartDate)
	})

	dates := make([]string, 0, len(planned))
	seen := make(map[string]bool)
	for _, slot := range planned {
		formatted := slot.StartDate.Format(domain.DisplayDateFormat)
		if seen[formatted] {
			continue
		}
		seen[formatted] = true
		dates = append(dates, formatted)
	}

	return dates
}
