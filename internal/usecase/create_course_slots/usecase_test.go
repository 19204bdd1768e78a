package create_course_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
	"github.com/m04kA/SMC-CourseService/pkg/ptr"
)

type fakeSlotRepo struct {
	nextID  int64
	created []*domain.CourseSlot
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.CourseSlot) ([]*domain.CourseSlot, error) {
	result := make([]*domain.CourseSlot, 0, len(slots))
	for _, slot := range slots {
		f.nextID++
		created := *slot
		created.ID = f.nextID
		created.CreatedAt = time.Now()
		created.UpdatedAt = created.CreatedAt
		result = append(result, &created)
	}
	f.created = append(f.created, result...)
	return result, nil
}

type fakeCourseRepo struct {
	course *domain.Course
	err    error
}

func (f *fakeCourseRepo) GetByID(context.Context, int64) (*domain.Course, error) {
	return f.course, f.err
}

type fakeHistoryRepo struct {
	entries []*domain.CourseHistory
}

func (f *fakeHistoryRepo) Create(_ context.Context, entry *domain.CourseHistory) (*domain.CourseHistory, error) {
	created := *entry
	created.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, &created)
	return &created, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		UserID:   10,
		CourseID: 42,
		StepID:   3,
		StepType: domain.StepOnSite,
		Quantity: 2,
	}
}

func TestUseCase_Execute(t *testing.T) {
	activeCourse := &domain.Course{ID: 42, Name: "Safety training"}

	t.Run("creates quantity unscheduled slots with history entries", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		history := &fakeHistoryRepo{}
		uc := NewUseCase(slots, &fakeCourseRepo{course: activeCourse}, history, fakeTxManager{}, nopLogger{})

		req := validRequest()
		req.Quantity = 3
		req.Address = &domain.Address{FullAddress: "1 rue de Rivoli, 75001 Paris", City: "Paris"}

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		require.Len(t, resp.Slots, 3)
		require.Len(t, slots.created, 3)
		for _, slot := range slots.created {
			assert.Equal(t, int64(42), slot.CourseID)
			assert.Equal(t, int64(3), slot.StepID)
			assert.Nil(t, slot.StartDate)
			assert.Nil(t, slot.EndDate)
		}

		// По одной записи истории на каждый созданный слот
		require.Len(t, history.entries, 3)
		for _, entry := range history.entries {
			assert.Equal(t, domain.ActionSlotCreation, entry.Action)
			assert.Equal(t, int64(10), entry.CreatedBy)
			require.NotNil(t, entry.SlotAddress)
			assert.Equal(t, "1 rue de Rivoli, 75001 Paris", *entry.SlotAddress)
		}
	})

	t.Run("quantity below minimum", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, &fakeCourseRepo{course: activeCourse}, &fakeHistoryRepo{}, fakeTxManager{}, nopLogger{})

		req := validRequest()
		req.Quantity = 0

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("quantity above maximum", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, &fakeCourseRepo{course: activeCourse}, &fakeHistoryRepo{}, fakeTxManager{}, nopLogger{})

		req := validRequest()
		req.Quantity = domain.MaxSlotsPerCreation + 1

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown step type", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, &fakeCourseRepo{course: activeCourse}, &fakeHistoryRepo{}, fakeTxManager{}, nopLogger{})

		req := validRequest()
		req.StepType = domain.StepType("classroom")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("course not found", func(t *testing.T) {
		uc := NewUseCase(&fakeSlotRepo{}, &fakeCourseRepo{err: courseRepo.ErrCourseNotFound}, &fakeHistoryRepo{}, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("archived course", func(t *testing.T) {
		archived := &domain.Course{ID: 42, ArchivedAt: ptr.Ptr(time.Now())}
		slots := &fakeSlotRepo{}
		uc := NewUseCase(slots, &fakeCourseRepo{course: archived}, &fakeHistoryRepo{}, fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCourseArchived)
		assert.Empty(t, slots.created)
	})
}
