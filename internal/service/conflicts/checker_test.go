package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourseService/pkg/ptr"
)

type fakeSlotCounter struct {
	count int
	err   error

	gotCourseID  int64
	gotStart     time.Time
	gotEnd       time.Time
	gotExcludeID *int64
}

func (f *fakeSlotCounter) CountInInterval(_ context.Context, courseID int64, start, end time.Time, excludeID *int64) (int, error) {
	f.gotCourseID = courseID
	f.gotStart = start
	f.gotEnd = end
	f.gotExcludeID = excludeID
	return f.count, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestChecker_HasConflicts(t *testing.T) {
	start := time.Date(2020, 3, 3, 8, 0, 0, 0, time.UTC)
	end := time.Date(2020, 3, 3, 11, 30, 0, 0, time.UTC)

	t.Run("no overlapping slots", func(t *testing.T) {
		counter := &fakeSlotCounter{count: 0}
		checker := NewChecker(counter, nopLogger{})

		hasConflicts, err := checker.HasConflicts(context.Background(), Candidate{
			CourseID:  42,
			StartDate: start,
			EndDate:   end,
		})

		require.NoError(t, err)
		assert.False(t, hasConflicts)
		assert.Equal(t, int64(42), counter.gotCourseID)
		assert.Equal(t, start, counter.gotStart)
		assert.Equal(t, end, counter.gotEnd)
		assert.Nil(t, counter.gotExcludeID)
	})

	t.Run("overlapping slot found", func(t *testing.T) {
		checker := NewChecker(&fakeSlotCounter{count: 1}, nopLogger{})

		hasConflicts, err := checker.HasConflicts(context.Background(), Candidate{
			CourseID:  42,
			StartDate: start,
			EndDate:   end,
		})

		require.NoError(t, err)
		assert.True(t, hasConflicts)
	})

	t.Run("exclude slot id is passed through", func(t *testing.T) {
		counter := &fakeSlotCounter{count: 0}
		checker := NewChecker(counter, nopLogger{})

		_, err := checker.HasConflicts(context.Background(), Candidate{
			CourseID:      42,
			StartDate:     start,
			EndDate:       end,
			ExcludeSlotID: ptr.Ptr(int64(7)),
		})

		require.NoError(t, err)
		require.NotNil(t, counter.gotExcludeID)
		assert.Equal(t, int64(7), *counter.gotExcludeID)
	})

	t.Run("end before start", func(t *testing.T) {
		checker := NewChecker(&fakeSlotCounter{}, nopLogger{})

		_, err := checker.HasConflicts(context.Background(), Candidate{
			CourseID:  42,
			StartDate: end,
			EndDate:   start,
		})

		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("zero-length interval", func(t *testing.T) {
		checker := NewChecker(&fakeSlotCounter{}, nopLogger{})

		_, err := checker.HasConflicts(context.Background(), Candidate{
			CourseID:  42,
			StartDate: start,
			EndDate:   start,
		})

		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("repository failure", func(t *testing.T) {
		checker := NewChecker(&fakeSlotCounter{err: errors.New("connection refused")}, nopLogger{})

		_, err := checker.HasConflicts(context.Background(), Candidate{
			CourseID:  42,
			StartDate: start,
			EndDate:   end,
		})

		assert.ErrorIs(t, err, ErrInternal)
	})
}
