package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(hour, minute int) time.Time {
	return time.Date(2020, 3, 3, hour, minute, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "identical intervals",
			aStart: date(8, 0), aEnd: date(11, 30),
			bStart: date(8, 0), bEnd: date(11, 30),
			expected: true,
		},
		{
			name:   "partial overlap",
			aStart: date(8, 0), aEnd: date(11, 30),
			bStart: date(10, 0), bEnd: date(12, 0),
			expected: true,
		},
		{
			name:   "contained interval",
			aStart: date(8, 0), aEnd: date(17, 0),
			bStart: date(10, 0), bEnd: date(11, 0),
			expected: true,
		},
		{
			name:   "touching boundaries do not overlap",
			aStart: date(8, 0), aEnd: date(11, 30),
			bStart: date(11, 30), bEnd: date(17, 0),
			expected: false,
		},
		{
			name:   "touching boundaries reversed",
			aStart: date(14, 0), aEnd: date(17, 30),
			bStart: date(8, 0), bEnd: date(14, 0),
			expected: false,
		},
		{
			name:   "disjoint intervals",
			aStart: date(8, 0), aEnd: date(9, 0),
			bStart: date(14, 0), bEnd: date(17, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestCourseSlot_IsPlanned(t *testing.T) {
	start := date(8, 0)
	end := date(11, 30)

	assert.False(t, (&CourseSlot{}).IsPlanned())
	assert.False(t, (&CourseSlot{StartDate: &start}).IsPlanned())
	assert.True(t, (&CourseSlot{StartDate: &start, EndDate: &end}).IsPlanned())
}

func TestCourseSlot_IsRestricted(t *testing.T) {
	assert.False(t, (&CourseSlot{}).IsRestricted())
	assert.False(t, (&CourseSlot{Trainees: []int64{}}).IsRestricted())
	assert.True(t, (&CourseSlot{Trainees: []int64{7}}).IsRestricted())
}

func TestStepType_Valid(t *testing.T) {
	assert.True(t, StepOnSite.Valid())
	assert.True(t, StepRemote.Valid())
	assert.True(t, StepELearning.Valid())
	assert.False(t, StepType("classroom").Valid())
	assert.False(t, StepType("").Valid())
}
