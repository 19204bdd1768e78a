package attendances

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	attendanceStorage "github.com/m04kA/SMC-CourseService/internal/infra/storage/attendance"
	courseStorage "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
	slotRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/courseslot"
	"github.com/m04kA/SMC-CourseService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CourseService/internal/service/attendances/models"
	"github.com/m04kA/SMC-CourseService/pkg/ptr"
)

type fakeAttendanceRepo struct {
	existing []*domain.Attendance
	created  []*domain.Attendance
	deleted  int64
	nextID   int64
}

func (f *fakeAttendanceRepo) matches(att *domain.Attendance, filter domain.AttendanceFilter) bool {
	if len(filter.SlotIDs) > 0 {
		found := false
		for _, id := range filter.SlotIDs {
			if att.CourseSlotID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	} else if filter.CourseSlotID != nil && att.CourseSlotID != *filter.CourseSlotID {
		return false
	}
	if filter.TraineeID != nil && att.TraineeID != *filter.TraineeID {
		return false
	}
	return true
}

func (f *fakeAttendanceRepo) all() []*domain.Attendance {
	return append(append([]*domain.Attendance{}, f.existing...), f.created...)
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att *domain.Attendance) (*domain.Attendance, error) {
	for _, existing := range f.all() {
		if existing.TraineeID == att.TraineeID && existing.CourseSlotID == att.CourseSlotID {
			return nil, attendanceStorage.ErrDuplicateAttendance
		}
	}
	f.nextID++
	created := *att
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeAttendanceRepo) CountMatching(_ context.Context, filter domain.AttendanceFilter) (int, error) {
	count := 0
	for _, att := range f.all() {
		if f.matches(att, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) GetMatching(_ context.Context, filter domain.AttendanceFilter) ([]*domain.Attendance, error) {
	result := make([]*domain.Attendance, 0)
	for _, att := range f.all() {
		if f.matches(att, filter) {
			result = append(result, att)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) DeleteMatching(_ context.Context, filter domain.AttendanceFilter) (int64, error) {
	kept := make([]*domain.Attendance, 0)
	for _, att := range f.all() {
		if f.matches(att, filter) {
			f.deleted++
			continue
		}
		kept = append(kept, att)
	}
	f.existing = kept
	f.created = nil
	return f.deleted, nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.CourseSlot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.CourseSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (f *fakeSlotRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.CourseSlot, error) {
	result := make([]*domain.CourseSlot, 0, len(ids))
	for _, id := range ids {
		if slot, ok := f.slots[id]; ok {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (f *fakeSlotRepo) GetByCourse(_ context.Context, courseID int64) ([]*domain.CourseSlot, error) {
	result := make([]*domain.CourseSlot, 0)
	for _, slot := range f.slots {
		if slot.CourseID == courseID {
			result = append(result, slot)
		}
	}
	return result, nil
}

type fakeCourseRepo struct {
	courses map[int64]*domain.Course
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, courseStorage.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseRepo) GetByCompanies(_ context.Context, companyIDs []int64) ([]*domain.Course, error) {
	result := make([]*domain.Course, 0)
	for _, course := range f.courses {
		if course.HasAnyCompany(companyIDs) {
			result = append(result, course)
		}
	}
	return result, nil
}

type fakeUserClient struct {
	users    map[int64]*userservice.User
	holdings map[int64]*userservice.Holding
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserClient) GetHolding(_ context.Context, holdingID int64) (*userservice.Holding, error) {
	holding, ok := f.holdings[holdingID]
	if !ok {
		return nil, userservice.ErrHoldingNotFound
	}
	return holding, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстуры: курс 42 компании 100 с ростером {1, 2}, слот 5

func testCourse() *domain.Course {
	return &domain.Course{
		ID:         42,
		Name:       "Safety training",
		TrainerID:  ptr.Ptr(int64(20)),
		CompanyIDs: []int64{100},
		TraineeIDs: []int64{1, 2},
	}
}

func testSetup(course *domain.Course) (*fakeAttendanceRepo, *Service) {
	attRepo := &fakeAttendanceRepo{}
	start := time.Date(2020, 3, 3, 7, 0, 0, 0, time.UTC)
	end := time.Date(2020, 3, 3, 10, 30, 0, 0, time.UTC)
	slots := &fakeSlotRepo{slots: map[int64]*domain.CourseSlot{
		5: {ID: 5, CourseID: course.ID, StepID: 1, StepType: domain.StepOnSite, StartDate: &start, EndDate: &end},
	}}
	courses := &fakeCourseRepo{courses: map[int64]*domain.Course{course.ID: course}}
	users := &fakeUserClient{
		users: map[int64]*userservice.User{
			10: {ID: 10, Role: string(domain.RoleVendorAdmin)},
			20: {ID: 20, Role: string(domain.RoleTrainer)},
			30: {ID: 30, Role: string(domain.RoleClientAdmin), CompanyID: ptr.Ptr(int64(100))},
			31: {ID: 31, Role: string(domain.RoleClientAdmin), CompanyID: ptr.Ptr(int64(200))},
			40: {ID: 40, Role: string(domain.RoleHoldingAdmin), HoldingID: ptr.Ptr(int64(500))},
		},
		holdings: map[int64]*userservice.Holding{
			500: {ID: 500, CompanyIDs: []int64{100, 101}},
		},
	}
	svc := NewService(attRepo, slots, courses, users, nopLogger{})
	return attRepo, svc
}

func TestService_List(t *testing.T) {
	t.Run("both course and slot set", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.List(context.Background(), &models.ListRequest{
			UserID:       10,
			CourseID:     ptr.Ptr(int64(42)),
			CourseSlotID: ptr.Ptr(int64(5)),
		})

		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("neither course nor slot set", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.List(context.Background(), &models.ListRequest{UserID: 10})

		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("vendor sees slot attendances", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		attRepo.existing = []*domain.Attendance{
			{ID: 1, TraineeID: 1, CourseSlotID: 5},
			{ID: 2, TraineeID: 2, CourseSlotID: 5},
			{ID: 3, TraineeID: 1, CourseSlotID: 99},
		}

		resp, err := svc.List(context.Background(), &models.ListRequest{
			UserID:       10,
			CourseSlotID: ptr.Ptr(int64(5)),
		})

		require.NoError(t, err)
		assert.Len(t, resp.Attendances, 2)
	})

	t.Run("trainer of another course is forbidden", func(t *testing.T) {
		course := testCourse()
		course.TrainerID = ptr.Ptr(int64(999))
		_, svc := testSetup(course)

		_, err := svc.List(context.Background(), &models.ListRequest{
			UserID:       20,
			CourseSlotID: ptr.Ptr(int64(5)),
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("client of another company gets not found", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.List(context.Background(), &models.ListRequest{
			UserID:       31,
			CourseSlotID: ptr.Ptr(int64(5)),
		})

		// Чужой курс маскируется как отсутствующий
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("holding admin with matching company", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		resp, err := svc.List(context.Background(), &models.ListRequest{
			UserID:       40,
			CourseSlotID: ptr.Ptr(int64(5)),
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Attendances)
	})
}

func TestService_Create(t *testing.T) {
	t.Run("marks a single trainee", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())

		resp, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		require.NoError(t, err)
		require.Len(t, resp.Attendances, 1)
		assert.Equal(t, int64(1), resp.Attendances[0].TraineeID)
		assert.Len(t, attRepo.created, 1)
	})

	t.Run("duplicate mark is rejected", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		attRepo.existing = []*domain.Attendance{{ID: 1, TraineeID: 1, CourseSlotID: 5}}

		_, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		assert.ErrorIs(t, err, ErrDuplicateAttendance)
	})

	t.Run("bulk mark skips already marked trainees", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		attRepo.existing = []*domain.Attendance{{ID: 1, TraineeID: 1, CourseSlotID: 5}}

		resp, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
		})

		require.NoError(t, err)
		// Из ростера {1, 2} отмечен только стажер 2
		require.Len(t, resp.Attendances, 1)
		assert.Equal(t, int64(2), resp.Attendances[0].TraineeID)
	})

	t.Run("trainee outside roster but linked to course company", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		users := svc.userClient.(*fakeUserClient)
		users.users[3] = &userservice.User{
			ID:   3,
			Role: string(domain.RoleCoach),
			CompanyLinks: []userservice.CompanyLink{
				{CompanyID: 100, StartDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)},
			},
		}

		resp, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(3)),
		})

		require.NoError(t, err)
		require.Len(t, resp.Attendances, 1)
		assert.Len(t, attRepo.created, 1)
	})

	t.Run("trainee without any link is rejected", func(t *testing.T) {
		_, svc := testSetup(testCourse())
		users := svc.userClient.(*fakeUserClient)
		users.users[4] = &userservice.User{ID: 4, Role: string(domain.RoleCoach)}

		_, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(4)),
		})

		assert.ErrorIs(t, err, ErrTraineeNotInCourse)
	})

	t.Run("archived course", func(t *testing.T) {
		course := testCourse()
		course.ArchivedAt = ptr.Ptr(time.Now())
		_, svc := testSetup(course)

		_, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		assert.ErrorIs(t, err, ErrCourseArchived)
	})

	t.Run("course without company", func(t *testing.T) {
		course := testCourse()
		course.CompanyIDs = nil
		_, svc := testSetup(course)

		_, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		assert.ErrorIs(t, err, ErrCourseWithoutCompany)
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.Create(context.Background(), &models.CreateRequest{
			UserID:       10,
			CourseSlotID: 404,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("removes a single trainee mark", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		attRepo.existing = []*domain.Attendance{
			{ID: 1, TraineeID: 1, CourseSlotID: 5},
			{ID: 2, TraineeID: 2, CourseSlotID: 5},
		}

		err := svc.Delete(context.Background(), &models.DeleteRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), attRepo.deleted)
	})

	t.Run("missing mark for specified trainee", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		err := svc.Delete(context.Background(), &models.DeleteRequest{
			UserID:       10,
			CourseSlotID: 5,
			TraineeID:    ptr.Ptr(int64(1)),
		})

		assert.ErrorIs(t, err, ErrAttendanceNotFound)
	})

	t.Run("removes all slot marks when trainee omitted", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		attRepo.existing = []*domain.Attendance{
			{ID: 1, TraineeID: 1, CourseSlotID: 5},
			{ID: 2, TraineeID: 2, CourseSlotID: 5},
		}

		err := svc.Delete(context.Background(), &models.DeleteRequest{
			UserID:       10,
			CourseSlotID: 5,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), attRepo.deleted)
	})
}

func TestService_ListUnsubscribed(t *testing.T) {
	t.Run("company and holding together are rejected", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.ListUnsubscribed(context.Background(), &models.ListUnsubscribedRequest{
			UserID:    10,
			CompanyID: ptr.Ptr(int64(100)),
			HoldingID: ptr.Ptr(int64(500)),
		})

		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("no parameters at all are rejected", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.ListUnsubscribed(context.Background(), &models.ListUnsubscribedRequest{UserID: 10})

		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("trainer role is forbidden", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.ListUnsubscribed(context.Background(), &models.ListUnsubscribedRequest{
			UserID:   20,
			CourseID: ptr.Ptr(int64(42)),
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("client must target own company", func(t *testing.T) {
		_, svc := testSetup(testCourse())

		_, err := svc.ListUnsubscribed(context.Background(), &models.ListUnsubscribedRequest{
			UserID:    30,
			CompanyID: ptr.Ptr(int64(200)),
		})

		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("vendor finds off-roster attendances by course", func(t *testing.T) {
		attRepo, svc := testSetup(testCourse())
		// Стажер 7 не числится в ростере {1, 2}
		attRepo.existing = []*domain.Attendance{
			{ID: 1, TraineeID: 1, CourseSlotID: 5},
			{ID: 2, TraineeID: 7, CourseSlotID: 5},
		}

		resp, err := svc.ListUnsubscribed(context.Background(), &models.ListUnsubscribedRequest{
			UserID:   10,
			CourseID: ptr.Ptr(int64(42)),
		})

		require.NoError(t, err)
		require.Len(t, resp.Attendances, 1)
		assert.Equal(t, int64(7), resp.Attendances[0].TraineeID)
		assert.Equal(t, int64(42), resp.Attendances[0].CourseID)
	})
}
