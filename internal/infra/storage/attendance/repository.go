package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	"github.com/m04kA/SMC-CourseService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourseService/pkg/psqlbuilder"
)

// uniqueViolationCode код ошибки PostgreSQL при нарушении UNIQUE-ограничения
const uniqueViolationCode = "23505"

// Repository репозиторий для работы с записями посещаемости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория посещаемости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись посещаемости
// Уникальность пары (trainee_id, course_slot_id) обеспечивается
// ограничением БД; при нарушении возвращает ErrDuplicateAttendance
func (r *Repository) Create(ctx context.Context, att *domain.Attendance) (*domain.Attendance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("attendances").
		Columns("trainee_id", "course_slot_id").
		Values(att.TraineeID, att.CourseSlotID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&att.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAttendance
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	att.CreatedAt = createdAt.Time
	att.UpdatedAt = updatedAt.Time

	return att, nil
}

// CountMatching подсчитывает записи посещаемости по фильтру
// Используется гардами для проверки существования записи
func (r *Repository) CountMatching(ctx context.Context, filter domain.AttendanceFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("attendances"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountMatching - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountMatching - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetMatching возвращает записи посещаемости по фильтру
func (r *Repository) GetMatching(ctx context.Context, filter domain.AttendanceFilter) ([]*domain.Attendance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select("id", "trainee_id", "course_slot_id", "created_at", "updated_at").
			From("attendances"),
		filter,
	).OrderBy("course_slot_id ASC, trainee_id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatching - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatching - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	attendances := make([]*domain.Attendance, 0)
	for rows.Next() {
		var (
			att                  domain.Attendance
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&att.ID, &att.TraineeID, &att.CourseSlotID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetMatching - scan attendance: %v", ErrScanRow, err)
		}
		att.CreatedAt = createdAt.Time
		att.UpdatedAt = updatedAt.Time
		attendances = append(attendances, &att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMatching - iterate rows: %v", ErrScanRow, err)
	}

	return attendances, nil
}

// DeleteMatching удаляет записи посещаемости по фильтру
// Возвращает количество удаленных записей
func (r *Repository) DeleteMatching(ctx context.Context, filter domain.AttendanceFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("attendances")
	if filter.TraineeID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"trainee_id": *filter.TraineeID})
	}
	if len(filter.SlotIDs) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"course_slot_id": filter.SlotIDs})
	} else if filter.CourseSlotID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"course_slot_id": *filter.CourseSlotID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMatching - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMatching - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMatching - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.AttendanceFilter) squirrel.SelectBuilder {
	if filter.TraineeID != nil {
		builder = builder.Where(squirrel.Eq{"trainee_id": *filter.TraineeID})
	}
	if len(filter.SlotIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"course_slot_id": filter.SlotIDs})
	} else if filter.CourseSlotID != nil {
		builder = builder.Where(squirrel.Eq{"course_slot_id": *filter.CourseSlotID})
	}
	return builder
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
