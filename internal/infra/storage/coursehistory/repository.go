package coursehistory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	"github.com/m04kA/SMC-CourseService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourseService/pkg/psqlbuilder"
)

// Repository append-only хранилище истории изменений расписания курса
// Записи никогда не обновляются и не удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в историю курса
// Если в контексте передана активная транзакция, использует её -
// запись истории коммитится вместе с изменением расписания
func (r *Repository) Create(ctx context.Context, entry *domain.CourseHistory) (*domain.CourseHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var update interface{}
	if len(entry.Update) > 0 {
		update = []byte(entry.Update)
	}

	query, args, err := psqlbuilder.Insert("course_histories").
		Columns(
			"course_id",
			"action",
			"slot_start_date",
			"slot_end_date",
			"slot_address",
			"slot_meeting_link",
			"update_diff",
			"created_by",
		).
		Values(
			entry.CourseID,
			entry.Action,
			entry.SlotStartDate,
			entry.SlotEndDate,
			entry.SlotAddress,
			entry.SlotMeetingLink,
			update,
			entry.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByCourse возвращает историю курса, новые записи первыми
func (r *Repository) GetByCourse(ctx context.Context, courseID int64) ([]*domain.CourseHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"course_id",
		"action",
		"slot_start_date",
		"slot_end_date",
		"slot_address",
		"slot_meeting_link",
		"update_diff",
		"created_by",
		"created_at",
	).
		From("course_histories").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.CourseHistory, 0)
	for rows.Next() {
		var (
			entry              domain.CourseHistory
			startDate, endDate sql.NullTime
			address, link      sql.NullString
			update             []byte
			createdAt          sql.NullTime
		)

		err := rows.Scan(
			&entry.ID,
			&entry.CourseID,
			&entry.Action,
			&startDate,
			&endDate,
			&address,
			&link,
			&update,
			&entry.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCourse - scan entry: %v", ErrScanRow, err)
		}

		if startDate.Valid {
			entry.SlotStartDate = &startDate.Time
		}
		if endDate.Valid {
			entry.SlotEndDate = &endDate.Time
		}
		if address.Valid {
			entry.SlotAddress = &address.String
		}
		if link.Valid {
			entry.SlotMeetingLink = &link.String
		}
		entry.Update = update
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - iterate rows: %v", ErrScanRow, err)
	}

	return entries, nil
}
