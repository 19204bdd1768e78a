package course

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	"github.com/m04kA/SMC-CourseService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourseService/pkg/psqlbuilder"
)

// Repository read-only репозиторий курсов
// Курсы создаются и изменяются другим сервисом; здесь читается только
// проекция, нужная планированию и авторизации (тренер, компании,
// список стажеров, признак архивации)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория курсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает проекцию курса по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"trainer_id",
		"companies",
		"trainees",
		"archived_at",
	).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		c          domain.Course
		trainerID  sql.NullInt64
		companies  pq.Int64Array
		trainees   pq.Int64Array
		archivedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&trainerID,
		&companies,
		&trainees,
		&archivedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan course: %v", ErrScanRow, err)
	}

	if trainerID.Valid {
		c.TrainerID = &trainerID.Int64
	}
	c.CompanyIDs = []int64(companies)
	c.TraineeIDs = []int64(trainees)
	if archivedAt.Valid {
		c.ArchivedAt = &archivedAt.Time
	}

	return &c, nil
}

// GetByCompanies получает курсы, в которых участвует хотя бы одна
// из указанных компаний
// Используется для company/holding-скоупированных выборок
func (r *Repository) GetByCompanies(ctx context.Context, companyIDs []int64) ([]*domain.Course, error) {
	if len(companyIDs) == 0 {
		return []*domain.Course{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"trainer_id",
		"companies",
		"trainees",
		"archived_at",
	).
		From("courses").
		Where(squirrel.Expr("companies && ?", pq.Int64Array(companyIDs))).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanies - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanies - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		var (
			c          domain.Course
			trainerID  sql.NullInt64
			companies  pq.Int64Array
			trainees   pq.Int64Array
			archivedAt sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.Name, &trainerID, &companies, &trainees, &archivedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByCompanies - scan course: %v", ErrScanRow, err)
		}
		if trainerID.Valid {
			c.TrainerID = &trainerID.Int64
		}
		c.CompanyIDs = []int64(companies)
		c.TraineeIDs = []int64(trainees)
		if archivedAt.Valid {
			c.ArchivedAt = &archivedAt.Time
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCompanies - iterate rows: %v", ErrScanRow, err)
	}

	return courses, nil
}
