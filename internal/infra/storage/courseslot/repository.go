package courseslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourseService/internal/domain"
	"github.com/m04kA/SMC-CourseService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourseService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"course_id",
	"step_id",
	"step_type",
	"start_date",
	"end_date",
	"address_full",
	"address_street",
	"address_city",
	"address_zip",
	"meeting_link",
	"trainees",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами курсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает несколько слотов одним запросом
// Используется для пакетного создания незапланированных слотов (quantity > 1)
// Если в контексте передана активная транзакция, использует её
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.CourseSlot) ([]*domain.CourseSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("course_slots").
		Columns(
			"course_id",
			"step_id",
			"step_type",
			"start_date",
			"end_date",
			"address_full",
			"address_street",
			"address_city",
			"address_zip",
			"meeting_link",
			"trainees",
		)

	for _, slot := range slots {
		full, street, city, zip := addressColumns(slot.Address)
		insertBuilder = insertBuilder.Values(
			slot.CourseID,
			slot.StepID,
			slot.StepType,
			slot.StartDate,
			slot.EndDate,
			full,
			street,
			city,
			zip,
			slot.MeetingLink,
			traineesColumn(slot.Trainees),
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&slots[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returned row: %v", ErrScanRow, err)
		}
		slots[i].CreatedAt = createdAt.Time
		slots[i].UpdatedAt = updatedAt.Time
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - iterate rows: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CourseSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("course_slots").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - слот будет изменяться
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByCourse получает все слоты курса, отсортированные по дате начала
// Незапланированные слоты (без дат) идут в конце списка
func (r *Repository) GetByCourse(ctx context.Context, courseID int64) ([]*domain.CourseSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("course_slots").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("start_date ASC NULLS LAST, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.CourseSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCourse - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - iterate rows: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByIDs получает слоты по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.CourseSlot, error) {
	if len(ids) == 0 {
		return []*domain.CourseSlot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("course_slots").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.CourseSlot, 0, len(ids))
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - iterate rows: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CountInInterval подсчитывает слоты курса, интервалы которых пересекаются
// с [start, end) по полуоткрытому правилу: пересечение есть, только если
// existing.start_date < end И existing.end_date > start (строгие неравенства,
// граничащие интервалы пересечением не считаются)
// excludeID исключает сам обновляемый слот из подсчёта
func (r *Repository) CountInInterval(ctx context.Context, courseID int64, start, end time.Time, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("course_slots").
		Where(squirrel.Eq{"course_id": courseID}).
		Where(squirrel.Lt{"start_date": end}).
		Where(squirrel.Gt{"end_date": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountInInterval - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountInInterval - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// FindUnplanned находит слот того же курса и шага без дат - кандидата
// на повторное использование при whole-day планировании
// excludeID исключает редактируемый слот из поиска
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы два
// конкурентных whole-day обновления не переиспользовали один слот
func (r *Repository) FindUnplanned(ctx context.Context, courseID, stepID, excludeID int64) (*domain.CourseSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("course_slots").
		Where(squirrel.Eq{"course_id": courseID}).
		Where(squirrel.Eq{"step_id": stepID}).
		Where(squirrel.Eq{"start_date": nil}).
		Where(squirrel.Eq{"end_date": nil}).
		Where(squirrel.NotEq{"id": excludeID}).
		OrderBy("id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindUnplanned - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindUnplanned - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Update применяет частичное обновление слота
// Unset-флаги патча выставляют соответствующие колонки в NULL
func (r *Repository) Update(ctx context.Context, id int64, patch domain.SlotPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("course_slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.UnsetDates {
		updateBuilder = updateBuilder.Set("start_date", nil).Set("end_date", nil)
	} else {
		if patch.SetStartDate != nil {
			updateBuilder = updateBuilder.Set("start_date", *patch.SetStartDate)
		}
		if patch.SetEndDate != nil {
			updateBuilder = updateBuilder.Set("end_date", *patch.SetEndDate)
		}
	}

	if patch.UnsetAddress {
		updateBuilder = updateBuilder.
			Set("address_full", nil).
			Set("address_street", nil).
			Set("address_city", nil).
			Set("address_zip", nil)
	} else if patch.SetAddress != nil {
		updateBuilder = updateBuilder.
			Set("address_full", patch.SetAddress.FullAddress).
			Set("address_street", patch.SetAddress.Street).
			Set("address_city", patch.SetAddress.City).
			Set("address_zip", patch.SetAddress.ZipCode)
	}

	if patch.UnsetMeetingLink {
		updateBuilder = updateBuilder.Set("meeting_link", nil)
	} else if patch.SetMeetingLink != nil {
		updateBuilder = updateBuilder.Set("meeting_link", *patch.SetMeetingLink)
	}

	if patch.UnsetTrainees {
		updateBuilder = updateBuilder.Set("trainees", nil)
	} else if patch.SetTrainees != nil {
		updateBuilder = updateBuilder.Set("trainees", pq.Int64Array(patch.SetTrainees))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("course_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.CourseSlot, error) {
	var (
		slot               domain.CourseSlot
		startDate, endDate sql.NullTime
		full, street       sql.NullString
		city, zip          sql.NullString
		meetingLink        sql.NullString
		trainees           pq.Int64Array
		createdAt          sql.NullTime
		updatedAt          sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.CourseID,
		&slot.StepID,
		&slot.StepType,
		&startDate,
		&endDate,
		&full,
		&street,
		&city,
		&zip,
		&meetingLink,
		&trainees,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		slot.StartDate = &startDate.Time
	}
	if endDate.Valid {
		slot.EndDate = &endDate.Time
	}
	if full.Valid {
		slot.Address = &domain.Address{
			FullAddress: full.String,
			Street:      street.String,
			City:        city.String,
			ZipCode:     zip.String,
		}
	}
	if meetingLink.Valid {
		slot.MeetingLink = &meetingLink.String
	}
	if len(trainees) > 0 {
		slot.Trainees = []int64(trainees)
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func addressColumns(addr *domain.Address) (full, street, city, zip *string) {
	if addr == nil {
		return nil, nil, nil, nil
	}
	return &addr.FullAddress, &addr.Street, &addr.City, &addr.ZipCode
}

func traineesColumn(trainees []int64) interface{} {
	if len(trainees) == 0 {
		return nil
	}
	return pq.Int64Array(trainees)
}
