package attendance

import "errors"

var (
	// ErrAttendanceNotFound возвращается, когда запись посещаемости не найдена
	ErrAttendanceNotFound = errors.New("attendance.repository: attendance not found")

	// ErrDuplicateAttendance возвращается при попытке повторно отметить
	// посещение той же пары (стажер, слот)
	ErrDuplicateAttendance = errors.New("attendance.repository: attendance already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("attendance.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("attendance.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("attendance.repository: failed to scan row")
)
