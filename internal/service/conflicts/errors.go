package conflicts

import "errors"

var (
	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("conflicts: interval end must be after start")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("conflicts: internal error")
)
