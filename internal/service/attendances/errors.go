package attendances

import "errors"

var (
	// ErrInvalidQuery возвращается при недопустимой комбинации параметров запроса
	ErrInvalidQuery = errors.New("attendances: invalid query parameter combination")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("attendances: access denied")

	// ErrSlotNotFound возвращается, когда слот не найден
	// Также используется для сокрытия слотов вне видимости пользователя
	ErrSlotNotFound = errors.New("attendances: course slot not found")

	// ErrCourseNotFound возвращается, когда курс не найден или находится
	// вне видимости пользователя (сокрытие существования)
	ErrCourseNotFound = errors.New("attendances: course not found")

	// ErrTraineeNotFound возвращается, когда стажер не найден
	ErrTraineeNotFound = errors.New("attendances: trainee not found")

	// ErrAttendanceNotFound возвращается, когда запись посещаемости не найдена
	ErrAttendanceNotFound = errors.New("attendances: attendance not found")

	// ErrDuplicateAttendance возвращается при повторной отметке посещения
	// той же пары (стажер, слот)
	ErrDuplicateAttendance = errors.New("attendances: attendance already exists")

	// ErrCourseArchived возвращается при попытке изменить посещаемость
	// архивного курса
	ErrCourseArchived = errors.New("attendances: course is archived")

	// ErrCourseWithoutCompany возвращается, когда у курса нет ни одной
	// организации - посещаемость некому выставлять счёт
	ErrCourseWithoutCompany = errors.New("attendances: course has no company assigned")

	// ErrTraineeNotInCourse возвращается, когда стажер не числится на курсе
	// и не принадлежит ни одной из организаций курса
	ErrTraineeNotInCourse = errors.New("attendances: trainee is not linked to the course")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("attendances: internal error")
)
