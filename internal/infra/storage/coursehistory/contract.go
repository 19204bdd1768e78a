package coursehistory

import (
	"github.com/m04kA/SMC-CourseService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
