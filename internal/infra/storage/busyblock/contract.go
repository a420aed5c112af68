package busyblock

import "github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
