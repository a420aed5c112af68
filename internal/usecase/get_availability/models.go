package get_availability

import "time"

// Request запрос свободного времени
type Request struct {
	TenantID     string
	UserIDs      []string
	Start        time.Time
	End          time.Time
	DurationMins *int   // минимальная длина свободного окна (опционально)
	Timezone     string // зона ответа, по умолчанию из конфигурации
}

// Window интервал в зоне ответа
type Window struct {
	Start time.Time
	End   time.Time
}

// UserFree свободное время одного пользователя
type UserFree struct {
	UserID              string
	Free                []Window
	UnknownAvailability bool
}

// Warning предупреждение о неполных данных
type Warning struct {
	UserID  string
	Code    string
	Message string
}

// Response свободное время панели
type Response struct {
	Start    time.Time
	End      time.Time
	Timezone string
	Users    []UserFree
	Combined []Window
	Warnings []Warning
}
