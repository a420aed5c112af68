package get_team_availability

import "time"

// Request запрос общего свободного времени команды
type Request struct {
	TenantID         string
	UserIDs          []string
	Start            time.Time
	End              time.Time
	SlotDurationMins *int // без значения окна не нарезаются
	Timezone         string
}

// Window интервал в зоне ответа
type Window struct {
	Start time.Time
	End   time.Time
}

// Member свободное время участника команды
type Member struct {
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

// Response общее свободное время команды
type Response struct {
	Start            time.Time
	End              time.Time
	Timezone         string
	SlotDurationMins *int
	Members          []Member
	Combined         []Window
	Slots            []Window // общее время, нарезанное на окна SlotDurationMins
	Warnings         []Warning
}
