package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты попытки бронирования
const (
	BookingResultBooked        = "booked"
	BookingResultAlreadyBooked = "already_booked"
	BookingResultRejected      = "rejected"
	BookingResultFailed        = "failed"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы записи безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingAttempts   *prometheus.CounterVec
	ConflictsDetected *prometheus.CounterVec
	SlotsGenerated    *prometheus.CounterVec
	SlotsExpired      *prometheus.CounterVec
	BusyCacheRequests *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(service string) *Metrics {
	return NewWithRegisterer(service, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(service string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: service,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		BookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_booking_attempts_total",
			Help: "Slot booking attempts by result",
		}, []string{"service", "result"}),
		ConflictsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_conflicts_detected_total",
			Help: "Conflicting busy entries found by conflict checks",
		}, []string{"service", "operation"}),
		SlotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_slots_generated_total",
			Help: "Interview slots generated",
		}, []string{"service"}),
		SlotsExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_slots_expired_total",
			Help: "Available slots moved to EXPIRED",
		}, []string{"service"}),
		BusyCacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_busy_cache_requests_total",
			Help: "Busy-set cache lookups by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingAttempts,
		m.ConflictsDetected,
		m.SlotsGenerated,
		m.SlotsExpired,
		m.BusyCacheRequests,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

// RecordBookingAttempt учитывает попытку бронирования слота
func (m *Metrics) RecordBookingAttempt(result string) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(m.service, result).Inc()
}

// AddConflicts учитывает найденные конфликты
func (m *Metrics) AddConflicts(operation string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ConflictsDetected.WithLabelValues(m.service, operation).Add(float64(n))
}

// AddSlotsGenerated учитывает сгенерированные слоты
func (m *Metrics) AddSlotsGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.service).Add(float64(n))
}

// AddSlotsExpired учитывает просроченные слоты
func (m *Metrics) AddSlotsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsExpired.WithLabelValues(m.service).Add(float64(n))
}

// RecordCacheLookup учитывает попадание или промах кэша занятости
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.BusyCacheRequests.WithLabelValues(m.service, result).Inc()
}

// ObservePoolStats обновляет статистику пула соединений
func (m *Metrics) ObservePoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.service).Set(float64(open))
	m.DBInUse.WithLabelValues(m.service).Set(float64(inUse))
	m.DBIdle.WithLabelValues(m.service).Set(float64(idle))
	m.DBWaitCount.WithLabelValues(m.service).Set(float64(waitCount))
}
