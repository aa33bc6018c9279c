package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTransactionsTotal *prometheus.CounterVec

	BookingsCreated    *prometheus.CounterVec
	BookingTransitions *prometheus.CounterVec
	SlotConflicts      *prometheus.CounterVec
	AutoConfirmResults *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		DBTransactionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Total number of finished transactions",
		}, []string{"service", "result"}),

		BookingsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_bookings_created_total",
			Help: "Bookings created, by initial status",
		}, []string{"service", "status"}),
		BookingTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_booking_transitions_total",
			Help: "Booking status transitions, by target status",
		}, []string{"service", "status"}),
		SlotConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_slot_conflicts_total",
			Help: "Create attempts rejected because the slot was taken",
		}, []string{"service"}),
		AutoConfirmResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_auto_confirm_total",
			Help: "Auto-confirm sweep results per booking",
		}, []string{"service", "result"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path).Observe(d.Seconds())
}

// ObserveQuery записывает длительность запроса к БД
func (m *Metrics) ObserveQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(d.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

// ObserveTransaction считает завершённые транзакции (commit/rollback)
func (m *Metrics) ObserveTransaction(result string) {
	if m == nil {
		return
	}
	m.DBTransactionsTotal.WithLabelValues(m.service, result).Inc()
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.service).Set(float64(open))
	m.DBInUseConnections.WithLabelValues(m.service).Set(float64(inUse))
	m.DBIdleConnections.WithLabelValues(m.service).Set(float64(idle))
	m.DBWaitCount.WithLabelValues(m.service).Set(float64(waitCount))
}

// BookingCreated считает созданное бронирование
func (m *Metrics) BookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.service, status).Inc()
}

// BookingTransition считает переход бронирования в новый статус
func (m *Metrics) BookingTransition(status string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(m.service, status).Inc()
}

// SlotConflict считает отказ из-за занятого слота
func (m *Metrics) SlotConflict() {
	if m == nil {
		return
	}
	m.SlotConflicts.WithLabelValues(m.service).Inc()
}

// AutoConfirmed считает результат прохода автоподтверждения
func (m *Metrics) AutoConfirmed(confirmed, failed int) {
	if m == nil {
		return
	}
	m.AutoConfirmResults.WithLabelValues(m.service, "confirmed").Add(float64(confirmed))
	m.AutoConfirmResults.WithLabelValues(m.service, "failed").Add(float64(failed))
}
