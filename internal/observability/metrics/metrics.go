package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics counts booking and status-change outcomes.
type BookingMetrics struct {
	bookingsTotal    *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	slotCacheTotal   *prometheus.CounterVec
	slotsServed      prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ora_fixa",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Booking attempts by kind (online, walk_in) and outcome",
		}, []string{"kind", "outcome"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ora_fixa",
			Subsystem: "appointments",
			Name:      "transitions_total",
			Help:      "Status transitions by action and outcome",
		}, []string{"action", "outcome"}),
		slotCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ora_fixa",
			Subsystem: "availability",
			Name:      "slot_cache_total",
			Help:      "Slot cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		slotsServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ora_fixa",
			Subsystem: "availability",
			Name:      "slots_returned",
			Help:      "Number of free slots returned per availability request",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.transitionsTotal, m.slotCacheTotal, m.slotsServed)
	return m
}

func (m *BookingMetrics) ObserveBooking(kind, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *BookingMetrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *BookingMetrics) ObserveSlotCache(result string) {
	if m == nil {
		return
	}
	m.slotCacheTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveSlotsServed(n int) {
	if m == nil {
		return
	}
	m.slotsServed.Observe(float64(n))
}

// HTTPMetrics records request latency per route template.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ora_fixa",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestDuration)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
