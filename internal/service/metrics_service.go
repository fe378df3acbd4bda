package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sincet/noticeboard-api/internal/realtime"
)

// MetricsService encapsulates Prometheus instrumentation for the board.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	contentMutation *prometheus.CounterVec
	exportTotal     *prometheus.CounterVec
	displayClients  prometheus.GaugeFunc
}

// NewMetricsService registers the collectors. clientCount reports currently
// connected display sockets.
func NewMetricsService(clientCount func() int) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	contentMutation := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_content_mutations_total",
		Help: "Content create/delete operations by type",
	}, []string{"type", "action"})

	exportTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_exports_total",
		Help: "Generated attendance register exports by format",
	}, []string{"format"})

	if clientCount == nil {
		clientCount = func() int { return 0 }
	}
	displayClients := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "display_clients_connected",
		Help: "Currently connected display websocket clients",
	}, func() float64 {
		return float64(clientCount())
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, contentMutation, exportTotal, displayClients, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		contentMutation: contentMutation,
		exportTotal:     exportTotal,
		displayClients:  displayClients,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// CountContentMutation counts a content create/delete.
func (m *MetricsService) CountContentMutation(contentType, action string) {
	if m == nil {
		return
	}
	m.contentMutation.WithLabelValues(contentType, action).Inc()
}

// CountExport counts a generated register export.
func (m *MetricsService) CountExport(format string) {
	if m == nil {
		return
	}
	m.exportTotal.WithLabelValues(format).Inc()
}

// InstrumentedPublisher counts content mutations as they are broadcast.
type InstrumentedPublisher struct {
	Next    realtime.Publisher
	Metrics *MetricsService
}

// Publish implements realtime.Publisher.
func (p InstrumentedPublisher) Publish(evt realtime.Event) {
	if evt.Name == realtime.EventContentUpdate {
		contentType, _ := evt.Payload["type"].(string)
		action, _ := evt.Payload["action"].(string)
		p.Metrics.CountContentMutation(contentType, action)
	}
	p.Next.Publish(evt)
}
