package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the qflow collectors.
type Metrics struct {
	Requests     *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	UploadEvents *prometheus.CounterVec
	Served       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qflow_api_requests_total",
				Help: "Total number of survey API requests",
			},
			[]string{"method", "route", "code"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qflow_api_request_duration_seconds",
				Help:    "Duration of survey API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		UploadEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qflow_upload_events_total",
				Help: "Total number of upload lifecycle events",
			},
			[]string{"event"},
		),
		Served: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qflow_mock_requests_total",
				Help: "Total number of requests served by the mock server",
			},
			[]string{"method", "route", "code"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration, m.UploadEvents, m.Served)
	}
	return m
}

// ObserveRequest records one client request. A zero code means the request
// never got a response.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.Requests.WithLabelValues(method, route, label).Inc()
	m.Duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Hooks counts upload lifecycle events.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	count := func(t domain.EventType) {
		m.UploadEvents.WithLabelValues(string(t)).Inc()
	}
	return domain.LifecycleHooks{
		OnSurveyCreated:   func(_ context.Context, e *domain.SurveyEvent) { count(e.Type) },
		OnOptionsUpdated:  func(_ context.Context, e *domain.SurveyEvent) { count(e.Type) },
		OnBlockCreated:    func(_ context.Context, e *domain.BlockEvent) { count(e.Type) },
		OnQuestionCreated: func(_ context.Context, e *domain.QuestionEvent) { count(e.Type) },
		OnFlowUpdated:     func(_ context.Context, e *domain.FlowEvent) { count(e.Type) },
	}
}

// Middleware counts requests served by a chi router, labelled with the
// matched route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.Served.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
	})
}
