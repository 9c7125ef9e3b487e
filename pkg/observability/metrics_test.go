package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("GET", "surveys", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "surveys", 200, 20*time.Millisecond)
	m.ObserveRequest("POST", "survey-definitions", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "surveys", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("POST", "survey-definitions", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(nil)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnSurveyCreated(ctx, &domain.SurveyEvent{EventBase: domain.EventBase{Type: domain.EventSurveyCreated}})
	hooks.OnQuestionCreated(ctx, &domain.QuestionEvent{EventBase: domain.EventBase{Type: domain.EventQuestionCreated}})
	hooks.OnQuestionCreated(ctx, &domain.QuestionEvent{EventBase: domain.EventBase{Type: domain.EventQuestionCreated}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadEvents.WithLabelValues("survey_created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.UploadEvents.WithLabelValues("question_created")))
}

func TestMetrics_Middleware(t *testing.T) {
	m := observability.NewMetrics(nil)
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/items/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Served.WithLabelValues("GET", "/items/{id}", "418")))
}
