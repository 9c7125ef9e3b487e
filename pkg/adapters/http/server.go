package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/qflow/pkg/adapters/memory"
	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the survey-definitions wire format on top of a memory
// platform. It is a stand-in for the real API in tests and local runs.
type Server struct {
	Platform *memory.Platform
	Token    string
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithToken rejects requests whose x-api-token header differs from token.
func WithToken(token string) Option {
	return func(s *Server) {
		s.Token = token
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics counts served requests and exposes g on /metrics.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = g
	}
}

// NewHandler creates the HTTP handler for a platform. The API is mounted
// under /API/v3, like the real service.
func NewHandler(p *memory.Platform, opts ...Option) http.Handler {
	s := &Server{
		Platform: p,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/health", s.GetHealth)

	r.Route("/API/v3", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/surveys", s.ListSurveys)
		r.Post("/survey-definitions", s.CreateSurvey)
		r.Route("/survey-definitions/{surveyID}", func(r chi.Router) {
			r.Get("/", s.GetSurvey)
			r.Delete("/", s.DeleteSurvey)

			r.Get("/options", s.GetOptions)
			r.Put("/options", s.UpdateOptions)

			r.Get("/questions", s.ListQuestions)
			r.Post("/questions", s.CreateQuestion)
			r.Get("/questions/{questionID}", s.GetQuestion)
			r.Put("/questions/{questionID}", s.UpdateQuestion)
			r.Delete("/questions/{questionID}", s.DeleteQuestion)

			r.Post("/blocks", s.CreateBlock)
			r.Get("/blocks/{blockID}", s.GetBlock)
			r.Put("/blocks/{blockID}", s.UpdateBlock)
			r.Delete("/blocks/{blockID}", s.DeleteBlock)

			r.Get("/flow", s.GetFlow)
			r.Put("/flow", s.UpdateFlow)
			r.Put("/flow/{flowID}", s.UpdateFlowElement)
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-TOKEN")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("x-api-token") != s.Token {
			s.fail(w, r, http.StatusUnauthorized, errors.New("invalid API token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

type meta struct {
	HTTPStatus string     `json:"httpStatus"`
	Error      *errorBody `json:"error,omitempty"`
}

type envelope struct {
	Result any  `json:"result,omitempty"`
	Meta   meta `json:"meta"`
}

func status(code int) string {
	return fmt.Sprintf("%d - %s", code, http.StatusText(code))
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request, result any) {
	w.Header().Set("Content-Type", "application/json")
	env := envelope{Result: result, Meta: meta{HTTPStatus: status(http.StatusOK)}}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.Logger.Error("response encode failed", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	s.Logger.Warn("request failed", "method", r.Method, "path", r.URL.Path, "status", code, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	env := envelope{Meta: meta{
		HTTPStatus: status(code),
		Error:      &errorBody{ErrorMessage: err.Error(), ErrorCode: fmt.Sprintf("QF_%d", code)},
	}}
	_ = json.NewEncoder(w).Encode(env)
}

// failErr maps platform errors to status codes.
func (s *Server) failErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSurveyNotFound),
		errors.Is(err, domain.ErrBlockNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		s.fail(w, r, http.StatusNotFound, err)
	default:
		s.fail(w, r, http.StatusBadRequest, err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, false
	}
	return body, true
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListSurveys handles GET /surveys. Everything fits on one page.
func (s *Server) ListSurveys(w http.ResponseWriter, r *http.Request) {
	list, err := s.Platform.ListSurveys(r.Context())
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, map[string]any{"elements": list, "nextPage": nil})
}

// CreateSurvey handles POST /survey-definitions.
func (s *Server) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	name, _ := body["SurveyName"].(string)
	if name == "" {
		s.fail(w, r, http.StatusBadRequest, errors.New("SurveyName is required"))
		return
	}
	id, err := s.Platform.CreateSurvey(r.Context(), name)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	def, err := s.Platform.DefaultBlockID(r.Context(), id)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, map[string]any{"SurveyID": id, "DefaultBlockID": def})
}

// GetSurvey handles GET /survey-definitions/{surveyID}.
func (s *Server) GetSurvey(w http.ResponseWriter, r *http.Request) {
	def, err := s.Platform.GetSurvey(r.Context(), chi.URLParam(r, "surveyID"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, def)
}

// DeleteSurvey handles DELETE /survey-definitions/{surveyID}.
func (s *Server) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	if err := s.Platform.DeleteSurvey(r.Context(), chi.URLParam(r, "surveyID")); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// GetOptions handles GET /survey-definitions/{surveyID}/options.
func (s *Server) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.Platform.GetSurveyOptions(r.Context(), chi.URLParam(r, "surveyID"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, opts)
}

// UpdateOptions handles PUT /survey-definitions/{surveyID}/options.
func (s *Server) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := s.Platform.UpdateSurveyOptions(r.Context(), chi.URLParam(r, "surveyID"), body); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// ListQuestions handles GET /survey-definitions/{surveyID}/questions.
func (s *Server) ListQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := s.Platform.ListQuestions(r.Context(), chi.URLParam(r, "surveyID"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, map[string]any{"elements": qs})
}

// CreateQuestion handles POST /survey-definitions/{surveyID}/questions.
// The optional blockId query selects the block.
func (s *Server) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	qid, err := s.Platform.CreateQuestion(r.Context(), chi.URLParam(r, "surveyID"), r.URL.Query().Get("blockId"), body)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, map[string]any{"QuestionID": qid})
}

// GetQuestion handles GET /survey-definitions/{surveyID}/questions/{questionID}.
func (s *Server) GetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.Platform.GetQuestion(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "questionID"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, q)
}

// UpdateQuestion handles PUT /survey-definitions/{surveyID}/questions/{questionID}.
func (s *Server) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := s.Platform.UpdateQuestion(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "questionID"), body); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// DeleteQuestion handles DELETE /survey-definitions/{surveyID}/questions/{questionID}.
func (s *Server) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.Platform.DeleteQuestion(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "questionID")); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// CreateBlock handles POST /survey-definitions/{surveyID}/blocks.
func (s *Server) CreateBlock(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	desc, _ := body["Description"].(string)
	id, err := s.Platform.CreateBlock(r.Context(), chi.URLParam(r, "surveyID"), desc)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, map[string]any{"BlockID": id, "FlowID": ""})
}

// GetBlock handles GET /survey-definitions/{surveyID}/blocks/{blockID}.
func (s *Server) GetBlock(w http.ResponseWriter, r *http.Request) {
	b, err := s.Platform.GetBlock(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "blockID"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, b)
}

// UpdateBlock handles PUT /survey-definitions/{surveyID}/blocks/{blockID}.
func (s *Server) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := s.Platform.UpdateBlock(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "blockID"), body); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// DeleteBlock handles DELETE /survey-definitions/{surveyID}/blocks/{blockID}.
func (s *Server) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	if err := s.Platform.DeleteBlock(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "blockID")); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// GetFlow handles GET /survey-definitions/{surveyID}/flow.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request) {
	f, err := s.Platform.GetFlow(r.Context(), chi.URLParam(r, "surveyID"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, f)
}

// UpdateFlow handles PUT /survey-definitions/{surveyID}/flow.
func (s *Server) UpdateFlow(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := s.Platform.UpdateFlow(r.Context(), chi.URLParam(r, "surveyID"), body); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}

// UpdateFlowElement handles PUT /survey-definitions/{surveyID}/flow/{flowID}.
func (s *Server) UpdateFlowElement(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := s.Platform.UpdateFlowElement(r.Context(), chi.URLParam(r, "surveyID"), chi.URLParam(r, "flowID"), body); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.reply(w, r, nil)
}
