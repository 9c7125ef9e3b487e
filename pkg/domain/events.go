package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSurveyCreated   EventType = "survey_created"
	EventOptionsUpdated  EventType = "options_updated"
	EventBlockCreated    EventType = "block_created"
	EventQuestionCreated EventType = "question_created"
	EventFlowUpdated     EventType = "flow_updated"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SurveyID  string    `json:"survey_id"`
}

// SurveyEvent represents the creation or configuration of a survey.
type SurveyEvent struct {
	EventBase
	Name string `json:"name"`
}

// BlockEvent represents a block created on the platform.
type BlockEvent struct {
	EventBase
	BlockID     string `json:"block_id"`
	Description string `json:"description"`
	Questions   int    `json:"questions"`
}

// QuestionEvent represents a question (or page break) added to a block.
type QuestionEvent struct {
	EventBase
	BlockID    string `json:"block_id"`
	QuestionID string `json:"question_id,omitempty"`
	Kind       string `json:"kind"`
}

// FlowEvent represents the survey flow being replaced.
type FlowEvent struct {
	EventBase
	Count int `json:"count"`
}

// LifecycleHooks defines callbacks for uploader observability.
type LifecycleHooks struct {
	OnSurveyCreated   func(context.Context, *SurveyEvent)
	OnOptionsUpdated  func(context.Context, *SurveyEvent)
	OnBlockCreated    func(context.Context, *BlockEvent)
	OnQuestionCreated func(context.Context, *QuestionEvent)
	OnFlowUpdated     func(context.Context, *FlowEvent)
}

// Merge returns hooks that call h first and then other, for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSurveyCreated:   chain(h.OnSurveyCreated, other.OnSurveyCreated),
		OnOptionsUpdated:  chain(h.OnOptionsUpdated, other.OnOptionsUpdated),
		OnBlockCreated:    chain(h.OnBlockCreated, other.OnBlockCreated),
		OnQuestionCreated: chain(h.OnQuestionCreated, other.OnQuestionCreated),
		OnFlowUpdated:     chain(h.OnFlowUpdated, other.OnFlowUpdated),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
