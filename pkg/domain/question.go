package domain

// QuestionKind distinguishes regular questions from page breaks,
// which the platform creates through a different call.
type QuestionKind string

const (
	QuestionKindData      QuestionKind = "question"
	QuestionKindPageBreak QuestionKind = "page_break"
)

// Question is a question data dictionary ready to be posted to the platform.
type Question struct {
	Kind QuestionKind
	Data map[string]any
}

// NewQuestion wraps raw question data.
func NewQuestion(data map[string]any) Question {
	return Question{Kind: QuestionKindData, Data: data}
}

// PageBreak returns a page break marker. It carries no data.
func PageBreak() Question {
	return Question{Kind: QuestionKindPageBreak}
}

// IsPageBreak reports whether q is a page break.
func (q Question) IsPageBreak() bool {
	return q.Kind == QuestionKindPageBreak
}

// ExportTag returns the DataExportTag of the question, if any.
func (q Question) ExportTag() string {
	if q.Data == nil {
		return ""
	}
	tag, _ := q.Data["DataExportTag"].(string)
	return tag
}

// Type returns the QuestionType field of the question data.
func (q Question) Type() string {
	if q.IsPageBreak() {
		return "PageBreak"
	}
	if q.Data == nil {
		return ""
	}
	t, _ := q.Data["QuestionType"].(string)
	return t
}
