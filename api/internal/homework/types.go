package homework

// Method labels which parser produced a result. The client shows it and
// colors the result card accordingly.
type Method string

const (
	MethodEnhanced Method = "enhanced"
	MethodLegacy   Method = "legacy"
)

const (
	// SeparatorToken delimits question blocks in the free-text response
	// protocol. Literal, not a format string.
	SeparatorToken = "═══QUESTION_SEPARATOR═══"

	// AnswerPlaceholder is assigned when a block yields a question but
	// no answer text.
	AnswerPlaceholder = "Answer not provided."

	DefaultSubject           = "Other"
	DefaultSubjectConfidence = 0.5
	DefaultConfidence        = 0.8
)

// ParsedQuestion is one question/answer record extracted from an AI
// response. Grading fields are present only when the model graded a
// student's work.
type ParsedQuestion struct {
	Number     *int    `json:"number,omitempty"` // nil when the block carries no digits
	Text       string  `json:"text"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"` // 0..1
	HasVisuals bool    `json:"has_visuals"`

	StudentAnswer string   `json:"student_answer,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Grade         string   `json:"grade,omitempty"`
	Points        *float64 `json:"points,omitempty"`
	Feedback      string   `json:"feedback,omitempty"`
	Options       []string `json:"options,omitempty"`
}

// ParsingResult is the outcome of one parse attempt. An empty Questions
// slice is a valid, successful outcome ("nothing found"), not an error.
type ParsingResult struct {
	Questions         []ParsedQuestion `json:"questions"`
	ProcessingTimeSec float64          `json:"processing_time_sec"`
	OverallConfidence float64          `json:"overall_confidence"`
	Method            Method           `json:"method"`
	Subject           string           `json:"subject"`
	SubjectConfidence float64          `json:"subject_confidence"`
}

// overallConfidence is the arithmetic mean of per-question confidences,
// 0.0 for an empty list.
func overallConfidence(qs []ParsedQuestion) float64 {
	if len(qs) == 0 {
		return 0.0
	}
	var sum float64
	for _, q := range qs {
		sum += q.Confidence
	}
	return sum / float64(len(qs))
}
