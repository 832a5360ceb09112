package homework

import (
	"encoding/json"
	"fmt"
	"strings"

	"study-helper/api/internal/util"
)

// Enhanced parser: newer prompts ask the model for strict JSON matching
// the parse schema. When the reply decodes and carries at least one
// question the result is used exclusively; otherwise Parse falls back to
// the free-text grammar.

type enhancedQuestion struct {
	Number        *int     `json:"number"`
	Text          string   `json:"text"`
	Answer        string   `json:"answer"`
	Confidence    *float64 `json:"confidence"`
	HasVisuals    bool     `json:"has_visuals"`
	StudentAnswer string   `json:"student_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	Grade         string   `json:"grade"`
	Points        *float64 `json:"points"`
	Feedback      string   `json:"feedback"`
	Options       []string `json:"options"`
}

type enhancedPayload struct {
	Subject           string             `json:"subject"`
	SubjectConfidence *float64           `json:"subject_confidence"`
	Questions         []enhancedQuestion `json:"questions"`
}

// ParseEnhanced decodes a schema-conformant JSON reply. An error means
// "this reply is not enhanced output", not a hard failure — the caller
// falls back to ParseText.
func ParseEnhanced(raw string) (ParsingResult, error) {
	txt := util.StripCodeFences(raw)

	var p enhancedPayload
	if err := json.Unmarshal([]byte(txt), &p); err != nil {
		return ParsingResult{}, fmt.Errorf("enhanced: bad JSON: %w", err)
	}

	var questions []ParsedQuestion
	for _, eq := range p.Questions {
		if strings.TrimSpace(eq.Text) == "" {
			continue
		}
		q := ParsedQuestion{
			Number:        eq.Number,
			Text:          strings.TrimSpace(eq.Text),
			Answer:        strings.TrimSpace(eq.Answer),
			Confidence:    DefaultConfidence,
			HasVisuals:    eq.HasVisuals,
			StudentAnswer: eq.StudentAnswer,
			CorrectAnswer: eq.CorrectAnswer,
			Grade:         eq.Grade,
			Points:        eq.Points,
			Feedback:      eq.Feedback,
			Options:       eq.Options,
		}
		if eq.Confidence != nil {
			q.Confidence = *eq.Confidence
		}
		if q.Answer == "" {
			q.Answer = AnswerPlaceholder
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return ParsingResult{}, fmt.Errorf("enhanced: no questions in reply")
	}

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		subject = DefaultSubject
	}
	conf := DefaultSubjectConfidence
	if p.SubjectConfidence != nil {
		conf = *p.SubjectConfidence
	}

	return ParsingResult{
		Questions:         questions,
		OverallConfidence: overallConfidence(questions),
		Method:            MethodEnhanced,
		Subject:           subject,
		SubjectConfidence: conf,
	}, nil
}

// Parse tries the enhanced parser first and falls back to the free-text
// grammar. Whichever succeeds first is used exclusively; no merge, no
// retry.
func Parse(raw string) ParsingResult {
	if res, err := ParseEnhanced(raw); err == nil {
		return res
	}
	return ParseText(raw)
}
