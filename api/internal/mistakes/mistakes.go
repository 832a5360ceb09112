package mistakes

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// GroupAnalyzing is the sentinel group for mistakes whose error analysis
// has not finished yet (missing or empty errorType).
const GroupAnalyzing = "analyzing"

// Record is the typed view of one archived question row. The client
// historically synced these as untyped key-value maps; DecodeRecord is
// the validation boundary that replaces silent per-field defaulting.
type Record struct {
	QuestionText        string     `json:"questionText"`
	StudentAnswer       string     `json:"studentAnswer,omitempty"`
	AnswerText          string     `json:"answerText,omitempty"`
	Subject             string     `json:"subject,omitempty"`
	IsCorrect           *bool      `json:"isCorrect,omitempty"`
	ErrorType           string     `json:"errorType,omitempty"`
	ErrorEvidence       string     `json:"errorEvidence,omitempty"`
	ErrorConfidence     float64    `json:"errorConfidence,omitempty"`
	LearningSuggestion  string     `json:"learningSuggestion,omitempty"`
	ErrorAnalysisStatus string     `json:"errorAnalysisStatus,omitempty"`
	ArchivedAt          *time.Time `json:"archivedAt,omitempty"`
}

// IsMistake reports whether the record counts as a mistake: isCorrect
// present and false. Absent values never count.
func (r Record) IsMistake() bool {
	return r.IsCorrect != nil && !*r.IsCorrect
}

// GroupKey is the error type, or the analyzing sentinel when empty.
func (r Record) GroupKey() string {
	if k := strings.TrimSpace(r.ErrorType); k != "" {
		return k
	}
	return GroupAnalyzing
}

// Group is a set of mistakes sharing one error-type classification.
type Group struct {
	ErrorType string   `json:"error_type"`
	Mistakes  []Record `json:"mistakes"`
}

func (g Group) Count() int { return len(g.Mistakes) }

// DecodeRecord validates one raw storage map. A record without question
// text, or with a non-boolean isCorrect value, is malformed; the caller
// skips and counts it instead of defaulting fields.
func DecodeRecord(raw map[string]any) (Record, error) {
	qt, ok := raw["questionText"].(string)
	if !ok || strings.TrimSpace(qt) == "" {
		return Record{}, fmt.Errorf("record has no questionText")
	}
	rec := Record{QuestionText: qt}

	if v, present := raw["isCorrect"]; present && v != nil {
		b, ok := v.(bool)
		if !ok {
			return Record{}, fmt.Errorf("isCorrect is %T, want bool", v)
		}
		rec.IsCorrect = &b
	}

	rec.StudentAnswer = optString(raw, "studentAnswer")
	rec.AnswerText = optString(raw, "answerText")
	rec.Subject = optString(raw, "subject")
	rec.ErrorType = optString(raw, "errorType")
	rec.ErrorEvidence = optString(raw, "errorEvidence")
	rec.LearningSuggestion = optString(raw, "learningSuggestion")
	rec.ErrorAnalysisStatus = optString(raw, "errorAnalysisStatus")

	if v, ok := raw["errorConfidence"].(float64); ok {
		rec.ErrorConfidence = v
	}
	if s := optString(raw, "archivedAt"); s != "" {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			rec.ArchivedAt = &ts
		}
	}
	return rec, nil
}

func optString(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// GroupRecords filters mistakes and groups them by error type. Groups
// come back sorted by descending size; ties keep encounter order.
func GroupRecords(recs []Record) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, rec := range recs {
		if !rec.IsMistake() {
			continue
		}
		key := rec.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{ErrorType: key})
		}
		groups[i].Mistakes = append(groups[i].Mistakes, rec)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Mistakes) > len(groups[j].Mistakes)
	})
	return groups
}
