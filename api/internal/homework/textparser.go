package homework

import (
	"regexp"
	"strconv"
	"strings"
)

// Free-text fallback parser. The model is asked for strict JSON, but the
// response format is not contractually guaranteed: older prompts produce
// either a markdown-flavored block ("**Question 1:** ...") or labeled
// lines ("QUESTION: ..."). Every failure mode here degrades to a default
// or drops the block; the parser never errors.

var (
	reMarkdownQuestion = regexp.MustCompile(`^\*\*Question\s+([^:*]+):\*\*\s*(.*)$`)
	reMarkdownAnswer   = regexp.MustCompile(`^\*\*Answer\s+([^:*]+):\*\*\s*(.*)$`)
	reLeadingDigits    = regexp.MustCompile(`^\d+`)
)

// ParseText parses one AI response into question records. Blocks are
// split on SeparatorToken; an input without the token is one block.
func ParseText(raw string) ParsingResult {
	subject, subjectConf := extractSubject(raw)

	var questions []ParsedQuestion
	for _, block := range strings.Split(raw, SeparatorToken) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if q, ok := parseQuestionBlock(block); ok {
			questions = append(questions, q)
		}
	}

	return ParsingResult{
		Questions:         questions,
		OverallConfidence: overallConfidence(questions),
		Method:            MethodLegacy,
		Subject:           subject,
		SubjectConfidence: subjectConf,
	}
}

// extractSubject scans for SUBJECT: / SUBJECT_CONFIDENCE: header lines.
// Absence of either yields defaults, not a failure.
func extractSubject(raw string) (string, float64) {
	subject := DefaultSubject
	conf := DefaultSubjectConfidence
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "SUBJECT_CONFIDENCE:"); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				conf = f
			}
			continue
		}
		if v, ok := strings.CutPrefix(line, "SUBJECT:"); ok {
			if s := strings.TrimSpace(v); s != "" {
				subject = s
			}
		}
	}
	return subject, conf
}

// parseQuestionBlock extracts one record from a block, trying the
// markdown grammar first, then the legacy labeled-line grammar, per
// line. A block with no question text yields no record.
func parseQuestionBlock(block string) (ParsedQuestion, bool) {
	q := ParsedQuestion{Confidence: DefaultConfidence}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := reMarkdownQuestion.FindStringSubmatch(line); m != nil {
			if q.Text == "" {
				q.Number = leadingNumber(m[1])
				q.Text = strings.TrimSpace(m[2])
			}
			continue
		}
		if m := reMarkdownAnswer.FindStringSubmatch(line); m != nil {
			if q.Answer == "" {
				q.Answer = strings.TrimSpace(m[2])
			}
			continue
		}

		// Legacy grammar. QUESTION_NUMBER before QUESTION so the longer
		// label is not swallowed by the shorter prefix.
		if v, ok := strings.CutPrefix(line, "QUESTION_NUMBER:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				q.Number = &n
			}
			continue
		}
		if v, ok := strings.CutPrefix(line, "QUESTION:"); ok {
			q.Text = strings.TrimSpace(v)
			continue
		}
		if v, ok := strings.CutPrefix(line, "ANSWER:"); ok {
			q.Answer = strings.TrimSpace(v)
			continue
		}
		if v, ok := strings.CutPrefix(line, "CONFIDENCE:"); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				q.Confidence = f
			} else {
				q.Confidence = DefaultConfidence
			}
			continue
		}
		if v, ok := strings.CutPrefix(line, "HAS_VISUALS:"); ok {
			b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
			q.HasVisuals = err == nil && b
			continue
		}
	}

	if strings.TrimSpace(q.Text) == "" {
		return ParsedQuestion{}, false
	}
	if strings.TrimSpace(q.Answer) == "" {
		q.Answer = AnswerPlaceholder
	}
	return q, true
}

// leadingNumber returns the numeric prefix of a question id ("1" from
// "1a"), nil when the id carries no leading digits.
func leadingNumber(id string) *int {
	digits := reLeadingDigits.FindString(strings.TrimSpace(id))
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}
