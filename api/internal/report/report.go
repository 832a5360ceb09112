package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"study-helper/api/internal/mistakes"
	"study-helper/api/internal/progress"
)

// Report is the parent-facing progress snapshot: subject breakdown,
// grouped mistakes and focus-timer totals for one timeframe.
type Report struct {
	ID          uuid.UUID          `json:"id"`
	StudentID   string             `json:"student_id"`
	Timeframe   progress.Timeframe `json:"timeframe"`
	GeneratedAt time.Time          `json:"generated_at"`

	Breakdown     progress.Breakdown `json:"breakdown"`
	MistakeGroups []mistakes.Group   `json:"mistake_groups"`

	FocusSessions int `json:"focus_sessions"`
	FocusMinutes  int `json:"focus_minutes"`
	Tomatoes      int `json:"tomatoes"`

	Highlights []string `json:"highlights"`
}

// Build assembles a report from the student's archive and focus totals.
func Build(studentID string, tf progress.Timeframe, recs []mistakes.Record, focusSessions, focusMinutes, tomatoes int, now time.Time) Report {
	rep := Report{
		ID:          uuid.New(),
		StudentID:   studentID,
		Timeframe:   tf,
		GeneratedAt: now,

		Breakdown:     progress.Calculate(recs, tf, now),
		MistakeGroups: mistakes.GroupRecords(recs),

		FocusSessions: focusSessions,
		FocusMinutes:  focusMinutes,
		Tomatoes:      tomatoes,
	}
	rep.Highlights = highlights(rep)
	return rep
}

func highlights(rep Report) []string {
	var hs []string
	sum := rep.Breakdown.Summary
	if sum.TotalQuestions > 0 {
		hs = append(hs, fmt.Sprintf("Worked through %d questions at %.0f%% accuracy.",
			sum.TotalQuestions, sum.OverallAccuracy*100))
	}
	if s := rep.Breakdown.Insights.StrongestSubject; s != "" {
		hs = append(hs, fmt.Sprintf("Strongest subject: %s.", s))
	}
	if len(rep.MistakeGroups) > 0 {
		g := rep.MistakeGroups[0]
		hs = append(hs, fmt.Sprintf("Most common error type: %s (%d questions).", g.ErrorType, g.Count()))
	}
	if rep.Tomatoes > 0 {
		hs = append(hs, fmt.Sprintf("Completed %d focus sessions (%d min) and grew %d tomatoes.",
			rep.FocusSessions, rep.FocusMinutes, rep.Tomatoes))
	}
	if len(hs) == 0 {
		hs = append(hs, "No study activity recorded in this period.")
	}
	return hs
}

// RenderText renders the report as plain text for the parent bot.
func RenderText(rep Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress report (%s)\n", rep.Timeframe)
	fmt.Fprintf(&b, "Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04"))

	for _, h := range rep.Highlights {
		fmt.Fprintf(&b, "• %s\n", h)
	}

	sum := rep.Breakdown.Summary
	if sum.TotalSubjectsStudied > 0 {
		b.WriteString("\nBy subject:\n")
		subjects := make([]string, 0, len(sum.QuestionDistribution))
		for subject := range sum.QuestionDistribution {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
		for _, subject := range subjects {
			fmt.Fprintf(&b, "  %s: %d questions, %.0f%% accuracy\n",
				subject, sum.QuestionDistribution[subject], sum.AccuracyBySubject[subject]*100)
		}
	}

	if len(rep.MistakeGroups) > 0 {
		b.WriteString("\nMistakes to review:\n")
		for _, g := range rep.MistakeGroups {
			fmt.Fprintf(&b, "  %s: %d\n", g.ErrorType, g.Count())
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
