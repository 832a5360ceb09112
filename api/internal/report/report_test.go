package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-helper/api/internal/mistakes"
	"study-helper/api/internal/progress"
)

func boolPtr(b bool) *bool { return &b }

func sampleRecords(now time.Time) []mistakes.Record {
	at := now.AddDate(0, 0, -1)
	return []mistakes.Record{
		{QuestionText: "q1", Subject: "Math", IsCorrect: boolPtr(true), ArchivedAt: &at},
		{QuestionText: "q2", Subject: "Math", IsCorrect: boolPtr(false), ErrorType: "calculation", ArchivedAt: &at},
		{QuestionText: "q3", Subject: "Chinese", IsCorrect: boolPtr(false), ArchivedAt: &at},
	}
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	rep := Build("student-1", progress.TimeframeWeek, sampleRecords(now), 4, 100, 3, now)

	assert.Equal(t, "student-1", rep.StudentID)
	assert.Equal(t, 3, rep.Breakdown.Summary.TotalQuestions)
	require.Len(t, rep.MistakeGroups, 2)
	assert.Equal(t, 3, rep.Tomatoes)
	assert.NotEmpty(t, rep.Highlights)
}

func TestBuildEmptyArchive(t *testing.T) {
	now := time.Now().UTC()

	rep := Build("student-1", progress.TimeframeAll, nil, 0, 0, 0, now)

	require.Len(t, rep.Highlights, 1)
	assert.Contains(t, rep.Highlights[0], "No study activity")
}

func TestRenderText(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	rep := Build("student-1", progress.TimeframeWeek, sampleRecords(now), 4, 100, 3, now)

	txt := RenderText(rep)

	assert.True(t, strings.HasPrefix(txt, "Progress report (week)"))
	assert.Contains(t, txt, "Math")
	assert.Contains(t, txt, "Mistakes to review:")
	assert.Contains(t, txt, "calculation: 1")
}

func TestRenderTextSubjectOrderIsStable(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	rep := Build("student-1", progress.TimeframeWeek, sampleRecords(now), 0, 0, 0, now)

	first := RenderText(rep)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RenderText(rep))
	}

	idx := strings.Index(first, "By subject:")
	require.GreaterOrEqual(t, idx, 0)
	section := first[idx:]
	assert.Less(t, strings.Index(section, "Chinese"), strings.Index(section, "Math"),
		"subject lines are alphabetical")
}
