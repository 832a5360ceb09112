package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-helper/api/internal/mistakes"
)

func boolPtr(b bool) *bool { return &b }

func rec(subject string, correct bool, archivedAt time.Time) mistakes.Record {
	return mistakes.Record{
		QuestionText: "q",
		Subject:      subject,
		IsCorrect:    boolPtr(correct),
		ArchivedAt:   &archivedAt,
	}
}

func sampleBreakdown(t *testing.T) Breakdown {
	t.Helper()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	recs := []mistakes.Record{
		rec("Math", true, now.AddDate(0, 0, -1)),
		rec("Math", true, now.AddDate(0, 0, -2)),
		rec("Math", false, now.AddDate(0, 0, -3)),
		rec("Chinese", true, now.AddDate(0, 0, -1)),
		rec("Chinese", false, now.AddDate(0, 0, -1)),
		rec("Chinese", false, now.AddDate(0, 0, -2)),
	}
	return Calculate(recs, TimeframeAll, now)
}

func TestCalculateSummary(t *testing.T) {
	b := sampleBreakdown(t)

	assert.Equal(t, 6, b.Summary.TotalQuestions)
	assert.Equal(t, 3, b.Summary.TotalCorrect)
	assert.Equal(t, 2, b.Summary.TotalSubjectsStudied)
	assert.InDelta(t, 0.5, b.Summary.OverallAccuracy, 1e-9)
	assert.Equal(t, 3, b.Summary.QuestionDistribution["Math"])
	assert.Equal(t, 2, b.Summary.CorrectBySubject["Math"])
	assert.InDelta(t, 2.0/3.0, b.Summary.AccuracyBySubject["Math"], 1e-9)
	assert.InDelta(t, 1.0/3.0, b.Summary.AccuracyBySubject["Chinese"], 1e-9)
}

func TestCalculateInsightsAndComparisons(t *testing.T) {
	b := sampleBreakdown(t)

	assert.Equal(t, "Math", b.Insights.StrongestSubject)
	assert.Equal(t, "Chinese", b.Insights.WeakestSubject)

	require.Len(t, b.Comparisons, 2)
	for _, c := range b.Comparisons {
		if c.Subject == "Math" {
			assert.Positive(t, c.Delta)
		}
	}
}

func TestCalculateTimeframeCutoff(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	recs := []mistakes.Record{
		rec("Math", true, now.AddDate(0, 0, -1)),
		rec("Math", true, now.AddDate(0, 0, -30)),
	}

	b := Calculate(recs, TimeframeWeek, now)
	assert.Equal(t, 1, b.Summary.TotalQuestions)

	b = Calculate(recs, TimeframeAll, now)
	assert.Equal(t, 2, b.Summary.TotalQuestions)
}

func TestCalculateUngradedCountsVolumeOnly(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	at := now.AddDate(0, 0, -1)
	recs := []mistakes.Record{
		rec("Math", true, at),
		{QuestionText: "q", Subject: "Math", ArchivedAt: &at}, // not graded yet
	}

	b := Calculate(recs, TimeframeAll, now)
	assert.Equal(t, 2, b.Summary.TotalQuestions)
	assert.InDelta(t, 1.0, b.Summary.AccuracyBySubject["Math"], 1e-9)
}

func TestFilterSubjectProjection(t *testing.T) {
	b := sampleBreakdown(t)

	f := FilterSubject(b, "Math")

	assert.Equal(t, 3, f.Summary.TotalQuestions)
	assert.Equal(t, 1, f.Summary.TotalSubjectsStudied)
	assert.Equal(t, map[string]int{"Math": 3}, f.Summary.QuestionDistribution)
	assert.InDelta(t, 2.0/3.0, f.Summary.OverallAccuracy, 1e-9)
	assert.Equal(t, "Math", f.Insights.StrongestSubject)
	assert.Empty(t, f.Insights.WeakestSubject, "other subject's insight must not leak through")
	assert.Empty(t, f.Comparisons)

	for _, tr := range f.Trends {
		assert.Equal(t, "Math", tr.Subject)
	}
}

func TestFilterSubjectUngradedDoesNotInflateCorrect(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	at := now.AddDate(0, 0, -1)
	recs := []mistakes.Record{
		rec("Math", true, at),
		{QuestionText: "q", Subject: "Math", ArchivedAt: &at}, // not graded yet
	}

	b := Calculate(recs, TimeframeAll, now)
	require.Equal(t, 1, b.Summary.TotalCorrect)

	f := FilterSubject(b, "Math")

	assert.Equal(t, 2, f.Summary.TotalQuestions)
	assert.Equal(t, 1, f.Summary.TotalCorrect, "ungraded questions must not count as correct")
	assert.Equal(t, 1, f.Summary.CorrectBySubject["Math"])
}

func TestFilterSubjectZeroRecords(t *testing.T) {
	b := sampleBreakdown(t)

	f := FilterSubject(b, "Physics")

	assert.Equal(t, 0, f.Summary.TotalSubjectsStudied)
	assert.Empty(t, f.Summary.QuestionDistribution)
	assert.Empty(t, f.Summary.AccuracyBySubject)
	assert.Empty(t, f.Trends)
	assert.Empty(t, f.Recommendations)
	assert.Empty(t, f.Comparisons)
}

func TestFilterSubjectDoesNotMutateSource(t *testing.T) {
	b := sampleBreakdown(t)
	before := len(b.Summary.QuestionDistribution)

	_ = FilterSubject(b, "Math")

	assert.Len(t, b.Summary.QuestionDistribution, before)
	assert.Len(t, b.Comparisons, 2)
}
