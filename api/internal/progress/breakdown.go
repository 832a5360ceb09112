package progress

import (
	"sort"
	"strings"
	"time"

	"study-helper/api/internal/mistakes"
)

// Subject-level learning analytics computed from the question archive.
// The mobile client renders the full breakdown and can narrow it to one
// subject; FilterSubject is that projection.

type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeAll   Timeframe = "all"
)

const defaultSubject = "Other"

type Summary struct {
	TotalQuestions       int                `json:"total_questions"`
	TotalCorrect         int                `json:"total_correct"`
	OverallAccuracy      float64            `json:"overall_accuracy"`
	TotalSubjectsStudied int                `json:"total_subjects_studied"`
	QuestionDistribution map[string]int     `json:"question_distribution"`
	CorrectBySubject     map[string]int     `json:"correct_by_subject"`
	AccuracyBySubject    map[string]float64 `json:"accuracy_by_subject"`
}

type Insights struct {
	StrongestSubject string `json:"strongest_subject"`
	WeakestSubject   string `json:"weakest_subject"`
	MostStudied      string `json:"most_studied"`
	LeastStudied     string `json:"least_studied"`
}

type Trend struct {
	Subject string       `json:"subject"`
	Points  []TrendPoint `json:"points"`
}

type TrendPoint struct {
	PeriodStart time.Time `json:"period_start"`
	Questions   int       `json:"questions"`
	Accuracy    float64   `json:"accuracy"`
}

type Recommendation struct {
	Subject    string `json:"subject"`
	Suggestion string `json:"suggestion"`
	Priority   int    `json:"priority"` // 1 = highest
}

// Comparison sets one subject's accuracy against the rest of the
// archive. Inherently cross-subject: a single-subject projection has no
// equivalent and always empties the list.
type Comparison struct {
	Subject      string  `json:"subject"`
	Accuracy     float64 `json:"accuracy"`
	RestAccuracy float64 `json:"rest_accuracy"`
	Delta        float64 `json:"delta"`
}

type Breakdown struct {
	Timeframe       Timeframe        `json:"timeframe"`
	Summary         Summary          `json:"summary"`
	Insights        Insights         `json:"insights"`
	Trends          []Trend          `json:"trends"`
	Recommendations []Recommendation `json:"recommendations"`
	Comparisons     []Comparison     `json:"comparisons"`
}

type tally struct {
	questions int
	graded    int
	correct   int
}

// Calculate builds the full breakdown from archived records. Records
// with no grading outcome (isCorrect absent) count toward volume but not
// accuracy.
func Calculate(recs []mistakes.Record, tf Timeframe, now time.Time) Breakdown {
	recs = filterTimeframe(recs, tf, now)

	bySubject := make(map[string]*tally)
	var order []string

	for _, rec := range recs {
		subject := strings.TrimSpace(rec.Subject)
		if subject == "" {
			subject = defaultSubject
		}
		t, ok := bySubject[subject]
		if !ok {
			t = &tally{}
			bySubject[subject] = t
			order = append(order, subject)
		}
		t.questions++
		if rec.IsCorrect != nil {
			t.graded++
			if *rec.IsCorrect {
				t.correct++
			}
		}
	}

	b := Breakdown{
		Timeframe: tf,
		Summary: Summary{
			TotalSubjectsStudied: len(order),
			QuestionDistribution: make(map[string]int, len(order)),
			CorrectBySubject:     make(map[string]int, len(order)),
			AccuracyBySubject:    make(map[string]float64, len(order)),
		},
	}

	totalGraded, totalCorrect := 0, 0
	for _, s := range order {
		t := bySubject[s]
		b.Summary.TotalQuestions += t.questions
		b.Summary.TotalCorrect += t.correct
		b.Summary.QuestionDistribution[s] = t.questions
		b.Summary.CorrectBySubject[s] = t.correct
		b.Summary.AccuracyBySubject[s] = accuracy(t.correct, t.graded)
		totalGraded += t.graded
		totalCorrect += t.correct
	}
	b.Summary.OverallAccuracy = accuracy(totalCorrect, totalGraded)

	b.Insights = buildInsights(order, bySubject, b.Summary.AccuracyBySubject)
	b.Trends = buildTrends(recs, order)
	b.Recommendations = buildRecommendations(order, b.Summary.AccuracyBySubject, bySubject)
	b.Comparisons = buildComparisons(order, bySubject, totalCorrect, totalGraded)
	return b
}

func accuracy(correct, graded int) float64 {
	if graded == 0 {
		return 0.0
	}
	return float64(correct) / float64(graded)
}

// Cutoff returns the inclusive lower bound of the timeframe, the zero
// time for "all".
func (tf Timeframe) Cutoff(now time.Time) time.Time {
	switch tf {
	case TimeframeWeek:
		return now.AddDate(0, 0, -7)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// ParseTimeframe maps a query-string value onto a timeframe, "all" when
// unknown or empty.
func ParseTimeframe(s string) Timeframe {
	switch Timeframe(strings.ToLower(strings.TrimSpace(s))) {
	case TimeframeWeek:
		return TimeframeWeek
	case TimeframeMonth:
		return TimeframeMonth
	default:
		return TimeframeAll
	}
}

func filterTimeframe(recs []mistakes.Record, tf Timeframe, now time.Time) []mistakes.Record {
	cutoff := tf.Cutoff(now)
	if cutoff.IsZero() {
		return recs
	}
	out := make([]mistakes.Record, 0, len(recs))
	for _, rec := range recs {
		// Undated records survive every timeframe; the archive predates
		// the archivedAt column.
		if rec.ArchivedAt == nil || !rec.ArchivedAt.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

func buildInsights(order []string, bySubject map[string]*tally, acc map[string]float64) Insights {
	var in Insights
	for _, s := range order {
		t := bySubject[s]
		if in.MostStudied == "" || t.questions > bySubject[in.MostStudied].questions {
			in.MostStudied = s
		}
		if in.LeastStudied == "" || t.questions < bySubject[in.LeastStudied].questions {
			in.LeastStudied = s
		}
		if t.graded == 0 {
			continue
		}
		if in.StrongestSubject == "" || acc[s] > acc[in.StrongestSubject] {
			in.StrongestSubject = s
		}
		if in.WeakestSubject == "" || acc[s] < acc[in.WeakestSubject] {
			in.WeakestSubject = s
		}
	}
	return in
}

func buildTrends(recs []mistakes.Record, order []string) []Trend {
	type bucket struct {
		questions int
		graded    int
		correct   int
	}
	weekly := make(map[string]map[time.Time]*bucket)
	for _, rec := range recs {
		if rec.ArchivedAt == nil {
			continue
		}
		subject := strings.TrimSpace(rec.Subject)
		if subject == "" {
			subject = defaultSubject
		}
		week := rec.ArchivedAt.UTC().Truncate(7 * 24 * time.Hour)
		m := weekly[subject]
		if m == nil {
			m = make(map[time.Time]*bucket)
			weekly[subject] = m
		}
		bk := m[week]
		if bk == nil {
			bk = &bucket{}
			m[week] = bk
		}
		bk.questions++
		if rec.IsCorrect != nil {
			bk.graded++
			if *rec.IsCorrect {
				bk.correct++
			}
		}
	}

	var trends []Trend
	for _, s := range order {
		m := weekly[s]
		if len(m) == 0 {
			continue
		}
		weeks := make([]time.Time, 0, len(m))
		for w := range m {
			weeks = append(weeks, w)
		}
		sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
		tr := Trend{Subject: s}
		for _, w := range weeks {
			bk := m[w]
			tr.Points = append(tr.Points, TrendPoint{
				PeriodStart: w,
				Questions:   bk.questions,
				Accuracy:    accuracy(bk.correct, bk.graded),
			})
		}
		trends = append(trends, tr)
	}
	return trends
}

func buildRecommendations(order []string, acc map[string]float64, bySubject map[string]*tally) []Recommendation {
	var recos []Recommendation
	for _, s := range order {
		t := bySubject[s]
		if t.graded == 0 {
			continue
		}
		switch {
		case acc[s] < 0.5:
			recos = append(recos, Recommendation{Subject: s, Priority: 1,
				Suggestion: "Accuracy below 50%. Review the mistake notebook for this subject before new practice."})
		case acc[s] < 0.75:
			recos = append(recos, Recommendation{Subject: s, Priority: 2,
				Suggestion: "Accuracy has room to grow. Redo the most recent incorrect questions."})
		}
	}
	sort.SliceStable(recos, func(i, j int) bool { return recos[i].Priority < recos[j].Priority })
	return recos
}

func buildComparisons(order []string, bySubject map[string]*tally, totalCorrect, totalGraded int) []Comparison {
	var cmps []Comparison
	for _, s := range order {
		t := bySubject[s]
		if t.graded == 0 {
			continue
		}
		restGraded := totalGraded - t.graded
		restCorrect := totalCorrect - t.correct
		own := accuracy(t.correct, t.graded)
		rest := accuracy(restCorrect, restGraded)
		cmps = append(cmps, Comparison{
			Subject:      s,
			Accuracy:     own,
			RestAccuracy: rest,
			Delta:        own - rest,
		})
	}
	return cmps
}
