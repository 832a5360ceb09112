package progress

// FilterSubject projects a multi-subject breakdown down to one subject.
// Pure: the source breakdown is not mutated. Every sub-structure is
// rebuilt to reference only the selected subject; comparisons are always
// emptied, they have no single-subject equivalent.
func FilterSubject(b Breakdown, subject string) Breakdown {
	out := Breakdown{
		Timeframe: b.Timeframe,
		Summary: Summary{
			QuestionDistribution: map[string]int{},
			CorrectBySubject:     map[string]int{},
			AccuracyBySubject:    map[string]float64{},
		},
		Comparisons: []Comparison{},
	}

	questions, studied := b.Summary.QuestionDistribution[subject]
	if studied && questions > 0 {
		out.Summary.TotalQuestions = questions
		out.Summary.TotalSubjectsStudied = 1
		out.Summary.QuestionDistribution[subject] = questions

		correct := b.Summary.CorrectBySubject[subject]
		out.Summary.TotalCorrect = correct
		out.Summary.CorrectBySubject[subject] = correct

		acc := b.Summary.AccuracyBySubject[subject]
		out.Summary.AccuracyBySubject[subject] = acc
		out.Summary.OverallAccuracy = acc

		out.Insights = Insights{
			StrongestSubject: pickIfEqual(b.Insights.StrongestSubject, subject),
			WeakestSubject:   pickIfEqual(b.Insights.WeakestSubject, subject),
			MostStudied:      pickIfEqual(b.Insights.MostStudied, subject),
			LeastStudied:     pickIfEqual(b.Insights.LeastStudied, subject),
		}
	}

	for _, tr := range b.Trends {
		if tr.Subject == subject {
			out.Trends = append(out.Trends, tr)
		}
	}
	for _, rec := range b.Recommendations {
		if rec.Subject == subject {
			out.Recommendations = append(out.Recommendations, rec)
		}
	}
	return out
}

func pickIfEqual(value, subject string) string {
	if value == subject {
		return value
	}
	return ""
}
