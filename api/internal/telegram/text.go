package telegram

import (
	"fmt"
	"strings"

	"study-helper/api/internal/mistakes"
)

// mistakeGroupsText renders the grouped mistake notebook for chat.
func mistakeGroupsText(recs []mistakes.Record) string {
	groups := mistakes.GroupRecords(recs)
	if len(groups) == 0 {
		return "No mistakes recorded. Nice."
	}

	var b strings.Builder
	b.WriteString("Mistake notebook:\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s (%d)\n", g.ErrorType, g.Count())
		for i, m := range g.Mistakes {
			if i == 3 {
				fmt.Fprintf(&b, "  … and %d more\n", g.Count()-3)
				break
			}
			fmt.Fprintf(&b, "  • %s\n", truncate(m.QuestionText, 60))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
