package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"study-helper/api/internal/mistakes"
)

func boolPtr(b bool) *bool { return &b }

func TestMistakeGroupsTextEmpty(t *testing.T) {
	assert.Equal(t, "No mistakes recorded. Nice.", mistakeGroupsText(nil))
}

func TestMistakeGroupsTextRendersLargestFirst(t *testing.T) {
	var recs []mistakes.Record
	for i := 0; i < 2; i++ {
		recs = append(recs, mistakes.Record{QuestionText: "spelling q", IsCorrect: boolPtr(false), ErrorType: "spelling"})
	}
	recs = append(recs, mistakes.Record{QuestionText: "calc q", IsCorrect: boolPtr(false), ErrorType: "calculation"})

	txt := mistakeGroupsText(recs)

	assert.Less(t, strings.Index(txt, "spelling (2)"), strings.Index(txt, "calculation (1)"))
}

func TestMistakeGroupsTextCapsExamples(t *testing.T) {
	var recs []mistakes.Record
	for i := 0; i < 6; i++ {
		recs = append(recs, mistakes.Record{QuestionText: "q", IsCorrect: boolPtr(false), ErrorType: "concept"})
	}

	txt := mistakeGroupsText(recs)

	assert.Contains(t, txt, "… and 3 more")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "very lon…", truncate("very long text", 9))
}
