package handle

import (
	"context"
	"net/http"
	"strings"
	"time"

	"study-helper/api/internal/mistakes"
	"study-helper/api/internal/progress"
)

// Mistakes groups a student's incorrect answers by error type, largest
// group first.
func (h *Handle) Mistakes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	studentID := strings.TrimSpace(r.URL.Query().Get("student_id"))
	if studentID == "" {
		http.Error(w, "student_id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	recs, err := h.questions.Records(ctx, studentID)
	if err != nil {
		http.Error(w, "load error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	groups := mistakes.GroupRecords(recs)
	total := 0
	for _, g := range groups {
		total += g.Count()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups": groups,
		"total":  total,
	})
}

// SubjectBreakdown computes per-subject analytics for a timeframe and
// optionally projects them down to one subject.
func (h *Handle) SubjectBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	studentID := strings.TrimSpace(r.URL.Query().Get("student_id"))
	if studentID == "" {
		http.Error(w, "student_id is required", http.StatusBadRequest)
		return
	}
	tf := progress.ParseTimeframe(r.URL.Query().Get("timeframe"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	recs, err := h.questions.Records(ctx, studentID)
	if err != nil {
		http.Error(w, "load error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	b := progress.Calculate(recs, tf, time.Now().UTC())
	if subject := strings.TrimSpace(r.URL.Query().Get("subject")); subject != "" {
		b = progress.FilterSubject(b, subject)
	}
	writeJSON(w, http.StatusOK, b)
}
