package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"study-helper/api/internal/progress"
	"study-helper/api/internal/store"
)

type focusSessionRequest struct {
	StudentID string `json:"student_id"`
	Minutes   int    `json:"minutes"`
	Completed bool   `json:"completed"`
	StartedAt string `json:"started_at,omitempty"` // RFC3339, now when empty
}

// RecordFocusSession stores one focus-timer run.
func (h *Handle) RecordFocusSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req focusSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.StudentID) == "" {
		http.Error(w, "student_id is required", http.StatusBadRequest)
		return
	}
	if req.Minutes <= 0 || req.Minutes > 24*60 {
		http.Error(w, "minutes out of range", http.StatusBadRequest)
		return
	}

	s := &store.FocusSession{
		StudentID: req.StudentID,
		Minutes:   req.Minutes,
		Completed: req.Completed,
	}
	if req.StartedAt != "" {
		ts, err := time.Parse(time.RFC3339, req.StartedAt)
		if err != nil {
			http.Error(w, "bad started_at", http.StatusBadRequest)
			return
		}
		s.StartedAt = ts.UTC()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if err := h.focus.Insert(ctx, s); err != nil {
		http.Error(w, "focus error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": s.ID.String()})
}

// FocusSummary aggregates a student's focus history for a timeframe.
func (h *Handle) FocusSummary(w http.ResponseWriter, r *http.Request) {
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
	sum, err := h.focus.Summary(ctx, studentID, tf.Cutoff(time.Now().UTC()))
	if err != nil {
		http.Error(w, "summary error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
