package handle

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"study-helper/api/internal/progress"
	"study-helper/api/internal/report"
	"study-helper/api/internal/store"
)

// Cached reports stay valid this long before regeneration.
const reportMaxAge = 6 * time.Hour

type generateReportRequest struct {
	StudentID string `json:"student_id"`
	Timeframe string `json:"timeframe,omitempty"` // week | month | all
	Force     bool   `json:"force,omitempty"`     // skip the cache
}

// GenerateReport builds (or returns the cached) parent report.
func (h *Handle) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.StudentID) == "" {
		http.Error(w, "student_id is required", http.StatusBadRequest)
		return
	}
	tf := progress.ParseTimeframe(req.Timeframe)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if !req.Force {
		if rep, err := h.reports.Find(ctx, req.StudentID, string(tf), reportMaxAge); err == nil {
			writeJSON(w, http.StatusOK, rep)
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Printf("report cache read: %v", err)
		}
	}

	rep, err := h.buildReport(ctx, req.StudentID, tf)
	if err != nil {
		http.Error(w, "report error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.reports.Upsert(ctx, rep); err != nil {
		// cache write failure is not fatal for the caller
		log.Printf("report cache write: %v", err)
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *Handle) buildReport(ctx context.Context, studentID string, tf progress.Timeframe) (report.Report, error) {
	now := time.Now().UTC()

	recs, err := h.questions.Records(ctx, studentID)
	if err != nil {
		return report.Report{}, err
	}
	focus, err := h.focus.Summary(ctx, studentID, tf.Cutoff(now))
	if err != nil {
		return report.Report{}, err
	}

	return report.Build(studentID, tf, recs, focus.Sessions, focus.TotalMinutes, focus.Tomatoes, now), nil
}
