package handle

import (
	"encoding/json"
	"net/http"

	"study-helper/api/internal/engine"
	"study-helper/api/internal/store"
)

type Handle struct {
	engs      *engine.Engines
	questions *store.QuestionRepo
	reports   *store.ReportRepo
	focus     *store.FocusRepo
}

func New(engs *engine.Engines, questions *store.QuestionRepo, reports *store.ReportRepo, focus *store.FocusRepo) *Handle {
	return &Handle{
		engs:      engs,
		questions: questions,
		reports:   reports,
		focus:     focus,
	}
}

// Register wires every route onto the mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/homework/parse", h.ParseHomework)
	mux.HandleFunc("/v1/questions", h.Questions)
	mux.HandleFunc("/v1/questions/sync", h.SyncQuestions)
	mux.HandleFunc("/v1/questions/{id}", h.QuestionDetails)
	mux.HandleFunc("/v1/mistakes", h.Mistakes)
	mux.HandleFunc("/v1/progress/subjects", h.SubjectBreakdown)
	mux.HandleFunc("/v1/reports/generate", h.GenerateReport)
	mux.HandleFunc("/v1/focus/sessions", h.RecordFocusSession)
	mux.HandleFunc("/v1/focus/summary", h.FocusSummary)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
