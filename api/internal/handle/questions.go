package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"study-helper/api/internal/mistakes"
	"study-helper/api/internal/store"
)

type archiveRequest struct {
	StudentID     string  `json:"student_id"`
	QuestionText  string  `json:"question_text"`
	AnswerText    string  `json:"answer_text,omitempty"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	StudentAnswer string  `json:"student_answer,omitempty"`
	Subject       string  `json:"subject,omitempty"`
	IsCorrect     *bool   `json:"is_correct,omitempty"`
	ErrorType     string  `json:"error_type,omitempty"`
	ErrorEvidence string  `json:"error_evidence,omitempty"`
	ErrorConf     float64 `json:"error_confidence,omitempty"`
}

type questionSummaryDTO struct {
	ID           string `json:"id"`
	QuestionText string `json:"question_text"`
	Subject      string `json:"subject"`
	IsCorrect    *bool  `json:"is_correct,omitempty"`
	ArchivedAt   string `json:"archived_at"`
}

// Questions serves the archive: POST stores one record, GET lists the
// newest summaries.
func (h *Handle) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.archiveQuestion(w, r)
	case http.MethodGet:
		h.listQuestions(w, r)
	default:
		http.Error(w, "GET or POST only", http.StatusMethodNotAllowed)
	}
}

func (h *Handle) archiveQuestion(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.StudentID) == "" || strings.TrimSpace(req.QuestionText) == "" {
		http.Error(w, "student_id and question_text are required", http.StatusBadRequest)
		return
	}

	aq := &store.ArchivedQuestion{
		StudentID:     req.StudentID,
		QuestionText:  req.QuestionText,
		AnswerText:    req.AnswerText,
		CorrectAnswer: req.CorrectAnswer,
		StudentAnswer: req.StudentAnswer,
		Subject:       req.Subject,
		IsCorrect:     req.IsCorrect,

		ErrorType:       req.ErrorType,
		ErrorEvidence:   req.ErrorEvidence,
		ErrorConfidence: req.ErrorConf,
	}
	if aq.ErrorType == "" && aq.IsCorrect != nil && !*aq.IsCorrect {
		aq.ErrorAnalysisStatus = "pending"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if err := h.questions.Insert(ctx, aq); err != nil {
		http.Error(w, "archive error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": aq.ID.String()})
}

func (h *Handle) listQuestions(w http.ResponseWriter, r *http.Request) {
	studentID := strings.TrimSpace(r.URL.Query().Get("student_id"))
	if studentID == "" {
		http.Error(w, "student_id is required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	sums, err := h.questions.ListRecent(ctx, studentID, limit)
	if err != nil {
		http.Error(w, "list error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]questionSummaryDTO, 0, len(sums))
	for _, s := range sums {
		out = append(out, questionSummaryDTO{
			ID:           s.ID.String(),
			QuestionText: s.QuestionText,
			Subject:      s.Subject,
			IsCorrect:    s.IsCorrect,
			ArchivedAt:   s.ArchivedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": out})
}

type syncRequest struct {
	StudentID string           `json:"student_id"`
	Records   []map[string]any `json:"records"`
}

// SyncQuestions ingests raw archive records synced from the client.
// The client historically stored these as untyped key-value maps;
// malformed records are counted and skipped, never defaulted.
func (h *Handle) SyncQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.StudentID) == "" {
		http.Error(w, "student_id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	archived, skipped := 0, 0
	for _, raw := range req.Records {
		rec, err := mistakes.DecodeRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		aq := &store.ArchivedQuestion{
			StudentID:     req.StudentID,
			QuestionText:  rec.QuestionText,
			AnswerText:    rec.AnswerText,
			StudentAnswer: rec.StudentAnswer,
			Subject:       rec.Subject,
			IsCorrect:     rec.IsCorrect,

			ErrorType:           rec.ErrorType,
			ErrorEvidence:       rec.ErrorEvidence,
			ErrorConfidence:     rec.ErrorConfidence,
			LearningSuggestion:  rec.LearningSuggestion,
			ErrorAnalysisStatus: rec.ErrorAnalysisStatus,
		}
		if rec.ArchivedAt != nil {
			aq.ArchivedAt = *rec.ArchivedAt
		}
		if err := h.questions.Insert(ctx, aq); err != nil {
			http.Error(w, "sync error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		archived++
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"archived": archived,
		"skipped":  skipped,
	})
}

// QuestionDetails returns the full archived record. answer_text and
// correct_answer stay separate fields; see store.ArchivedQuestion.
func (h *Handle) QuestionDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad question id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	aq, err := h.questions.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "question not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "get error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":                    aq.ID.String(),
		"student_id":            aq.StudentID,
		"question_text":         aq.QuestionText,
		"answer_text":           aq.AnswerText,
		"correct_answer":        aq.CorrectAnswer,
		"student_answer":        aq.StudentAnswer,
		"subject":               aq.Subject,
		"is_correct":            aq.IsCorrect,
		"error_type":            aq.ErrorType,
		"error_evidence":        aq.ErrorEvidence,
		"error_confidence":      aq.ErrorConfidence,
		"learning_suggestion":   aq.LearningSuggestion,
		"error_analysis_status": aq.ErrorAnalysisStatus,
		"archived_at":           aq.ArchivedAt.UTC().Format(time.RFC3339),
	})
}
