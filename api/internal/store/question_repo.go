package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"study-helper/api/internal/mistakes"
)

var ErrNotFound = sql.ErrNoRows

type QuestionRepo struct{ DB *sql.DB }

func NewQuestionRepo(db *sql.DB) *QuestionRepo { return &QuestionRepo{DB: db} }

// ArchivedQuestion is one row of the question archive.
//
// CorrectAnswer is stored separately from AnswerText on purpose: for
// some graded records the two diverge (tracked bug on the client), and
// merging them here would hide which value the grader actually used.
type ArchivedQuestion struct {
	ID            uuid.UUID
	StudentID     string
	QuestionText  string
	AnswerText    string
	CorrectAnswer string
	StudentAnswer string
	Subject       string
	IsCorrect     *bool

	ErrorType           string
	ErrorEvidence       string
	ErrorConfidence     float64
	LearningSuggestion  string
	ErrorAnalysisStatus string

	ArchivedAt time.Time
}

// QuestionSummary is the list-view slice of an archived question.
type QuestionSummary struct {
	ID           uuid.UUID
	QuestionText string
	Subject      string
	IsCorrect    *bool
	ArchivedAt   time.Time
}

// Insert archives one question. The ID is generated here when zero.
func (r *QuestionRepo) Insert(ctx context.Context, q *ArchivedQuestion) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.ArchivedAt.IsZero() {
		q.ArchivedAt = time.Now().UTC()
	}
	const ins = `
insert into archived_questions (
  id, student_id, question_text, answer_text, correct_answer, student_answer,
  subject, is_correct, error_type, error_evidence, error_confidence,
  learning_suggestion, error_analysis_status, archived_at
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.DB.ExecContext(ctx, ins,
		q.ID, q.StudentID, q.QuestionText, q.AnswerText, q.CorrectAnswer, q.StudentAnswer,
		q.Subject, q.IsCorrect, q.ErrorType, q.ErrorEvidence, q.ErrorConfidence,
		q.LearningSuggestion, q.ErrorAnalysisStatus, q.ArchivedAt,
	)
	return err
}

// ListRecent returns the newest summaries for a student, newest first.
func (r *QuestionRepo) ListRecent(ctx context.Context, studentID string, limit int) ([]QuestionSummary, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	const q = `
select id, question_text, coalesce(subject,'') as subject, is_correct, archived_at
from archived_questions
where student_id = $1
order by archived_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuestionSummary
	for rows.Next() {
		var (
			s         QuestionSummary
			isCorrect sql.NullBool
		)
		if err := rows.Scan(&s.ID, &s.QuestionText, &s.Subject, &isCorrect, &s.ArchivedAt); err != nil {
			return nil, err
		}
		if isCorrect.Valid {
			b := isCorrect.Bool
			s.IsCorrect = &b
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns the full archived record.
func (r *QuestionRepo) Get(ctx context.Context, id uuid.UUID) (*ArchivedQuestion, error) {
	const q = `
select id, student_id, question_text,
       coalesce(answer_text,'') as answer_text,
       coalesce(correct_answer,'') as correct_answer,
       coalesce(student_answer,'') as student_answer,
       coalesce(subject,'') as subject,
       is_correct,
       coalesce(error_type,'') as error_type,
       coalesce(error_evidence,'') as error_evidence,
       coalesce(error_confidence,0) as error_confidence,
       coalesce(learning_suggestion,'') as learning_suggestion,
       coalesce(error_analysis_status,'') as error_analysis_status,
       archived_at
from archived_questions
where id = $1`
	row := r.DB.QueryRowContext(ctx, q, id)

	var (
		aq        ArchivedQuestion
		isCorrect sql.NullBool
	)
	if err := row.Scan(&aq.ID, &aq.StudentID, &aq.QuestionText,
		&aq.AnswerText, &aq.CorrectAnswer, &aq.StudentAnswer, &aq.Subject,
		&isCorrect, &aq.ErrorType, &aq.ErrorEvidence, &aq.ErrorConfidence,
		&aq.LearningSuggestion, &aq.ErrorAnalysisStatus, &aq.ArchivedAt); err != nil {
		return nil, err
	}
	if isCorrect.Valid {
		b := isCorrect.Bool
		aq.IsCorrect = &b
	}
	return &aq, nil
}

// SetErrorAnalysis fills in the async error-analysis outcome for one
// archived question.
func (r *QuestionRepo) SetErrorAnalysis(ctx context.Context, id uuid.UUID, errorType, evidence, suggestion string, confidence float64) error {
	const q = `
update archived_questions
set error_type=$2, error_evidence=$3, learning_suggestion=$4,
    error_confidence=$5, error_analysis_status='done'
where id=$1`
	res, err := r.DB.ExecContext(ctx, q, id, errorType, evidence, suggestion, confidence)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

// Records loads a student's archive as typed records for the mistake
// grouper and the progress aggregator, oldest first so grouping keeps
// encounter order.
func (r *QuestionRepo) Records(ctx context.Context, studentID string) ([]mistakes.Record, error) {
	const q = `
select question_text,
       coalesce(student_answer,'') as student_answer,
       coalesce(answer_text,'') as answer_text,
       coalesce(subject,'') as subject,
       is_correct,
       coalesce(error_type,'') as error_type,
       coalesce(error_evidence,'') as error_evidence,
       coalesce(error_confidence,0) as error_confidence,
       coalesce(learning_suggestion,'') as learning_suggestion,
       coalesce(error_analysis_status,'') as error_analysis_status,
       archived_at
from archived_questions
where student_id = $1
order by archived_at asc`
	rows, err := r.DB.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []mistakes.Record
	for rows.Next() {
		var (
			rec        mistakes.Record
			isCorrect  sql.NullBool
			archivedAt time.Time
		)
		if err := rows.Scan(&rec.QuestionText, &rec.StudentAnswer, &rec.AnswerText,
			&rec.Subject, &isCorrect, &rec.ErrorType, &rec.ErrorEvidence,
			&rec.ErrorConfidence, &rec.LearningSuggestion, &rec.ErrorAnalysisStatus,
			&archivedAt); err != nil {
			return nil, err
		}
		if isCorrect.Valid {
			b := isCorrect.Bool
			rec.IsCorrect = &b
		}
		ts := archivedAt
		rec.ArchivedAt = &ts
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PurgeOlderThan trims ancient archive rows so the table does not grow
// without bound.
func (r *QuestionRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from archived_questions where archived_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
