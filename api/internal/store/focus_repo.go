package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type FocusRepo struct{ DB *sql.DB }

func NewFocusRepo(db *sql.DB) *FocusRepo { return &FocusRepo{DB: db} }

// FocusSession is one completed (or abandoned) focus-timer run.
type FocusSession struct {
	ID        uuid.UUID
	StudentID string
	StartedAt time.Time
	Minutes   int
	Completed bool // false when the timer was abandoned; grows no tomato
}

// FocusSummary aggregates a student's focus history for a window.
type FocusSummary struct {
	Sessions      int     `json:"sessions"`
	Completed     int     `json:"completed"`
	TotalMinutes  int     `json:"total_minutes"`
	Tomatoes      int     `json:"tomatoes"` // completed sessions, the garden currency
	CompletionPct float64 `json:"completion_pct"`
}

func (r *FocusRepo) Insert(ctx context.Context, s *FocusSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}
	const q = `
insert into focus_sessions (id, student_id, started_at, minutes, completed)
values ($1,$2,$3,$4,$5)`
	_, err := r.DB.ExecContext(ctx, q, s.ID, s.StudentID, s.StartedAt, s.Minutes, s.Completed)
	return err
}

// Summary aggregates sessions started after `since` (zero = all time).
func (r *FocusRepo) Summary(ctx context.Context, studentID string, since time.Time) (FocusSummary, error) {
	const q = `
select count(*),
       count(*) filter (where completed),
       coalesce(sum(minutes) filter (where completed), 0)
from focus_sessions
where student_id = $1 and started_at >= $2`
	var sum FocusSummary
	if err := r.DB.QueryRowContext(ctx, q, studentID, since).
		Scan(&sum.Sessions, &sum.Completed, &sum.TotalMinutes); err != nil {
		return FocusSummary{}, err
	}
	sum.Tomatoes = sum.Completed
	if sum.Sessions > 0 {
		sum.CompletionPct = float64(sum.Completed) / float64(sum.Sessions)
	}
	return sum, nil
}
