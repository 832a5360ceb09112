package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"study-helper/api/internal/report"
)

type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// Find returns the cached report for (studentID, timeframe). If maxAge
// > 0 and the cached copy is older, returns ErrNotFound so the caller
// regenerates.
func (r *ReportRepo) Find(ctx context.Context, studentID, timeframe string, maxAge time.Duration) (report.Report, error) {
	const q = `select report_json, generated_at
	           from parent_reports
	           where student_id=$1 and timeframe=$2`
	var (
		js []byte
		ts time.Time
	)
	if err := r.DB.QueryRowContext(ctx, q, studentID, timeframe).Scan(&js, &ts); err != nil {
		return report.Report{}, err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return report.Report{}, sql.ErrNoRows
	}
	var rep report.Report
	if err := json.Unmarshal(js, &rep); err != nil {
		// broken cache counts as absent
		return report.Report{}, sql.ErrNoRows
	}
	return rep, nil
}

// Upsert stores/refreshes the cached report. PK: (student_id, timeframe).
func (r *ReportRepo) Upsert(ctx context.Context, rep report.Report) error {
	js, _ := json.Marshal(rep)
	const q = `
insert into parent_reports(student_id, timeframe, report_json, generated_at)
values ($1,$2,$3,$4)
on conflict (student_id, timeframe)
do update set report_json=excluded.report_json, generated_at=excluded.generated_at`
	_, err := r.DB.ExecContext(ctx, q, rep.StudentID, string(rep.Timeframe), js, rep.GeneratedAt)
	return err
}
