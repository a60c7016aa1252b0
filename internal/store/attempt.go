package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, a *Attempt) error {
	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	answer := string(a.Answer)
	if answer == "" {
		answer = "null"
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (session_id, exercise_id, scenario_id, question_id, kind, verdict, score, max_score, answer, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.ExerciseID, a.ScenarioID, a.QuestionID, a.Kind, a.Verdict,
		a.Score, a.MaxScore, answer, ts.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("attempt id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	where, args := opts.filter()
	q := `SELECT id, session_id, exercise_id, scenario_id, question_id, kind, verdict, score, max_score, answer, timestamp
		FROM attempts` + where + ` ORDER BY id DESC`
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a      Attempt
			answer string
			ms     int64
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &a.ExerciseID, &a.ScenarioID, &a.QuestionID,
			&a.Kind, &a.Verdict, &a.Score, &a.MaxScore, &answer, &ms); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Answer = []byte(answer)
		a.Timestamp = time.UnixMilli(ms)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Stats(ctx context.Context, sessionID string) (AttemptStats, error) {
	where, args := QueryOpts{SessionID: sessionID}.filter()
	q := `SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN verdict = 'correct' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN verdict = 'partial' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN verdict = 'incorrect' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(max_score), 0)
		FROM attempts` + where

	var st AttemptStats
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&st.Total, &st.Correct, &st.Partial, &st.Incorrect, &st.Score, &st.MaxScore,
	)
	if err != nil {
		return AttemptStats{}, fmt.Errorf("attempt stats: %w", err)
	}
	return st, nil
}

func (o QueryOpts) filter() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if o.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, o.SessionID)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
