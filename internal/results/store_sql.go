package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps results in the results table. The full result is stored as
// JSON in data; the other columns exist for filtering.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Save(ctx context.Context, r Result) (Result, error) {
	r, err := prepare(r, s.now())
	if err != nil {
		return Result{}, err
	}
	buf, err := json.Marshal(r)
	if err != nil {
		return Result{}, fmt.Errorf("encode result: %w", err)
	}
	d := r.Demographics
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id,test_id,student_name,email,grade,flagged,data,submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.TestID, d["studentName"], d["email"], d["grade"], r.Flagged, string(buf), r.SubmittedAt.UnixMilli())
	if err != nil {
		return Result{}, fmt.Errorf("save result: %w", err)
	}
	return r, nil
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Result, error) {
	q := `SELECT data FROM results`
	var args []any
	if opts.TestID != "" {
		q += ` WHERE test_id=$1`
		args = append(args, opts.TestID)
	}
	q += ` ORDER BY submitted_at DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Result
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r Result
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("invalid result data: %w", err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return Apply(list, opts), nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Result, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM results WHERE id=$1`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, err
	}
	var r Result
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return Result{}, fmt.Errorf("invalid result data: %w", err)
	}
	return r, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
