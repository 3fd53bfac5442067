package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventName string

const (
	TestStarted      EventName = "test_started"
	PageView         EventName = "page_view"
	QuestionAnswered EventName = "question_answered"
	TestCompleted    EventName = "test_completed"
	TestAbandoned    EventName = "test_abandoned"
	EmailSent        EventName = "email_sent"
	Error            EventName = "error"
)

func (n EventName) Known() bool {
	switch n {
	case TestStarted, PageView, QuestionAnswered, TestCompleted, TestAbandoned, EmailSent, Error:
		return true
	}
	return false
}

type Event struct {
	SessionID string         `json:"sessionId"`
	TestID    string         `json:"testId"`
	Name      EventName      `json:"eventName"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewSessionID returns "<unix millis>_<random>".
func NewSessionID() string {
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), u[:13])
}

// Repo appends events to event_log. Rows are never updated.
type Repo struct {
	db     *sql.DB
	siteID string
}

func NewRepo(db *sql.DB, siteID string) *Repo {
	if siteID == "" {
		siteID = "local"
	}
	return &Repo{db: db, siteID: siteID}
}

func (r *Repo) Append(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("encode event data: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, test_id, data, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		r.siteID, string(e.Name), e.SessionID, e.TestID, string(data), e.Timestamp.Unix())
	return err
}

type Stats struct {
	TestStarted      int `json:"test_started"`
	TestCompleted    int `json:"test_completed"`
	CompletionRate   int `json:"completion_rate"` // percent, rounded
	EmailSentSuccess int `json:"email_sent_success"`
	EmailSentFailure int `json:"email_sent_failure"`
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	rows, err := r.db.QueryContext(ctx,
		`SELECT typ, COUNT(*) FROM event_log WHERE typ IN ($1,$2) GROUP BY typ`,
		string(TestStarted), string(TestCompleted))
	if err != nil {
		return s, err
	}
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			rows.Close()
			return s, err
		}
		switch EventName(typ) {
		case TestStarted:
			s.TestStarted = n
		case TestCompleted:
			s.TestCompleted = n
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return s, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT data FROM event_log WHERE typ=$1`, string(EmailSent))
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return s, err
		}
		var d struct {
			Success bool `json:"success"`
		}
		_ = json.Unmarshal([]byte(data), &d)
		if d.Success {
			s.EmailSentSuccess++
		} else {
			s.EmailSentFailure++
		}
	}
	if err := rows.Err(); err != nil {
		return s, err
	}

	if s.TestStarted > 0 {
		s.CompletionRate = int(math.Round(float64(s.TestCompleted) / float64(s.TestStarted) * 100))
	}
	return s, nil
}
