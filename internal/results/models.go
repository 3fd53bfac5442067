package results

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtneynewtocode/career-compass/internal/integrity"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

var (
	ErrNotFound = errors.New("result not found")
	ErrNoData   = errors.New("no data provided")
)

// Result is one stored submission. Scores and Report are kept as the JSON the
// engine produced so that stored results survive changes to the view types.
type Result struct {
	ID             string             `json:"id"`
	TestID         string             `json:"testId"`
	TestName       string             `json:"testName,omitempty"`
	SubmittedAt    time.Time          `json:"submittedAt"`
	StartedAt      *time.Time         `json:"startedAt,omitempty"`
	CompletionTime int                `json:"completionTime,omitempty"` // seconds
	Demographics   scoring.Respondent `json:"demographics"`
	Answers        scoring.Answers    `json:"answers,omitempty"`
	Scores         json.RawMessage    `json:"scores,omitempty"`
	Report         json.RawMessage    `json:"report,omitempty"`
	Integrity      *integrity.Verdict `json:"integrity,omitempty"`
	Flagged        bool               `json:"flagged,omitempty"`
}

func (r Result) StudentName() string { return r.Demographics["studentName"] }

type ListOpts struct {
	Query  string // case-insensitive match on name, email, grade
	TestID string
	Sort   string // date-desc (default)|date-asc|name-asc|name-desc
	Limit  int    // 0 = no limit
	Offset int
}

type Store interface {
	Save(ctx context.Context, r Result) (Result, error) // assigns ID
	List(ctx context.Context, opts ListOpts) ([]Result, error)
	Get(ctx context.Context, id string) (Result, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns an id of the form YYYY-MM-DD_HHMMSS_<13 hex chars>, which
// sorts by submission time.
func NewID(now time.Time) string {
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	return now.Format("2006-01-02_150405") + "_" + u[:13]
}

// prepare fills the fields every backend sets on save.
func prepare(r Result, now time.Time) (Result, error) {
	if r.TestID == "" {
		return Result{}, errors.New("testId is required")
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = now
	}
	r.ID = NewID(now)
	if r.Demographics == nil {
		r.Demographics = scoring.Respondent{}
	}
	return r, nil
}
