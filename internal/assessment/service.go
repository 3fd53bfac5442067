// Package assessment runs a completed submission through scoring, the
// integrity check, storage, email delivery and analytics.
package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/courtneynewtocode/career-compass/internal/analytics"
	"github.com/courtneynewtocode/career-compass/internal/integrity"
	"github.com/courtneynewtocode/career-compass/internal/mailer"
	"github.com/courtneynewtocode/career-compass/internal/metrics"
	"github.com/courtneynewtocode/career-compass/internal/render"
	"github.com/courtneynewtocode/career-compass/internal/results"
	"github.com/courtneynewtocode/career-compass/internal/schema"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

type Definitions interface {
	Load(id string) (*scoring.TestDefinition, error)
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, m mailer.Message) error
}

type Submission struct {
	TestID       string             `json:"testId"`
	SessionID    string             `json:"sessionId,omitempty"`
	Demographics scoring.Respondent `json:"demographics"`
	Answers      scoring.Answers    `json:"answers"`
	StartedAt    *time.Time         `json:"startedAt,omitempty"`
}

type Outcome struct {
	ResultID          string                     `json:"resultId,omitempty"`
	Stored            bool                       `json:"stored"`
	Rejected          bool                       `json:"rejected,omitempty"`
	Emailed           bool                       `json:"emailed"`
	EmailError        string                     `json:"emailError,omitempty"`
	Report            *scoring.Report            `json:"report,omitempty"`
	Summary           *render.Summary            `json:"summary,omitempty"`
	CompletionMessage *scoring.CompletionMessage `json:"completionMessage,omitempty"`
	Integrity         integrity.Verdict          `json:"-"`
}

type options struct {
	showResults      bool
	storeResults     bool
	rejectSuspicious bool
	backend          string
}

type Option func(*options)

// ShowResults controls whether the report is returned to the respondent.
func ShowResults(on bool) Option { return func(o *options) { o.showResults = on } }

// StoreResults turns persistence and analytics on or off.
func StoreResults(on bool) Option { return func(o *options) { o.storeResults = on } }

// RejectSuspicious skips storage for submissions the integrity check flags.
func RejectSuspicious(on bool) Option { return func(o *options) { o.rejectSuspicious = on } }

// Backend names the result store in metrics labels.
func Backend(name string) Option { return func(o *options) { o.backend = name } }

type Service struct {
	defs    Definitions
	store   results.Store
	mail    Mailer
	tracker *analytics.Tracker
	metrics *metrics.Metrics
	opts    options
	now     func() time.Time
}

// NewService wires the pipeline. store, mail, tracker and m may be nil.
func NewService(defs Definitions, store results.Store, mail Mailer, tracker *analytics.Tracker, m *metrics.Metrics, opts ...Option) *Service {
	o := options{showResults: true, storeResults: true, backend: "fs"}
	for _, fn := range opts {
		fn(&o)
	}
	return &Service{defs: defs, store: store, mail: mail, tracker: tracker, metrics: m, opts: o, now: time.Now}
}

// Definition exposes the loader to callers that only hold the service.
func (s *Service) Definition(id string) (*scoring.TestDefinition, error) { return s.defs.Load(id) }

// Submit scores a submission and runs the side effects. Errors are returned
// only for an unknown test or invalid demographics; storage and mail
// failures are logged and reported in the Outcome.
func (s *Service) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	def, err := s.defs.Load(sub.TestID)
	if err != nil {
		return Outcome{}, err
	}
	if err := schema.ValidateDemographics(sub.Demographics, def.Demographics.Fields); err != nil {
		return Outcome{}, err
	}

	start := s.now()
	scores := scoring.CalculateScores(def, sub.Answers)
	report := scoring.PrepareReport(def, scores, sub.Demographics)
	s.metrics.ObserveScoring(s.now().Sub(start))

	verdict := integrity.ValidateAssessment(def, sub.Answers)
	s.metrics.Verdict(string(verdict.Reason))
	if !verdict.Valid {
		log.Printf("assessment: %s submission flagged: %s", sub.TestID, verdict.Reason)
	}

	submittedAt := s.now()
	out := Outcome{Integrity: verdict, CompletionMessage: def.Reporting.CompletionMessage}

	if s.opts.storeResults && s.store != nil {
		if !verdict.Valid && s.opts.rejectSuspicious {
			out.Rejected = true
		} else {
			id, err := s.save(ctx, def, sub, scores, report, verdict, submittedAt)
			s.metrics.StoreOp(s.opts.backend, "save", err)
			if err != nil {
				log.Printf("results: save %s: %v", sub.TestID, err)
			} else {
				out.ResultID, out.Stored = id, true
			}
		}
	}

	out.Emailed, out.EmailError = s.email(ctx, def, sub, report, submittedAt)

	if s.opts.storeResults {
		data := map[string]any{"studentGrade": gradeOf(sub.Demographics)}
		if sub.StartedAt != nil {
			data["completionTimeSec"] = completionSeconds(sub.StartedAt, submittedAt)
		}
		if out.ResultID != "" {
			data["resultId"] = out.ResultID
		}
		s.tracker.Track(ctx, analytics.Event{
			SessionID: sub.SessionID, TestID: sub.TestID, Name: analytics.TestCompleted,
			Timestamp: submittedAt, Data: data,
		})
	}
	s.metrics.Submission(sub.TestID)

	if s.opts.showResults {
		out.Report = report
		out.Summary = render.Summarize(report)
	}
	return out, nil
}

func (s *Service) save(ctx context.Context, def *scoring.TestDefinition, sub Submission,
	scores *scoring.Scores, report *scoring.Report, v integrity.Verdict, at time.Time) (string, error) {
	sj, err := json.Marshal(scores)
	if err != nil {
		return "", err
	}
	rj, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	r, err := s.store.Save(ctx, results.Result{
		TestID:         def.TestID,
		TestName:       def.TestName,
		SubmittedAt:    at,
		StartedAt:      sub.StartedAt,
		CompletionTime: completionSeconds(sub.StartedAt, at),
		Demographics:   sub.Demographics,
		Answers:        sub.Answers,
		Scores:         sj,
		Report:         rj,
		Integrity:      &v,
		Flagged:        !v.Valid,
	})
	return r.ID, err
}

func (s *Service) email(ctx context.Context, def *scoring.TestDefinition, sub Submission,
	report *scoring.Report, at time.Time) (bool, string) {
	if s.mail == nil || !s.mail.Enabled() {
		s.metrics.Email("disabled")
		return false, ""
	}
	html, err := render.HTML(def, report, at)
	if err == nil {
		name := sub.Demographics["studentName"]
		if name == "" {
			name = "Unknown Student"
		}
		err = s.mail.Send(ctx, mailer.Message{
			Subject: fmt.Sprintf("%s Assessment Results - %s", def.TestName, name),
			HTML:    html,
			ReplyTo: sub.Demographics["email"],
		})
	}

	data := map[string]any{"success": err == nil}
	outcome := "sent"
	if err != nil {
		log.Printf("mailer: %s: %v", sub.TestID, err)
		data["error"] = err.Error()
		outcome = "failed"
	}
	s.metrics.Email(outcome)
	if s.opts.storeResults {
		s.tracker.Track(ctx, analytics.Event{
			SessionID: sub.SessionID, TestID: sub.TestID, Name: analytics.EmailSent,
			Timestamp: at, Data: data,
		})
	}
	if err != nil {
		return false, err.Error()
	}
	return true, ""
}

// RenderResult rebuilds the HTML report of a stored result from its answers.
// Scoring is deterministic, so the output matches what was sent at
// submission time as long as the definition has not changed.
func (s *Service) RenderResult(r results.Result) (string, error) {
	def, err := s.defs.Load(r.TestID)
	if err != nil {
		return "", err
	}
	report := scoring.PrepareReport(def, scoring.CalculateScores(def, r.Answers), r.Demographics)
	return render.HTML(def, report, r.SubmittedAt)
}

func completionSeconds(started *time.Time, at time.Time) int {
	if started == nil || started.IsZero() || at.Before(*started) {
		return 0
	}
	return int(at.Sub(*started).Round(time.Second) / time.Second)
}

func gradeOf(d scoring.Respondent) string {
	if g := d["grade"]; g != "" {
		return g
	}
	return "unknown"
}
