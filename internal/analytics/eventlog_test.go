package analytics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtneynewtocode/career-compass/internal/db"
)

func newRepo(t *testing.T) *Repo {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return NewRepo(h, "")
}

func TestRepoStats(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	events := []Event{
		{Name: TestStarted, SessionID: "s1", TestID: "career-compass"},
		{Name: TestStarted, SessionID: "s2", TestID: "career-compass"},
		{Name: TestStarted, SessionID: "s3", TestID: "career-compass"},
		{Name: PageView, SessionID: "s1"},
		{Name: TestCompleted, SessionID: "s1"},
		{Name: TestCompleted, SessionID: "s2"},
		{Name: EmailSent, SessionID: "s1", Data: map[string]any{"success": true}},
		{Name: EmailSent, SessionID: "s2", Data: map[string]any{"success": false, "error": "timeout"}},
		{Name: EmailSent, SessionID: "s3"},
	}
	for _, e := range events {
		require.NoError(t, r.Append(ctx, e))
	}

	s, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{
		TestStarted:      3,
		TestCompleted:    2,
		CompletionRate:   67,
		EmailSentSuccess: 1,
		EmailSentFailure: 2,
	}, s)
}

func TestRepoStatsEmpty(t *testing.T) {
	s, err := newRepo(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, s)
}

type failingSink struct{ calls int }

func (f *failingSink) Append(context.Context, Event) error {
	f.calls++
	return errors.New("disk full")
}

func TestTrackerSwallowsErrors(t *testing.T) {
	sink := &failingSink{}
	NewTracker(sink).Track(context.Background(), Event{Name: TestStarted})
	assert.Equal(t, 1, sink.calls)

	var nilTracker *Tracker
	nilTracker.Track(context.Background(), Event{Name: TestStarted})
}

func TestEventNames(t *testing.T) {
	assert.True(t, EmailSent.Known())
	assert.False(t, EventName("clicked").Known())
	assert.Regexp(t, `^\d+_[0-9a-f]{13}$`, NewSessionID())
}
