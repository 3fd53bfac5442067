package results

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtneynewtocode/career-compass/internal/db"
	"github.com/courtneynewtocode/career-compass/internal/integrity"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
	"github.com/courtneynewtocode/career-compass/internal/storage"
)

func newFileStore(t *testing.T) (*FileStore, *storage.FSStore) {
	t.Helper()
	bs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	s := NewFileStore(bs)
	return s, bs
}

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "r.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return NewSQLStore(h)
}

func stores(t *testing.T) map[string]Store {
	fs, _ := newFileStore(t)
	return map[string]Store{"fs": fs, "sql": newSQLStore(t)}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v := 4
			in := Result{
				TestID:       "career-compass",
				TestName:     "Career Compass",
				SubmittedAt:  day0,
				Demographics: scoring.Respondent{"studentName": "Thandi M", "email": "t@x.io"},
				Answers:      scoring.Answers{"realistic": {&v, nil}},
				Report:       json.RawMessage(`{"sections":{}}`),
				Integrity:    &integrity.Verdict{Valid: true, Reason: integrity.ReasonGenuine},
			}
			saved, err := s.Save(ctx, in)
			require.NoError(t, err)
			require.NotEmpty(t, saved.ID)

			got, err := s.Get(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, saved.ID, got.ID)
			assert.Equal(t, "Thandi M", got.StudentName())
			assert.True(t, got.SubmittedAt.Equal(day0))
			assert.JSONEq(t, `{"sections":{}}`, string(got.Report))
			require.Len(t, got.Answers["realistic"], 2)
			assert.Equal(t, 4, *got.Answers["realistic"][0])
			assert.Nil(t, got.Answers["realistic"][1])
			assert.Equal(t, integrity.ReasonGenuine, got.Integrity.Reason)

			other := in
			other.TestID = "values"
			other.SubmittedAt = day0.Add(time.Hour)
			other.Demographics = scoring.Respondent{"studentName": "Ayesha"}
			_, err = s.Save(ctx, other)
			require.NoError(t, err)

			list, err := s.List(ctx, ListOpts{})
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "values", list[0].TestID)

			list, err = s.List(ctx, ListOpts{TestID: "career-compass"})
			require.NoError(t, err)
			require.Len(t, list, 1)

			require.NoError(t, s.Delete(ctx, saved.ID))
			_, err = s.Get(ctx, saved.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrNotFound)
		})
	}
}

func TestStoresRequireTestID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Save(context.Background(), Result{})
			assert.Error(t, err)
		})
	}
}

func TestFileStoreNaming(t *testing.T) {
	s, bs := newFileStore(t)
	s.now = func() time.Time { return day0 }
	r, err := s.Save(context.Background(), Result{
		TestID:       "career-compass",
		Demographics: scoring.Respondent{"studentName": "Jean-Luc O'Brien"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.ID, "2025-03-10_120000_"))
	assert.True(t, r.SubmittedAt.Equal(day0))

	keys, err := bs.List("results/")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "results/"+r.ID+"_career-compass_Jean-Luc_OBrien.json", keys[0])

	_, err = s.Get(context.Background(), "../"+r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
