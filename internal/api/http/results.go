package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/courtneynewtocode/career-compass/internal/analytics"
	"github.com/courtneynewtocode/career-compass/internal/assessment"
	auth "github.com/courtneynewtocode/career-compass/internal/auth/middleware"
	"github.com/courtneynewtocode/career-compass/internal/results"
)

// GET /results?q=&test=&sort=&limit=&offset=
func ListResultsHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.List(r.Context(), results.ListOpts{
			Query:  strings.TrimSpace(q.Get("q")),
			TestID: strings.TrimSpace(q.Get("test")),
			Sort:   q.Get("sort"),
			Limit:  parseIntDefault(q.Get("limit"), 0),
			Offset: parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if list == nil {
			list = []results.Result{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /results/stats
func ResultStatsHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), results.ListOpts{})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, http.StatusOK, results.ComputeStats(list, time.Now()))
	}
}

// GET /results/{id}
func GetResultHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			resultError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /results/{id}/report renders the emailed HTML report again.
func ResultReportHandler(store results.Store, svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			resultError(w, err)
			return
		}
		html, err := svc.RenderResult(res)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}
}

// DELETE /results/{id}
func DeleteResultHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.Delete(r.Context(), id); err != nil {
			resultError(w, err)
			return
		}
		log.Printf("results: %s deleted by %s", id, auth.SubjectFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /dashboard loads result stats and analytics concurrently.
func DashboardHandler(store results.Store, events EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			rs results.Stats
			as analytics.Stats
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			list, err := store.List(ctx, results.ListOpts{})
			if err != nil {
				return err
			}
			rs = results.ComputeStats(list, time.Now())
			return nil
		})
		g.Go(func() error {
			var err error
			as, err = events.Stats(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": rs, "analytics": as})
	}
}

func resultError(w http.ResponseWriter, err error) {
	if errors.Is(err, results.ErrNotFound) {
		http.Error(w, "result not found", 404)
		return
	}
	http.Error(w, err.Error(), 500)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
