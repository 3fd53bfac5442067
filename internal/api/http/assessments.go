package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtneynewtocode/career-compass/internal/assessment"
	"github.com/courtneynewtocode/career-compass/internal/schema"
	"github.com/courtneynewtocode/career-compass/internal/testdef"
)

// GET /tests
func ListTestsHandler(tests TestCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := tests.List()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		type item struct {
			ID   string `json:"testId"`
			Name string `json:"testName"`
		}
		out := make([]item, 0, len(ids))
		for _, id := range ids {
			def, err := tests.Load(id)
			if err != nil {
				log.Printf("tests: skip %s: %v", id, err)
				continue
			}
			out = append(out, item{ID: def.TestID, Name: def.TestName})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /tests/{testID}
func GetTestHandler(tests TestCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := tests.Load(chi.URLParam(r, "testID"))
		if err != nil {
			if errors.Is(err, testdef.ErrNotFound) {
				http.Error(w, "test not found", 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, http.StatusOK, def)
	}
}

// POST /assessments/{testID}/submit
func SubmitHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub assessment.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		sub.TestID = chi.URLParam(r, "testID")

		out, err := svc.Submit(r.Context(), sub)
		var ve *schema.ValidationError
		switch {
		case errors.Is(err, testdef.ErrNotFound):
			http.Error(w, "test not found", 404)
			return
		case errors.As(err, &ve):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    "invalid demographics",
				"problems": ve.Problems,
			})
			return
		case err != nil:
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
