package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/courtneynewtocode/career-compass/internal/analytics"
	auth "github.com/courtneynewtocode/career-compass/internal/auth/middleware"
	"github.com/courtneynewtocode/career-compass/internal/results"
)

type storageRequest struct {
	AccessKey string           `json:"access_key"`
	Action    string           `json:"action"`
	Data      json.RawMessage  `json:"data"`
	ID        string           `json:"id"`
	Event     *analytics.Event `json:"event"`
}

// statusError carries the HTTP status for a failed storage action.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string { return e.msg }

func badRequest(msg string) error { return &statusError{http.StatusBadRequest, msg} }

// POST /api/storage  { "access_key": "...", "action": "save|list|get|delete|track_event|get_analytics", ... }
//
// Every response is an envelope with a success flag; failures carry a message.
func StorageActionHandler(store results.Store, events EventStore, accessKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req storageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeEnvelope(w, http.StatusBadRequest, map[string]any{"message": "bad json"}, false)
			return
		}
		if !auth.AccessKeyMatches(req.AccessKey, accessKey) {
			writeEnvelope(w, http.StatusForbidden, map[string]any{"message": "Invalid access key"}, false)
			return
		}

		body, err := runStorageAction(r, store, events, req)
		if err != nil {
			status := http.StatusInternalServerError
			var se *statusError
			switch {
			case errors.As(err, &se):
				status = se.status
			case errors.Is(err, results.ErrNotFound):
				status = http.StatusNotFound
			}
			writeEnvelope(w, status, map[string]any{"message": err.Error()}, false)
			return
		}
		writeEnvelope(w, http.StatusOK, body, true)
	}
}

func runStorageAction(r *http.Request, store results.Store, events EventStore, req storageRequest) (map[string]any, error) {
	ctx := r.Context()
	switch req.Action {
	case "save":
		if len(req.Data) == 0 || string(req.Data) == "null" {
			return nil, badRequest("No data provided")
		}
		var res results.Result
		if err := json.Unmarshal(req.Data, &res); err != nil {
			return nil, badRequest("invalid result data: " + err.Error())
		}
		saved, err := store.Save(ctx, res)
		if err != nil {
			return nil, err
		}
		return map[string]any{"id": saved.ID, "message": "Result saved successfully"}, nil

	case "list":
		list, err := store.List(ctx, results.ListOpts{})
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []results.Result{}
		}
		return map[string]any{"data": list, "count": len(list)}, nil

	case "get":
		if req.ID == "" {
			return nil, badRequest("No ID provided")
		}
		res, err := store.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"data": res}, nil

	case "delete":
		if req.ID == "" {
			return nil, badRequest("No ID provided")
		}
		if err := store.Delete(ctx, req.ID); err != nil {
			return nil, err
		}
		return map[string]any{"message": "Result deleted successfully"}, nil

	case "track_event":
		if req.Event == nil || !req.Event.Name.Known() {
			return nil, badRequest("invalid event")
		}
		if err := events.Append(ctx, *req.Event); err != nil {
			return nil, err
		}
		return map[string]any{}, nil

	case "get_analytics":
		s, err := events.Stats(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"stats": s}, nil
	}
	return nil, badRequest(fmt.Sprintf("Invalid action: %s", req.Action))
}

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any, ok bool) {
	body["success"] = ok
	writeJSON(w, status, body)
}
