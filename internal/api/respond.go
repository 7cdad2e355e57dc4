package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lachiem1/weekwise/internal/budget"
)

type errorBody struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Onboarding bool   `json:"onboarding,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// Validation messages are shown verbatim; anything unexpected is logged and
// reported generically.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *budget.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Msg, Field: verr.Field})
	case errors.Is(err, budget.ErrNoPayday):
		writeJSON(w, http.StatusConflict, errorBody{Error: "set your payday first", Onboarding: true})
	case errors.Is(err, budget.ErrCycleActive):
		writeError(w, http.StatusConflict, budget.ErrCycleActive.Error())
	case errors.Is(err, budget.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, budget.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &budget.ValidationError{Field: "body", Msg: "invalid JSON body"}
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &budget.ValidationError{Field: "id", Msg: "id must be a positive integer"}
	}
	return id, nil
}

// today returns ?date= when present, the handler clock otherwise.
func (h *Handler) today(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return budget.StartOfDay(h.Now()), nil
	}
	return budget.ParseDate("date", raw, time.Local)
}
