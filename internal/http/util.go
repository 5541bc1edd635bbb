package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"haven-data/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP statuses. Failed
// mutations return the message of the failing step so the caller can
// display it and retry manually.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, FailWith("validation failed", ve.Fields))
		return
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		writeJSON(w, http.StatusConflict, Fail(ce.Message))
		return
	}
	var se *domain.StateError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusUnprocessableEntity, Fail(se.Message))
		return
	}
	var ne *domain.NotFoundError
	if errors.As(err, &ne) {
		writeJSON(w, http.StatusNotFound, Fail(ne.Error()))
		return
	}
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		writeJSON(w, http.StatusBadGateway, Fail(pe.Error()))
		return
	}
	writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, Fail("method not allowed"))
}

// parseDate accepts "2006-01-02" form dates. The triple return keeps
// "absent" (nil pointer), "clear" (zero time) and "set" apart for
// partial updates.
func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &time.Time{}, nil
	}
	t, err := time.Parse(domain.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nonZeroDate collapses the "clear" sentinel for create requests, where
// an empty date and an absent one mean the same thing.
func nonZeroDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}
