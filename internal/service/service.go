// Package service implements the mutation workflows over the generic
// store contract. Multi-step writes are explicit sagas: each step has a
// documented compensating action, or a documented best-effort policy
// where no compensation exists. There is no cross-session coordination;
// concurrent callers can race on the same check-then-act windows.
package service

import (
	"strings"

	"haven-data/internal/domain"
)

func persistErr(op, collection string, err error) error {
	return &domain.PersistenceError{Op: op, Collection: collection, Err: err}
}

// trimOrNil trims a string and returns nil for the empty result, the
// store representation of a cleared optional text field.
func trimOrNil(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return t
}
