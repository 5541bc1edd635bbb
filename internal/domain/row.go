// Package domain holds the entities of the housing data model and their
// row codecs. Rows are generic column->value maps; every store backend
// speaks rows, and the typed structs here are decoded at the service
// boundary.
package domain

import (
	"strconv"
	"time"
)

// Row is one record as the stores see it.
type Row = map[string]any

// DateOnly is the wire format for date columns.
const DateOnly = "2006-01-02"

// Decode helpers. Values may arrive as native Go types (memory backend),
// strings or []byte (database/sql), or float64 (JSON numbers from the
// REST backend), so each helper accepts all of them.

func rowString(r Row, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func rowStringPtr(r Row, key string) *string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	s := rowString(r, key)
	if s == "" {
		return nil
	}
	return &s
}

func rowInt(r Row, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case []byte:
		if n, err := strconv.Atoi(string(v)); err == nil {
			return n
		}
	}
	return 0
}

func rowFloat(r Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return f
		}
	}
	return 0
}

func rowDate(r Row, key string) *time.Time {
	switch v := r[key].(type) {
	case time.Time:
		t := v
		return &t
	case string:
		return parseDate(v)
	case []byte:
		return parseDate(string(v))
	}
	return nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(DateOnly, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
