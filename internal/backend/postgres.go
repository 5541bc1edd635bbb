package backend

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"haven-data/internal/domain"
)

// Postgres implements Client directly against a PostgreSQL database.
// The schema carries the houses->beds ON DELETE CASCADE constraint, so
// Delete(Houses, ...) removes dependent beds at the store level.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Select(ctx context.Context, collection string, filter Filter) ([]domain.Row, error) {
	where, args := whereClause(filter, 1)
	q := "SELECT * FROM " + collection + where

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (p *Postgres) Insert(ctx context.Context, collection string, in []domain.Row) ([]domain.Row, error) {
	if len(in) == 0 {
		return []domain.Row{}, nil
	}

	cols := sortedKeys(in[0])
	var (
		args   []any
		values []string
	)
	n := 1
	for _, row := range in {
		ph := make([]string, 0, len(cols))
		for _, c := range cols {
			ph = append(ph, fmt.Sprintf("$%d", n))
			args = append(args, row[c])
			n++
		}
		values = append(values, "("+strings.Join(ph, ", ")+")")
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s RETURNING *",
		collection, strings.Join(cols, ", "), strings.Join(values, ", "),
	)
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (p *Postgres) Update(ctx context.Context, collection string, filter Filter, fields domain.Row) ([]domain.Row, error) {
	if len(fields) == 0 {
		return p.Select(ctx, collection, filter)
	}

	cols := sortedKeys(fields)
	sets := make([]string, 0, len(cols))
	var args []any
	n := 1
	for _, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, n))
		args = append(args, fields[c])
		n++
	}

	where, whereArgs := whereClause(filter, n)
	args = append(args, whereArgs...)

	q := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", collection, strings.Join(sets, ", "), where)
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (p *Postgres) Delete(ctx context.Context, collection string, filter Filter) error {
	where, args := whereClause(filter, 1)
	_, err := p.db.ExecContext(ctx, "DELETE FROM "+collection+where, args...)
	return err
}

func whereClause(filter Filter, firstArg int) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	cols := sortedKeys(filter)
	conds := make([]string, 0, len(cols))
	var args []any
	n := firstArg
	for _, c := range cols {
		if filter[c] == nil {
			conds = append(conds, c+" IS NULL")
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", c, n))
		args = append(args, filter[c])
		n++
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scanRows(rows *sql.Rows) ([]domain.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []domain.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := domain.Row{}
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
