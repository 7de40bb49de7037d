// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"database/sql"
	"strings"
)

// queryBuilder appends AND-ed filters to a base query that already has a
// WHERE clause.
type queryBuilder struct {
	baseQuery string
	args      []interface{}
	filters   []string
}

func newQueryBuilder(baseQuery string, args ...interface{}) *queryBuilder {
	qb := &queryBuilder{
		baseQuery: baseQuery,
		args:      make([]interface{}, 0, 8+len(args)),
		filters:   make([]string, 0, 4),
	}
	qb.args = append(qb.args, args...)
	return qb
}

// addNotIn excludes column values in ids. Empty ids add nothing.
func (qb *queryBuilder) addNotIn(column string, ids []string) *queryBuilder {
	if len(ids) == 0 {
		return qb
	}
	qb.filters = append(qb.filters, column+" NOT IN ("+placeholders(len(ids))+")")
	for _, id := range ids {
		qb.args = append(qb.args, id)
	}
	return qb
}

// addLimit binds the LIMIT argument; the suffix passed to build must end
// with "LIMIT ?".
func (qb *queryBuilder) addLimit(limit int) *queryBuilder {
	qb.args = append(qb.args, limit)
	return qb
}

func (qb *queryBuilder) build(suffix string) (string, []interface{}) {
	query := qb.baseQuery
	if len(qb.filters) > 0 {
		query += " AND " + strings.Join(qb.filters, " AND ")
	}
	if suffix != "" {
		query += " " + suffix
	}
	return query, qb.args
}

// placeholders returns n comma-separated "?" markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using scan.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
