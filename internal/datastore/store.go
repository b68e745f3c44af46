// Package datastore is the generic table-oriented persistence interface the
// core talks to. Rows are decoded into the caller's model slices.
package datastore

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

type Op string

const (
	OpEq  Op = "="
	OpNeq Op = "<>"
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "IN"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, v any) Filter  { return Filter{Column: column, Op: OpEq, Value: v} }
func Neq(column string, v any) Filter { return Filter{Column: column, Op: OpNeq, Value: v} }
func Gte(column string, v any) Filter { return Filter{Column: column, Op: OpGte, Value: v} }
func Lt(column string, v any) Filter  { return Filter{Column: column, Op: OpLt, Value: v} }
func Gt(column string, v any) Filter  { return Filter{Column: column, Op: OpGt, Value: v} }
func In(column string, v any) Filter  { return Filter{Column: column, Op: OpIn, Value: v} }

type Query struct {
	Filters []Filter
	Order   string
	Desc    bool
	Limit   int
	// Embed names associations to load alongside each row.
	Embed []string
}

func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = column
	q.Desc = desc
	return q
}

func (q Query) With(assoc ...string) Query {
	q.Embed = append(q.Embed, assoc...)
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

type Store interface {
	// Get loads every matching row into dest (a pointer to a slice).
	Get(ctx context.Context, table string, q Query, dest any) error
	// First loads the first matching row into dest or returns
	// httperr.ErrNotFound.
	First(ctx context.Context, table string, q Query, dest any) error
	Count(ctx context.Context, table string, filters ...Filter) (int64, error)
	Insert(ctx context.Context, table string, record any) error
	// Update applies patch to matching rows and reports how many changed.
	// Callers express conditional writes through filters.
	Update(ctx context.Context, table string, filters []Filter, patch map[string]any) (int64, error)
	Upsert(ctx context.Context, table string, record any, conflictColumns ...string) error
	// Delete removes matching rows; model is a pointer to the row type.
	Delete(ctx context.Context, table string, model any, filters ...Filter) (int64, error)
	// Tx runs fn against a store bound to a single transaction.
	Tx(ctx context.Context, fn func(tx Store) error) error
}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdentifier(name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("datastore: invalid identifier %q", name)
	}
	return nil
}

func normalize(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	return v
}
