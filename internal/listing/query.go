package listing

import (
	"fmt"
	"strings"

	"github.com/HerbHall/newsroom/internal/apperr"
)

// Whitelist is the closed set of sortable fields of a resource, mapped to the
// SQL expression each one orders by. Only these expressions ever reach an
// ORDER BY clause.
type Whitelist struct {
	Columns map[string]string
	Default string
}

// Allows reports whether field is sortable.
func (w Whitelist) Allows(field string) bool {
	_, ok := w.Columns[field]
	return ok
}

// Source describes how one resource is listed.
type Source struct {
	// Select is the column list of the listing query.
	Select string
	// From is the FROM clause including any joins.
	From string
	// GroupBy is set when Select aggregates over a join.
	GroupBy string
	// CountFrom is the table counted for the total; it must produce one row
	// per listed item.
	CountFrom string
	// Key orders ties. It is the table's primary key.
	Key   string
	Sorts Whitelist
}

// Predicate is an equality filter. Column always comes from code; Value is
// bound as a parameter.
type Predicate struct {
	Column string
	Value  any
}

// Eq returns a Predicate for column = value.
func Eq(column string, value any) Predicate {
	return Predicate{Column: column, Value: value}
}

// Query is SQL text with '?' placeholders and its arguments.
type Query struct {
	SQL  string
	Args []any
}

// Build returns the windowed listing query for c.
func Build(src Source, c Criteria, preds ...Predicate) (Query, error) {
	sortExpr, ok := src.Sorts.Columns[c.SortBy]
	if !ok {
		return Query{}, apperr.Validation(apperr.MsgInvalidQuery).
			Wrap(fmt.Errorf("sort field %q is not sortable", c.SortBy))
	}
	dir := "DESC"
	if c.Order == Asc {
		dir = "ASC"
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(src.Select)
	b.WriteString(" FROM ")
	b.WriteString(src.From)
	args := writeWhere(&b, preds)
	if src.GroupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(src.GroupBy)
	}
	fmt.Fprintf(&b, " ORDER BY %s %s", sortExpr, dir)
	if sortExpr != src.Key {
		fmt.Fprintf(&b, ", %s ASC", src.Key)
	}
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, c.Limit, c.Offset())

	return Query{SQL: b.String(), Args: args}, nil
}

// BuildCount returns the query counting every row matching preds, without
// ordering or window.
func BuildCount(src Source, preds ...Predicate) Query {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(src.CountFrom)
	args := writeWhere(&b, preds)
	return Query{SQL: b.String(), Args: args}
}

func writeWhere(b *strings.Builder, preds []Predicate) []any {
	if len(preds) == 0 {
		return nil
	}
	args := make([]any, 0, len(preds)+2)
	for i, p := range preds {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(p.Column)
		b.WriteString(" = ?")
		args = append(args, p.Value)
	}
	return args
}
