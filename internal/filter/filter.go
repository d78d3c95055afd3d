// Package filter turns optional search criteria into parameterized SQL.
//
// Every criterion is a pointer: nil means "not filtered", anything else
// (including "" and false) is matched. Values are always bound through
// placeholders, never interpolated, and the argument list follows the order
// in which predicates were appended. The package performs no I/O.
package filter

import (
	"strconv"
	"strings"

	"github.com/matthewjhunter/longbox/internal/errs"
)

// Table names for the three record kinds.
const (
	SequencedTable   = "sequenced_items"
	CategorizedTable = "categorized_items"
	NarrativeTable   = "narrative_items"
)

// Range is an inclusive [Start, End] interval. Ranges are passed through
// unvalidated: Start > End simply matches nothing.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Query is a SQL statement and the values for its placeholders.
type Query struct {
	SQL  string
	Args []any
}

// Term is a single equality predicate.
type Term struct {
	Column string
	Value  any
}

// Equal builds an AND-combined exact-match query over table. Terms are
// emitted in the order given.
func Equal(table string, terms ...Term) Query {
	b := newBuilder(table)
	b.eqAll(terms)
	return b.build()
}

// selectLists maps a table to the columns it is read with. Columns that
// scan into non-pointer fields are coalesced so a NULL cell reads as the
// zero value.
var selectLists = map[string]string{
	CategorizedTable: "id, COALESCE(title, '') AS title, COALESCE(writer, '') AS writer, " +
		"COALESCE(artist, '') AS artist, COALESCE(collection, '') AS collection, " +
		"COALESCE(publisher, '') AS publisher, COALESCE(issues, '') AS issues, " +
		"COALESCE(main_character, '') AS main_character, COALESCE(event, 0) AS event, " +
		"COALESCE(story_year, 0) AS story_year, COALESCE(category, '') AS category",
	NarrativeTable: "id, COALESCE(story_name, '') AS story_name, " +
		"COALESCE(series_name, '') AS series_name, COALESCE(year, 0) AS year",
}

type builder struct {
	table string
	conds []string
	args  []any
}

func newBuilder(table string) *builder {
	return &builder{table: table}
}

func (b *builder) eq(col string, v any) {
	if bv, ok := v.(bool); ok {
		v = boolArg(bv)
	}
	b.conds = append(b.conds, col+" = ?")
	b.args = append(b.args, v)
}

func (b *builder) eqAll(terms []Term) {
	for _, t := range terms {
		b.eq(t.Column, t.Value)
	}
}

func (b *builder) between(col string, r Range) {
	b.conds = append(b.conds, col+" BETWEEN ? AND ?")
	b.args = append(b.args, r.Start, r.End)
}

func (b *builder) build() Query {
	cols, ok := selectLists[b.table]
	if !ok {
		cols = "*"
	}
	sql := "SELECT " + cols + " FROM " + b.table
	if len(b.conds) > 0 {
		sql += " WHERE " + strings.Join(b.conds, " AND ")
	}
	return Query{SQL: sql, Args: b.args}
}

// SQLite stores BOOLEAN as an integer.
func boolArg(v bool) int {
	if v {
		return 1
	}
	return 0
}

// ParseRange parses "start-end" into a Range. Negative numbers are not
// accepted.
func ParseRange(field, s string) (Range, error) {
	raw := strings.TrimSpace(s)
	lo, hi, ok := strings.Cut(raw, "-")
	if !ok {
		return Range{}, errs.Invalid(field, s, "expected start-end")
	}
	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, errs.Invalid(field, s, "start is not a number")
	}
	end, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Range{}, errs.Invalid(field, s, "end is not a number")
	}
	return Range{Start: start, End: end}, nil
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Span returns a pointer to the range [start, end].
func Span(start, end int) *Range { return &Range{Start: start, End: end} }
