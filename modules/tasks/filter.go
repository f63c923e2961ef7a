package tasks

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// FilterOp enumerates the supported filter operators. The values match the
// FilterOp enum in the GraphQL schema.
type FilterOp string

const (
	FilterOpEquals     FilterOp = "EQUALS"
	FilterOpContains   FilterOp = "CONTAINS"
	FilterOpStartsWith FilterOp = "STARTS_WITH"
	FilterOpEndsWith   FilterOp = "ENDS_WITH"
)

// Filter is a single field/operator/value constraint.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// identPattern restricts filter fields to plain column identifiers, since
// field names are interpolated into the query.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FilterScope translates a filter list into a GORM scope. All constraints
// are combined with AND and match case-insensitively. One constraint per
// field: when two filters target the same field the later one wins.
// Filters with an unrecognized operator or a non-identifier field are
// silently dropped. A nil or empty list yields the identity scope.
func FilterScope(filters []Filter) func(db *gorm.DB) *gorm.DB {
	type condition struct {
		expr string
		arg  string
	}

	conditions := make(map[string]condition)
	var fields []string

	for _, f := range filters {
		if !identPattern.MatchString(f.Field) {
			continue
		}

		value := strings.ToLower(f.Value)
		var expr, arg string
		switch f.Op {
		case FilterOpEquals:
			expr = fmt.Sprintf("LOWER(%s) = ?", f.Field)
			arg = value
		case FilterOpContains:
			expr = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", f.Field)
			arg = "%" + escapeLike(value) + "%"
		case FilterOpStartsWith:
			expr = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", f.Field)
			arg = escapeLike(value) + "%"
		case FilterOpEndsWith:
			expr = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", f.Field)
			arg = "%" + escapeLike(value)
		default:
			continue
		}

		if _, seen := conditions[f.Field]; !seen {
			fields = append(fields, f.Field)
		}
		conditions[f.Field] = condition{expr: expr, arg: arg}
	}

	return func(db *gorm.DB) *gorm.DB {
		for _, field := range fields {
			c := conditions[field]
			db = db.Where(c.expr, c.arg)
		}
		return db
	}
}

// escapeLike escapes LIKE wildcards in a literal value.
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `%`, `\%`)
	value = strings.ReplaceAll(value, `_`, `\_`)
	return value
}
