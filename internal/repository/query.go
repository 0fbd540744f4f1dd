package repository

import (
	"strings"
)

// predicate is one WHERE condition with the arguments bound to its placeholders
type predicate struct {
	condition string
	args      []interface{}
}

// predicates keeps conditions in the order they were added so the generated
// SQL and its argument list are deterministic
type predicates []predicate

func (p predicates) add(condition string, args ...interface{}) predicates {
	return append(p, predicate{condition: condition, args: args})
}

// where renders " WHERE a AND b" (or "" when empty) and the flattened arguments
func (p predicates) where() (string, []interface{}) {
	if len(p) == 0 {
		return "", []interface{}{}
	}

	conditions := make([]string, 0, len(p))
	args := []interface{}{}
	for _, pred := range p {
		conditions = append(conditions, pred.condition)
		args = append(args, pred.args...)
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// customerPredicates turns list filters into conditions. like is the
// dialect's case-insensitive match operator.
func customerPredicates(filters CustomerFilters, like string) predicates {
	var p predicates

	if filters.Search != "" {
		pattern := containsPattern(filters.Search)
		p = p.add(
			"(first_name "+like+" ? OR last_name "+like+" ? OR phone_number "+like+" ? OR email "+like+" ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	if filters.City != "" {
		p = p.add(
			"id IN (SELECT DISTINCT customer_id FROM addresses WHERE city "+like+" ?)",
			containsPattern(filters.City),
		)
	}

	return p
}

func containsPattern(s string) string {
	return "%" + s + "%"
}
