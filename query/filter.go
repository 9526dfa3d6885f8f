package query

import (
	"strconv"

	"github.com/vegasq/parqprof/meta"
)

// Match evaluates the query's conditions against one record as a strict
// left-to-right boolean fold: the running result is combined with each
// condition using that condition's connector tag. No operator precedence
// is applied beyond the tag order. A query without conditions matches
// every record.
func (q *Query) Match(rec meta.QueryableRecord) bool {
	if len(q.Conditions) == 0 {
		return true
	}

	result := evalCondition(q.Conditions[0], rec)
	for _, c := range q.Conditions[1:] {
		v := evalCondition(c, rec)
		if c.Connector == ConnAnd {
			result = result && v
		} else {
			result = result || v
		}
	}
	return result
}

// evalCondition evaluates one comparison against a record. A missing key
// is false under every operator.
func evalCondition(c Condition, rec meta.QueryableRecord) bool {
	stored, ok := rec.Get(c.Column)
	if !ok {
		return false
	}

	switch c.Op {
	case OpEqual:
		return stored == c.Value
	case OpNotEqual:
		return stored != c.Value
	case OpLike:
		return matchLike(stored, c.Value)
	case OpNotLike:
		return !matchLike(stored, c.Value)
	default:
		return compareOrdered(stored, c.Op, c.Value)
	}
}

// compareOrdered applies <, <=, >, >= with numeric comparison when the
// stored value looks numeric (first character a digit, or '-' followed by
// a digit) and both sides parse; otherwise lexicographic string order.
func compareOrdered(stored string, op Op, value string) bool {
	if looksNumeric(stored) {
		ln, lerr := strconv.ParseFloat(stored, 64)
		rn, rerr := strconv.ParseFloat(value, 64)
		if lerr == nil && rerr == nil {
			return compareFloats(ln, op, rn)
		}
	}
	return compareStrings(stored, op, value)
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9'
}

func compareFloats(left float64, op Op, right float64) bool {
	switch op {
	case OpLess:
		return left < right
	case OpLessEqual:
		return left <= right
	case OpGreater:
		return left > right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

func compareStrings(left string, op Op, right string) bool {
	switch op {
	case OpLess:
		return left < right
	case OpLessEqual:
		return left <= right
	case OpGreater:
		return left > right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}
