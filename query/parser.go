package query

import (
	"fmt"
	"strings"
)

// Parse parses a statement of the form
//
//	SELECT (* | col, col, ...) FROM table [WHERE cond ((AND|OR) cond)*]
//
// The WHERE clause is split first on AND, then each piece on OR, skipping
// keyword matches inside quoted literals or parentheses. Each resulting
// condition is tagged with the connector tying it to the previous
// condition in final left-to-right order.
func Parse(input string) (*Query, error) {
	if err := ValidateQuery(input); err != nil {
		return nil, err
	}

	s := strings.TrimSpace(input)
	if !keywordAt(s, 0, "select") {
		return nil, fmt.Errorf("%w: query must start with SELECT", ErrParse)
	}
	rest := s[len("select"):]

	fromIdx := findKeyword(rest, "from")
	if fromIdx < 0 {
		return nil, fmt.Errorf("%w: missing FROM clause", ErrParse)
	}

	q := &Query{}
	if err := parseSelectList(q, rest[:fromIdx]); err != nil {
		return nil, err
	}

	afterFrom := rest[fromIdx+len("from"):]
	whereIdx := findKeyword(afterFrom, "where")

	tablePart := afterFrom
	if whereIdx >= 0 {
		tablePart = afterFrom[:whereIdx]
	}
	q.Table = strings.TrimSpace(tablePart)
	if err := ValidateTableName(q.Table); err != nil {
		return nil, err
	}

	if whereIdx >= 0 {
		if err := parseWhere(q, afterFrom[whereIdx+len("where"):]); err != nil {
			return nil, err
		}
	}

	return q, nil
}

func parseSelectList(q *Query, list string) error {
	list = strings.TrimSpace(list)
	if list == "" {
		return fmt.Errorf("%w: empty select list", ErrParse)
	}
	if list == "*" {
		q.Star = true
		return nil
	}

	for _, col := range strings.Split(list, ",") {
		col = strings.TrimSpace(col)
		if col == "" {
			return fmt.Errorf("%w: empty column in select list", ErrParse)
		}
		if err := ValidateColumnName(col); err != nil {
			return err
		}
		q.Columns = append(q.Columns, col)
	}
	return nil
}

// parseWhere splits the clause on AND, then each piece on OR, and tags
// the flattened conditions: NONE for the first overall, AND for the first
// condition of each later AND-group, OR for every other condition.
func parseWhere(q *Query, clause string) error {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return fmt.Errorf("%w: empty WHERE clause", ErrParse)
	}

	for gi, group := range splitOnKeyword(clause, "and") {
		for ci, piece := range splitOnKeyword(group, "or") {
			cond, err := parseCondition(piece)
			if err != nil {
				return err
			}
			switch {
			case gi == 0 && ci == 0:
				cond.Connector = ConnNone
			case ci == 0:
				cond.Connector = ConnAnd
			default:
				cond.Connector = ConnOr
			}
			q.Conditions = append(q.Conditions, cond)
		}
	}

	return ValidateConditions(q.Conditions)
}

// parseCondition parses one "column op value" comparison. Word operators
// (LIKE, NOT LIKE) are recognized first, then symbol operators scanned
// left to right outside quoted literals, longest spelling first.
func parseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Condition{}, fmt.Errorf("%w: empty condition", ErrParse)
	}

	if idx := findKeyword(s, "not like"); idx >= 0 {
		return buildCondition(s[:idx], OpNotLike, s[idx+len("not like"):])
	}
	if idx := findKeyword(s, "like"); idx >= 0 {
		return buildCondition(s[:idx], OpLike, s[idx+len("like"):])
	}

	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
		case c == '<' && i+1 < len(s) && s[i+1] == '=':
			return buildCondition(s[:i], OpLessEqual, s[i+2:])
		case c == '<' && i+1 < len(s) && s[i+1] == '>':
			return buildCondition(s[:i], OpNotEqual, s[i+2:])
		case c == '>' && i+1 < len(s) && s[i+1] == '=':
			return buildCondition(s[:i], OpGreaterEqual, s[i+2:])
		case c == '!' && i+1 < len(s) && s[i+1] == '=':
			return buildCondition(s[:i], OpNotEqual, s[i+2:])
		case c == '=':
			return buildCondition(s[:i], OpEqual, s[i+1:])
		case c == '<':
			return buildCondition(s[:i], OpLess, s[i+1:])
		case c == '>':
			return buildCondition(s[:i], OpGreater, s[i+1:])
		}
	}

	return Condition{}, fmt.Errorf("%w: no comparison operator in %q", ErrParse, s)
}

func buildCondition(col string, op Op, val string) (Condition, error) {
	column := strings.TrimSpace(col)
	if column == "" {
		return Condition{}, fmt.Errorf("%w: missing column before %s", ErrParse, op)
	}
	if err := ValidateColumnName(column); err != nil {
		return Condition{}, err
	}

	value, err := unquote(strings.TrimSpace(val))
	if err != nil {
		return Condition{}, err
	}

	return Condition{Column: column, Op: op, Value: value}, nil
}

// unquote strips matching single or double quotes from a value literal.
func unquote(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: missing value", ErrParse)
	}
	if s[0] == '\'' || s[0] == '"' {
		if len(s) < 2 || s[len(s)-1] != s[0] {
			return "", fmt.Errorf("%w: unterminated quote in %q", ErrParse, s)
		}
		return s[1 : len(s)-1], nil
	}
	return s, nil
}

// findKeyword returns the index of the first whitespace-delimited,
// case-insensitive occurrence of kw outside quoted literals and
// parentheses, or -1.
func findKeyword(s, kw string) int {
	depth := 0
	var quote byte
	for i := 0; i+len(kw) <= len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			continue
		case '(':
			depth++
			continue
		case ')':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}
		if keywordAt(s, i, kw) && (i == 0 || isSpace(s[i-1])) {
			return i
		}
	}
	return -1
}

// keywordAt reports whether kw occurs case-insensitively at position i
// with a whitespace (or end-of-string) boundary after it.
func keywordAt(s string, i int, kw string) bool {
	if i+len(kw) > len(s) || !strings.EqualFold(s[i:i+len(kw)], kw) {
		return false
	}
	return i+len(kw) == len(s) || isSpace(s[i+len(kw)])
}

// splitOnKeyword splits s on every delimited occurrence of kw outside
// quotes and parentheses.
func splitOnKeyword(s, kw string) []string {
	var parts []string
	for {
		idx := findKeyword(s, kw)
		if idx < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:idx])
		s = s[idx+len(kw):]
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
