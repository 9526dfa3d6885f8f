// Package query implements the SQL-subset language used to filter
// previously generated metadata.
//
// The grammar is SELECT (* | col, col, ...) FROM <table> [WHERE <cond>
// ((AND|OR) <cond>)*] with case-insensitive keywords. The WHERE clause is
// not parsed into a tree: each condition carries the logical connector
// that ties it to the previous one, and evaluation is a strict
// left-to-right boolean fold over that tagged list. This is deliberately
// not AND-binds-tighter SQL precedence; existing generated queries depend
// on the sequential fold.
package query

// Op is a comparison operator in a condition.
type Op int

const (
	OpEqual        Op = iota // =
	OpNotEqual               // != or <>
	OpLess                   // <
	OpLessEqual              // <=
	OpGreater                // >
	OpGreaterEqual           // >=
	OpLike                   // LIKE
	OpNotLike                // NOT LIKE
)

// String returns the SQL spelling of the operator.
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLike:
		return "LIKE"
	case OpNotLike:
		return "NOT LIKE"
	default:
		return "?"
	}
}

// Connector tags a condition with the logical operator connecting it to
// the previous condition in left-to-right order.
type Connector int

const (
	// ConnNone marks the first condition overall.
	ConnNone Connector = iota
	// ConnAnd marks the first condition of every AND-group after the first.
	ConnAnd
	// ConnOr marks every non-first condition inside a group.
	ConnOr
)

// Condition is one "column op value" comparison plus its connector tag.
type Condition struct {
	Column    string
	Op        Op
	Value     string
	Connector Connector
}

// Query is a parsed statement. Conditions preserve final left-to-right
// order; the tag list is the sole representation of operator structure.
type Query struct {
	Columns    []string // nil when Star
	Star       bool
	Table      string
	Conditions []Condition
}
