package query

import (
	"errors"
	"fmt"
)

// Validation constants to prevent resource exhaustion
const (
	// MaxQueryLength is the maximum allowed query string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxConditions is the maximum number of WHERE conditions in a query
	MaxConditions = 1000

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256

	// MaxTableNameLength is the maximum length for a table name
	MaxTableNameLength = 4096
)

var (
	// ErrParse is returned for malformed queries: missing FROM, a
	// condition with no comparison operator, an unterminated quote.
	ErrParse = errors.New("parse error")

	// ErrUnknownTable is returned when the table name does not match the
	// engine's supported table identifier.
	ErrUnknownTable = errors.New("unknown table")

	// ErrQueryTooLong is returned when query exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyConditions is returned when a WHERE clause has too many conditions
	ErrTooManyConditions = errors.New("too many conditions in query")

	// ErrColumnNameTooLong is returned when column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrTableNameTooLong is returned when table name is too long
	ErrTableNameTooLong = errors.New("table name too long")
)

// ValidateQuery performs security validation on query input
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}
	return nil
}

// ValidateTableName validates table name length and content
func ValidateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: missing table name", ErrParse)
	}
	if len(name) > MaxTableNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrTableNameTooLong, len(name), MaxTableNameLength)
	}
	return nil
}

// ValidateColumnName validates column name length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// ValidateConditions validates condition count
func ValidateConditions(conds []Condition) error {
	if len(conds) > MaxConditions {
		return fmt.Errorf("%w: %d conditions (max %d)", ErrTooManyConditions, len(conds), MaxConditions)
	}
	return nil
}
