package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/mlaconnect/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// mapWriteError translates constraint failures into repository errors.
func mapWriteError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return repository.ErrForeignKeyViolation
	case isUniqueViolation(err):
		return repository.ErrDuplicate
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// inClause returns "col IN (?,?)" and appends values to args.
func inClause[T any](col string, values []T, args []any) (string, []any) {
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args = append(args, v)
	}
	return fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ",")), args
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
