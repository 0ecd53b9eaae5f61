package mysql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

// TranslateError converts storage-engine errors into the domain taxonomy.
// No GORM or driver error type ever crosses the adapter boundary, and no
// table/column/SQL-state detail reaches a user-visible message.
func TranslateError(entity string, err error) error {
	if err == nil {
		return nil
	}

	// Already classified upstream.
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError(entity, entity+" with the same unique key already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError(entity, "operation conflicts with a reference to another record")
	}

	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062:
			return shared.NewConflictError(entity, entity+" with the same unique key already exists")
		case 1451, 1452:
			return shared.NewConflictError(entity, "operation conflicts with a reference to another record")
		case 1213:
			return shared.NewInfrastructureError(entity, "storage deadlock detected", true)
		case 1205:
			return shared.NewInfrastructureError(entity, "storage lock wait timed out", true)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return shared.NewInfrastructureError(entity, "operation cancelled before completion", false)
	}

	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return shared.NewInfrastructureError(entity, "database connection lost", true)
	}

	// Driver-agnostic fallbacks (the sqlite test driver reports constraint
	// failures by message).
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "UNIQUE constraint failed"):
		return shared.NewConflictError(entity, entity+" with the same unique key already exists")
	case strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "a foreign key constraint fails"):
		return shared.NewConflictError(entity, "operation conflicts with a reference to another record")
	case strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "lock wait timeout") ||
		strings.Contains(errStr, "database is locked"):
		return shared.NewInfrastructureError(entity, "storage contention, try again", true)
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset"):
		return shared.NewInfrastructureError(entity, "database connection lost", true)
	}

	return shared.NewInfrastructureError(entity, "storage operation failed", false)
}
