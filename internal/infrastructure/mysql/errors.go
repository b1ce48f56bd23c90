package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry   = 1062
	errRowIsReferenced  = 1451
	errLockWaitTimeout  = 1205
	errDeadlockDetected = 1213
)

func errorNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

func IsDuplicateEntry(err error) bool {
	return errorNumber(err) == errDuplicateEntry
}

// IsRowReferenced reports a delete rejected by a foreign key.
func IsRowReferenced(err error) bool {
	return errorNumber(err) == errRowIsReferenced
}

func IsLockFailure(err error) bool {
	n := errorNumber(err)
	return n == errDeadlockDetected || n == errLockWaitTimeout
}
