package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ConnectionError reports that no pooled connection could be obtained or that
// the transport to the database failed.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed (%s): %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Description returns the message reported by the driver.
func (e *ConnectionError) Description() string {
	return driverMessage(e.Err)
}

// QueryError reports that the database rejected a statement.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q failed: %v", e.Statement, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Description returns the message reported by the database.
func (e *QueryError) Description() string {
	return driverMessage(e.Err)
}

// Describe returns the human readable description of err, suitable for
// returning to API clients. It never returns an empty string for a non-nil err.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Description()
	}

	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Description()
	}

	return driverMessage(err)
}

// Kind returns a short label for the error class, used in logs and metrics.
func Kind(err error) string {
	var connErr *ConnectionError
	var queryErr *QueryError
	switch {
	case errors.As(err, &connErr):
		return "connection"
	case errors.As(err, &queryErr):
		return "query"
	default:
		return "unknown"
	}
}

func driverMessage(err error) string {
	if err == nil {
		return ""
	}

	var msg string
	var mysqlErr *mysql.MySQLError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &mysqlErr):
		msg = mysqlErr.Message
	case errors.As(err, &pqErr):
		msg = pqErr.Message
	}

	if msg == "" {
		msg = err.Error()
	}
	return msg
}

// classify wraps an error raised while executing statement.
func classify(statement string, err error) error {
	if isConnectionFailure(err) {
		return &ConnectionError{Op: "query", Err: err}
	}
	return &QueryError{Statement: statement, Err: err}
}

func isConnectionFailure(err error) bool {
	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &netErr):
		return true
	}
	return false
}
