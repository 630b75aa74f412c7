// Package database provides the connection provider for the catalog's
// relational database.
//
// The Provider wraps a pooled *sql.DB and exposes three operations:
//   - Query runs a parameterless statement and materializes every row
//   - Acquire hands out one pooled connection
//   - Ping acquires a connection and releases it without using it
//
// Failures are reported as *ConnectionError (no connection could be obtained or
// the transport broke) or *QueryError (the database rejected the statement).
// Describe returns the human readable message for either kind.
//
// Supported drivers are mysql, postgres and sqlite.
package database
