// Package health checks that the catalog database is reachable.
//
// The monitor runs once at startup and, when an interval is configured, keeps
// re-checking in the background. A failed check is logged and recorded but
// never stops the server: every request still tries its own query.
package health
