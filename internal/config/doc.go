// Package config provides configuration management for the catalog API.
//
// Configuration is loaded from environment variables using the env package.
// Only PORT is needed by the HTTP gateway itself; the DB_* variables describe
// the relational database the gateway reads from. All values have defaults
// suitable for a local MySQL instance.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
