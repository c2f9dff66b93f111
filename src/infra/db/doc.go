// Package db provides database connection and schema management.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization
//   - Connection health checks
//   - Creating the users table on first start
//
// It is only used when the postgres store backend is selected.
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//	if err := pg.EnsureSchema(ctx); err != nil {
//	    return err
//	}
package db
