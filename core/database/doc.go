// Package database handles database connections.
//
// It wraps GORM to open either MySQL or SQLite from the application's configuration.
// The snapshot database sink is the only consumer; the whole section is optional and
// disabled by default.
//
// # Drivers
//
//   - mysql: DSN built from host, port, user, password and name, with connection, read
//     and write timeouts applied.
//   - sqlite: Name is the file path (":memory:" for tests). The pool is limited to a
//     single connection.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
