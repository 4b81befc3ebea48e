// Package migrations contains the database migration files. Each file
// registers itself from init(); the package is imported by cmd/popays
// so every migration is known at CLI startup.
package migrations
