// Package repository defines the data access interface for skillindex.
//
// Every rebuild of the category index is recorded as a run. The
// classifications of the most recent run are kept as the current set, so the
// HTTP API can answer lookups without re-reading the output file. The sqlite
// subpackage holds the implementation.
//
// # Schema Migration
//
// The sqlite repository creates its tables on startup and is safe to open
// against an existing database.
package repository
