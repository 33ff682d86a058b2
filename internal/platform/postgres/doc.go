// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, mapping between domain entities and database records, SQLSTATE
// translation into store sentinel errors, and demo data seeding. The schema
// lives in the migrations subpackage.
package postgres
