// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with PostgreSQL or SQLite,
// managing accounts, tokens, notebooks and the executions, analyses and
// packages derived from them.
package persistence
