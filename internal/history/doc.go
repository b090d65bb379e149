// Package history persists completed analyses in a local SQLite database so
// operators can review past diagnoses.
package history
