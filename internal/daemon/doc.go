// Package daemon runs the long-lived analysis service: it guards single
// instance execution with a file lock and serves the HTTP API.
package daemon
