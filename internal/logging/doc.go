// Package logging constructs the process-wide slog logger.
//
// Output defaults to stdout in console (text) format and is additionally
// appended to <log_dir>/blossom.log when a log directory is configured.
// Debug level enables source locations.
package logging
