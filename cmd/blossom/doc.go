// Command blossom is the CLI client for the blossom daemon. It talks to the
// daemon's HTTP API for analysis, diagnosis, chat, and history, and carries
// local utilities for configuration management.
package main
