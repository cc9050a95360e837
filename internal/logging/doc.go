// Package logging provides concrete implementations of the about.Logger
// interface and the diagnostic reporter shared by all commands.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//   - Reporter: Prints severity-leveled diagnostics and writes error.log files
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
