// Package collector discovers ABOUT files under a location and loads them
// into records.
//
// A location is a single ABOUT file, a directory tree, or a .zip archive,
// which is extracted into a temporary directory first. File names are
// checked for unsupported characters and case-insensitive duplicates, and
// every record diagnostic is prefixed with the ABOUT file path it came from.
package collector
