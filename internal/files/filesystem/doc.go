// Package filesystem provides the file access abstraction used to collect
// ABOUT files and to resolve the resources they reference.
//
// Key interfaces:
//   - FileSystemProvider: Opens directories and reads or stats single paths
//   - Directory: A directory tree that can be walked
//   - File: An individual file or directory entry with its relative path
//
// Implementations:
//   - OSFileSystem: Production implementation on the OS filesystem
//   - MemoryFileSystem: In-memory implementation for tests
//   - EmbedFileSystem: Read-only view of built-in assets such as attribution templates
package filesystem
