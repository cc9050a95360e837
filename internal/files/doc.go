// Package files groups the file handling sub-packages:
//   - filesystem: filesystem abstraction (OS, in-memory and fs.FS backed)
//   - collector: ABOUT file discovery, name checks and loading
//   - loader: turns an ABOUT location, inventory or ScanCode scan into records
package files
