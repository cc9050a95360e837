// Package license parses license expressions and resolves license keys to
// license texts through a Library: the ScanCode LicenseDB, a DejaCode
// server, or a local reference directory of <key>.LICENSE files.
package license
