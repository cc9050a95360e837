// Package model implements the ABOUT record: the standard field table,
// parsing of ABOUT files, hydration into typed fields, validation against
// the filesystem, and serialization back to ABOUT text or inventory rows.
//
// # ABOUT File Format
//
// An ABOUT file is a YAML mapping stored beside the code it documents:
//
//	about_resource: zlib-1.2.11.tar.gz
//	name: zlib
//	version: 1.2.11
//	license_expression: zlib
//	licenses:
//	  - key: zlib
//	    name: ZLIB License
//	    file: zlib.LICENSE
//	redistribute: yes
//
// Field names are lowercased and must match [a-z][0-9a-z_]*. Fields outside
// the standard table are kept as custom text fields.
//
// # Validation
//
// Validation never fails with a Go error. Problems are reported as
// about.Diagnostics with CRITICAL, ERROR, WARNING or INFO severity.
package model
