// Package gen writes ABOUT files from inventory rows.
//
// Each row becomes one ABOUT file placed in the output directory at the path
// of its about_resource. License and notice files can be copied from a
// reference directory or fetched from a license library, and Android style
// MODULE_LICENSE_* and NOTICE files can be produced alongside.
package gen
