// Package redist collects the source of redistributable components: every
// record with redistribute set to yes has its about_resource files and
// directories copied to an output directory or zip archive.
package redist
