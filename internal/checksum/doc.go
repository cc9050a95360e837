// Package checksum computes the md5, sha1 and sha256 digests recorded in the
// checksum_* fields of ABOUT files.
package checksum
