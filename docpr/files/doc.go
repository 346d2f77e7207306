// Package files copies documentation files into a working copy. It compares
// SHA256 digests of source and destination so callers can tell whether a copy
// actually changed the destination content.
package files
