// Package prompt abstracts operator input behind Asker, a single "ask for a
// line of text" capability. Console asks on the terminal (with survey when
// attached to a TTY, plain line reading otherwise); Script replays canned
// answers for tests.
package prompt
