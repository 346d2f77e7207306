// Package commitmsg parses the header line of conventional commit messages
// such as "docs: Add X documentation for Y feature". The submission workflow
// uses it to warn about messages that do not follow the convention.
package commitmsg
