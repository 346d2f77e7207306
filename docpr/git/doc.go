// Package git drives a local working copy through the documentation
// submission steps by running the git CLI, and opens pull requests through a
// pluggable Provider.
//
// Client wraps the working copy: it synchronizes main with the upstream
// remote, creates a branch, copies and stages the files of a FileSet,
// commits, and pushes to the operator's fork. Every failed external command
// is reported as an *OpError naming the command family and the arguments
// used. Handler performs the single corrective action the workflow knows: a
// soft reset after a failed commit.
//
// The Provider interface abstracts pull request creation. CLIProvider runs
// "gh pr create"; the github sub-package talks to the REST API instead.
package git
