// Package submit drives one documentation submission from start to finish. It
// asks the operator which files to contribute, then moves through a fixed
// sequence of states: sync main with upstream and the fork, create a branch,
// stage the files, commit, push to the fork, and open a pull request.
//
// Any failure ends the attempt in the failed state. The error is logged and,
// when it is a *git.OpError, handed to the error handler for its single
// corrective action. Nothing is retried.
//
// The main entry point is Run, which accepts a Config struct with all
// collaborators of the workflow.
package submit
