package git

import (
	"errors"
	"fmt"
)

// Op names the external command family that failed.
type Op string

// Command families reported in OpError.Op.
const (
	OpPull     Op = "pull"
	OpPush     Op = "push"
	OpCheckout Op = "checkout"
	OpAdd      Op = "add"
	OpCommit   Op = "commit"
	OpPRCreate Op = "pr create"
)

var (
	// ErrEmptyFileSet is returned when an operation needs
	// at least one queued file.
	ErrEmptyFileSet = errors.New("no files queued")

	// ErrEmptyName is returned when a queued file has no
	// target file name.
	ErrEmptyName = errors.New("empty target file name")

	// ErrFileSetMismatch is returned when the parallel
	// sequences of a FileSet differ in length.
	ErrFileSetMismatch = errors.New(
		"file set sequences differ in length",
	)

	// ErrIndexOutOfRange is returned when a FileSet index
	// is beyond its length.
	ErrIndexOutOfRange = errors.New(
		"file set index out of range",
	)

	// ErrBranchExists is returned when the branch to
	// create is already present in the working copy.
	ErrBranchExists = errors.New("branch already exists")
)

// OpError reports a failed external command. It is a
// plain data carrier: nothing retries on it.
type OpError struct {
	// Client identifies the working copy context, as
	// "identity@dir". May be empty.
	Client string
	// Op is the failed command family.
	Op Op
	// Args are the literal arguments attempted.
	Args string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	msg := fmt.Sprintf(
		"operation %q failed, args: %s", e.Op, e.Args,
	)

	if e.Client != "" {
		msg += ", client: " + e.Client
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying error for errors.Is and
// errors.As.
func (e *OpError) Unwrap() error {
	return e.Err
}

// AsOpError returns the first *OpError in err's chain.
func AsOpError(err error) (*OpError, bool) {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe, true
	}

	return nil, false
}
