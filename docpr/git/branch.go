package git

import (
	"fmt"
	"time"

	"github.com/valyala/fasttemplate"
)

// DefaultFileType prefixes generated branch names when
// no file type is given.
const DefaultFileType = "doc"

// branchTemplate lays out generated branch names.
const branchTemplate = "{type}/update-{file}-{date}"

// BranchName composes "{type}/update-{file}-{YYYYMMDD}"
// from the first target file name and the date of now.
// Only the first file is used even when more are
// queued.
func BranchName(
	fs FileSet,
	fileType string,
	now time.Time,
) (string, error) {
	const errCtx = "generating branch name"

	if err := fs.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if fs.Len() == 0 {
		return "", fmt.Errorf(
			"%s: %w", errCtx, ErrEmptyFileSet,
		)
	}

	first, err := fs.At(0)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if fileType == "" {
		fileType = DefaultFileType
	}

	return fasttemplate.ExecuteStringStd(
		branchTemplate, "{", "}",
		map[string]interface{}{
			"type": fileType,
			"file": first.Name,
			"date": now.Format("20060102"),
		},
	), nil
}
