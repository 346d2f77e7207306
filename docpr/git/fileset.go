package git

import (
	"fmt"
	"strings"
)

// FileSet lists the files to stage as three parallel
// sequences: local source paths, target directories
// relative to the working copy, and target file names.
// Index i across all three describes one file.
type FileSet struct {
	Sources []string
	Dirs    []string
	Names   []string
}

// FileEntry is one position of a FileSet.
type FileEntry struct {
	Source string
	Dir    string
	Name   string
}

// Append queues one file, keeping the sequences
// aligned.
func (fs *FileSet) Append(source, dir, name string) {
	fs.Sources = append(fs.Sources, source)
	fs.Dirs = append(fs.Dirs, dir)
	fs.Names = append(fs.Names, name)
}

// Len returns the number of queued files. It is only
// meaningful when Validate succeeds.
func (fs FileSet) Len() int {
	return len(fs.Sources)
}

// Validate checks that the three sequences have the
// same length and that every entry names a file.
func (fs FileSet) Validate() error {
	if len(fs.Dirs) != len(fs.Sources) ||
		len(fs.Names) != len(fs.Sources) {
		return fmt.Errorf(
			"%w: %d sources, %d dirs, %d names",
			ErrFileSetMismatch,
			len(fs.Sources), len(fs.Dirs), len(fs.Names),
		)
	}

	for i, name := range fs.Names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: index %d", ErrEmptyName, i)
		}
	}

	return nil
}

// At returns the entry at index i.
func (fs FileSet) At(i int) (FileEntry, error) {
	if err := fs.Validate(); err != nil {
		return FileEntry{}, err
	}

	if i < 0 || i >= fs.Len() {
		return FileEntry{}, fmt.Errorf(
			"%w: %d of %d",
			ErrIndexOutOfRange, i, fs.Len(),
		)
	}

	return FileEntry{
		Source: fs.Sources[i],
		Dir:    fs.Dirs[i],
		Name:   fs.Names[i],
	}, nil
}
