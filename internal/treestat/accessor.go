package treestat

import (
	"io/fs"
	"os"

	"emperror.dev/errors"
)

// ErrNotRegular is returned by Stat when the path is no longer a regular file.
const ErrNotRegular = errors.Sentinel("not a regular file")

// Kind classifies a directory entry.
type Kind uint8

const (
	// KindOther covers symlinks, devices, sockets and anything else that is ignored.
	KindOther Kind = iota
	// KindFile is a regular file.
	KindFile
	// KindDir is a directory.
	KindDir
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// Entry is a single directory entry as reported by an Accessor.
type Entry struct {
	// Name is the base name of the entry.
	Name string
	// Kind is the entry classification.
	Kind Kind
}

// Accessor is the filesystem collaborator consumed by the traversal.
//
// ListDir never returns "." or "..". Implementations must be safe for
// concurrent use.
type Accessor interface {
	ListDir(path string) ([]Entry, error)
	Stat(path string) (int64, error)
}

// OSAccessor implements Accessor on top of the host filesystem.
// Symlinks are not followed.
type OSAccessor struct{}

// ListDir lists the entries of the directory at path.
func (OSAccessor) ListDir(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, d := range dirEntries { //nolint:varnamelen // d is standard for DirEntry
		name := d.Name()
		if name == "." || name == ".." {
			continue
		}

		entries = append(entries, Entry{Name: name, Kind: kindOf(d.Type())})
	}

	return entries, nil
}

// Stat returns the size of the regular file at path.
func (OSAccessor) Stat(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}

	if !info.Mode().IsRegular() {
		return 0, errors.WithStack(ErrNotRegular)
	}

	return info.Size(), nil
}

// kindOf maps a directory entry type to its Kind.
func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
