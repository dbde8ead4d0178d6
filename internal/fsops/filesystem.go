package fsops

// Kind tags a directory entry by type. Entry types come from the directory
// entry itself, so symlinks are KindOther and never followed.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindOther
)

// DirEntry is one name in a directory listing, immutable once read.
type DirEntry struct {
	Name string
	Kind Kind
}

// Filesystem abstracts the directory operations the cleanup cascade performs
// Enables running the algorithm against a simulated tree in tests
type Filesystem interface {
	// List reads a directory fresh. Listings are never cached.
	List(path string) ([]DirEntry, error)

	// RemoveDir removes an empty directory and fails if it is not empty.
	RemoveDir(path string) error

	// RemoveTree removes a directory and everything beneath it.
	RemoveTree(path string) error

	// Parent returns the containing directory, or false when path is its
	// own parent (a filesystem root).
	Parent(path string) (string, bool)
}
