package classify

import (
	"fmt"
	"path/filepath"
	"sort"

	"dirsweep/internal/fsops"
	"dirsweep/internal/safety"
)

// Decision is the classifier's verdict for one directory.
type Decision struct {
	CanDelete bool
	Reason    Reason
	Entries   int // size of the listing behind the verdict
}

// Classifier decides whether directories qualify for deletion.
type Classifier struct {
	fs fsops.Filesystem
}

// New creates a classifier over the given filesystem.
func New(fs fsops.Filesystem) *Classifier {
	return &Classifier{fs: fs}
}

// Classify reads the directory's listing fresh and decides whether it can be
// deleted: every entry must be disposable by name or a recursively deletable
// subdirectory, and the path must not sit inside a .git subtree. An empty
// listing is trivially deletable.
//
// The protected check runs before any I/O, so a .git directory classifies as
// protected even when it cannot be read. Listing errors, on the target or on
// any subdirectory reached by recursion, are propagated.
func (c *Classifier) Classify(path string) (Decision, error) {
	if safety.IsProtected(path) {
		return Decision{Reason: Reason{Protected: &ProtectedReason{}}}, nil
	}

	entries, err := c.fs.List(path)
	if err != nil {
		return Decision{}, fmt.Errorf("list %s: %w", path, err)
	}

	deletable := true
	for _, e := range entries {
		if IsDisposable(e.Name) {
			continue
		}
		if e.Kind == fsops.KindDir {
			child, err := c.Classify(filepath.Join(path, e.Name))
			if err != nil {
				return Decision{}, err
			}
			if child.CanDelete {
				continue
			}
		}
		// one blocking entry decides; the reason still names them all
		deletable = false
		break
	}

	if deletable {
		return Decision{CanDelete: true, Entries: len(entries)}, nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return Decision{
		Entries: len(entries),
		Reason:  Reason{NotEmpty: &NotEmptyReason{Entries: names}},
	}, nil
}
