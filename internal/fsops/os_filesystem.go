package fsops

import (
	"os"
	"path/filepath"
)

// OSFilesystem implements Filesystem using real os package calls
type OSFilesystem struct{}

func (OSFilesystem) List(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirEntry{Name: e.Name(), Kind: kindOf(e)})
	}
	return out, nil
}

// kindOf uses the entry's own type bits, so a symlink to a directory stays
// KindOther rather than being reported as a directory.
func kindOf(e os.DirEntry) Kind {
	t := e.Type()
	switch {
	case t.IsDir():
		return KindDir
	case t.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

func (OSFilesystem) RemoveDir(path string) error {
	return os.Remove(path)
}

func (OSFilesystem) RemoveTree(path string) error {
	return os.RemoveAll(path)
}

func (OSFilesystem) Parent(path string) (string, bool) {
	parent := filepath.Dir(path)
	if parent == path {
		return "", false
	}
	return parent, true
}
