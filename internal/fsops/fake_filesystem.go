package fsops

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotEmpty is returned by FakeFilesystem.RemoveDir for non-empty directories.
var ErrNotEmpty = errors.New("directory not empty")

// FakeFilesystem implements Filesystem against an in-memory tree
// Records every removal attempt without touching the real filesystem
type FakeFilesystem struct {
	dirs map[string]map[string]Kind

	// Calls records removals in order as "rm:PATH" or "rmall:PATH"
	Calls []string

	// FailList and FailRemove inject errors keyed by cleaned path
	FailList   map[string]error
	FailRemove map[string]error
}

// NewFakeFilesystem returns an empty tree. Build it with AddDir/AddFile/AddOther.
func NewFakeFilesystem() *FakeFilesystem {
	return &FakeFilesystem{
		dirs:       make(map[string]map[string]Kind),
		FailList:   make(map[string]error),
		FailRemove: make(map[string]error),
	}
}

// AddDir creates a directory and any missing ancestors.
func (f *FakeFilesystem) AddDir(path string) {
	path = filepath.Clean(path)
	for {
		if f.dirs[path] == nil {
			f.dirs[path] = make(map[string]Kind)
		}
		parent := filepath.Dir(path)
		if parent == path {
			return
		}
		if f.dirs[parent] == nil {
			f.dirs[parent] = make(map[string]Kind)
		}
		f.dirs[parent][filepath.Base(path)] = KindDir
		path = parent
	}
}

// AddFile places a regular file entry, creating ancestor directories.
func (f *FakeFilesystem) AddFile(path string) {
	f.addEntry(path, KindFile)
}

// AddOther places a non-file non-directory entry (symlink, socket, device).
func (f *FakeFilesystem) AddOther(path string) {
	f.addEntry(path, KindOther)
}

func (f *FakeFilesystem) addEntry(path string, kind Kind) {
	path = filepath.Clean(path)
	parent := filepath.Dir(path)
	f.AddDir(parent)
	f.dirs[parent][filepath.Base(path)] = kind
}

// Exists reports whether a directory is present in the tree.
func (f *FakeFilesystem) Exists(path string) bool {
	_, ok := f.dirs[filepath.Clean(path)]
	return ok
}

func (f *FakeFilesystem) List(path string) ([]DirEntry, error) {
	path = filepath.Clean(path)
	if err := f.FailList[path]; err != nil {
		return nil, err
	}
	entries, ok := f.dirs[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	out := make([]DirEntry, 0, len(entries))
	for name, kind := range entries {
		out = append(out, DirEntry{Name: name, Kind: kind})
	}
	// os.ReadDir sorts by filename; the fake matches that
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeFilesystem) RemoveDir(path string) error {
	path = filepath.Clean(path)
	f.Calls = append(f.Calls, "rm:"+path)
	if err := f.FailRemove[path]; err != nil {
		return err
	}
	entries, ok := f.dirs[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if len(entries) > 0 {
		return &fs.PathError{Op: "remove", Path: path, Err: ErrNotEmpty}
	}
	f.unlink(path)
	return nil
}

func (f *FakeFilesystem) RemoveTree(path string) error {
	path = filepath.Clean(path)
	f.Calls = append(f.Calls, "rmall:"+path)
	if err := f.FailRemove[path]; err != nil {
		return err
	}
	if _, ok := f.dirs[path]; !ok {
		// os.RemoveAll succeeds on missing paths
		return nil
	}
	prefix := path + string(filepath.Separator)
	for p := range f.dirs {
		if strings.HasPrefix(p, prefix) {
			delete(f.dirs, p)
		}
	}
	f.unlink(path)
	return nil
}

func (f *FakeFilesystem) Parent(path string) (string, bool) {
	path = filepath.Clean(path)
	parent := filepath.Dir(path)
	if parent == path {
		return "", false
	}
	return parent, true
}

func (f *FakeFilesystem) unlink(path string) {
	delete(f.dirs, path)
	parent := filepath.Dir(path)
	if parent == path {
		return
	}
	if entries, ok := f.dirs[parent]; ok {
		delete(entries, filepath.Base(path))
	}
}
