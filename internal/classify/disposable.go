package classify

import "strings"

// disposableNames is the fixed set of entry names that never block deletion.
// Matching is case-insensitive; keys are stored lowercase. This is built-in
// policy, not configuration.
var disposableNames = map[string]struct{}{
	".ds_store":          {},
	".ipynb_checkpoints": {},
	".jekyll-cache":      {},
	".venv":              {},
	"__pycache__":        {},
	"desktop.ini":        {},
	"thumbs.db":          {},
}

// IsDisposable reports whether an entry name is in the disposable set.
// A disposable-named entry, file or directory alike, is tolerated by name
// alone; its contents are never inspected and go down with the parent.
func IsDisposable(name string) bool {
	_, ok := disposableNames[strings.ToLower(name)]
	return ok
}
