package classify

import (
	"fmt"
	"strings"
)

// Reason captures why a directory was ruled out for deletion.
// Exactly one variant is set (nil if not applicable).
type Reason struct {
	NotEmpty  *NotEmptyReason
	Protected *ProtectedReason
}

// NotEmptyReason indicates the directory holds entries that block deletion.
type NotEmptyReason struct {
	Entries []string // every name in the listing, sorted, original case
}

// ProtectedReason indicates the directory is .git or sits inside a .git subtree.
type ProtectedReason struct{}

// HasReason returns true if any variant is set.
func (r Reason) HasReason() bool {
	return r.NotEmpty != nil || r.Protected != nil
}

// Label returns a short tag for grouping in logs and the deletion history.
func (r Reason) Label() string {
	switch {
	case r.Protected != nil:
		return "protected"
	case r.NotEmpty != nil:
		return "not_empty"
	default:
		return "unknown"
	}
}

// String formats the reason as the user-facing diagnostic.
// Example: "directory is not empty; contains 2 entries:" followed by one
// indented line per entry name.
func (r Reason) String() string {
	switch {
	case r.Protected != nil:
		return "directory is inside a .git repository"
	case r.NotEmpty != nil:
		n := len(r.NotEmpty.Entries)
		noun := "entries"
		if n == 1 {
			noun = "entry"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "directory is not empty; contains %d %s:", n, noun)
		for _, name := range r.NotEmpty.Entries {
			b.WriteString("\n  - ")
			b.WriteString(name)
		}
		return b.String()
	default:
		return "unknown"
	}
}
