// Package treepath converts between the external, slash-separated form of a tree
// path ("guides/getting-started") and the internal label form stored in the
// folder_path column ("guides.getting_started").
//
// Internal labels only use [a-z0-9_]; callers must validate external names with
// ValidateName before encoding them.
package treepath

import (
	"strings"
)

const (
	// ExternalSeparator separates segments of an external path.
	ExternalSeparator = "/"

	// LabelSeparator separates labels of an internal path.
	LabelSeparator = "."

	// descendantUpperBound is the byte immediately after LabelSeparator. Every
	// string starting with "p." sorts in ["p.", "p/") under byte ordering.
	descendantUpperBound = "/"
)

// Path is an ordered sequence of internal labels. The zero value is the root.
type Path []string

// Ancestor identifies the row of one ancestor folder: the folder lives in Parent
// and is named Name (external form).
type Ancestor struct {
	Parent Path
	Name   string
}

// Encode maps an external path to its internal string form.
//
// Examples:
//   - Encode("docs/getting-started") → "docs.getting_started"
//   - Encode("") → ""
func Encode(external string) string {
	return FromExternal(external).String()
}

// Decode maps an internal path string back to its external form.
//
// Examples:
//   - Decode("docs.getting_started") → "docs/getting-started"
//   - Decode("") → ""
func Decode(internal string) string {
	return Parse(internal).External()
}

// EncodeLabel maps a single external name to an internal label.
func EncodeLabel(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// DecodeLabel maps a single internal label to its external name.
func DecodeLabel(label string) string {
	return strings.ReplaceAll(label, "_", "-")
}

// FromExternal parses an external path. Leading and trailing slashes are ignored
// and the path is lowercased. Empty segments are dropped.
func FromExternal(external string) Path {
	trimmed := strings.Trim(strings.ToLower(external), ExternalSeparator)
	if trimmed == "" {
		return nil
	}

	segments := strings.Split(trimmed, ExternalSeparator)
	path := make(Path, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = append(path, EncodeLabel(segment))
	}
	return path
}

// Parse splits an internal path string into labels.
func Parse(internal string) Path {
	if internal == "" {
		return nil
	}
	return Path(strings.Split(internal, LabelSeparator))
}

// String returns the internal (stored) form of the path.
func (p Path) String() string {
	return strings.Join(p, LabelSeparator)
}

// External returns the external (API) form of the path.
func (p Path) External() string {
	names := make([]string, len(p))
	for i, label := range p {
		names[i] = DecodeLabel(label)
	}
	return strings.Join(names, ExternalSeparator)
}

// Len returns the number of labels.
func (p Path) Len() int {
	return len(p)
}

// IsRoot reports whether the path has no labels.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Child returns a new path with the external name appended as a label.
// The receiver is never modified.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, EncodeLabel(name))
}

// Parent returns the path without its last label. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	parent := make(Path, len(p)-1)
	copy(parent, p[:len(p)-1])
	return parent
}

// Last returns the external name of the last label, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return DecodeLabel(p[len(p)-1])
}

// Equal reports whether both paths have identical labels.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// DescendantBounds returns the half-open range [lo, hi) of internal path strings
// that are strict descendants of p. It must not be called on the root, whose
// descendants are every path.
func (p Path) DescendantBounds() (lo, hi string) {
	s := p.String()
	return s + LabelSeparator, s + descendantUpperBound
}

// Ancestors lists the row of every folder along p, nearest first.
//
// Example: Path{"a","b","c"}.Ancestors() →
// [{Parent: a.b, Name: c}, {Parent: a, Name: b}, {Parent: root, Name: a}]
func (p Path) Ancestors() []Ancestor {
	ancestors := make([]Ancestor, 0, len(p))
	for i := len(p); i > 0; i-- {
		parent := make(Path, i-1)
		copy(parent, p[:i-1])
		ancestors = append(ancestors, Ancestor{
			Parent: parent,
			Name:   DecodeLabel(p[i-1]),
		})
	}
	return ancestors
}
