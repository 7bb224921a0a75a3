package launcher

import (
	"iter"
	"slices"
	"strings"

	"slade/internal/stringprocessing"
)

// Registration is a program registered under a name.
type Registration struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Registrations maps names to program paths. Names compare case-insensitively
// and entries keep the order in which their names were first registered.
type Registrations struct {
	entries []Registration
	index   map[string]int
}

// NewRegistrations creates an empty registration table.
func NewRegistrations() *Registrations {
	return &Registrations{index: make(map[string]int)}
}

// Set stores path under name and reports whether an existing registration was
// replaced. A replaced entry keeps its position and original name.
func (r *Registrations) Set(name, path string) bool {
	key := stringprocessing.FoldKey(name)
	if i, ok := r.index[key]; ok {
		r.entries[i].Path = path
		return true
	}

	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Registration{Name: name, Path: path})
	return false
}

// Get returns the path registered under name.
func (r *Registrations) Get(name string) (string, bool) {
	i, ok := r.index[stringprocessing.FoldKey(name)]
	if !ok {
		return "", false
	}
	return r.entries[i].Path, true
}

// Has reports whether name is registered.
func (r *Registrations) Has(name string) bool {
	_, ok := r.index[stringprocessing.FoldKey(name)]
	return ok
}

// Delete removes name and reports whether it was registered.
func (r *Registrations) Delete(name string) bool {
	key := stringprocessing.FoldKey(name)
	i, ok := r.index[key]
	if !ok {
		return false
	}

	r.entries = slices.Delete(r.entries, i, i+1)
	delete(r.index, key)
	for j := i; j < len(r.entries); j++ {
		r.index[stringprocessing.FoldKey(r.entries[j].Name)] = j
	}
	return true
}

// Len returns the number of registrations.
func (r *Registrations) Len() int {
	return len(r.entries)
}

// All iterates name/path pairs in registration order.
func (r *Registrations) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, entry := range r.entries {
			if !yield(entry.Name, entry.Path) {
				return
			}
		}
	}
}

// Entries returns a copy of the registrations in registration order.
func (r *Registrations) Entries() []Registration {
	return slices.Clone(r.entries)
}

// Sorted returns a copy of the registrations ordered by name, ignoring case.
func (r *Registrations) Sorted() []Registration {
	sorted := slices.Clone(r.entries)
	slices.SortFunc(sorted, func(a, b Registration) int {
		return strings.Compare(stringprocessing.FoldKey(a.Name), stringprocessing.FoldKey(b.Name))
	})
	return sorted
}

// Reset removes every registration.
func (r *Registrations) Reset() {
	r.entries = nil
	clear(r.index)
}
