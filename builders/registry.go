package builders

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Table names used in diagnostics and logs.
const (
	TablePlain = "plain"
	TableNulls = "nulls"
)

// FunctionName is a function name compared without regard to case.
type FunctionName struct {
	name string
	key  string
}

// NewFunctionName wraps name. The key is the Unicode case fold of name.
func NewFunctionName(name string) FunctionName {
	// A Caser keeps state between calls, so each name gets its own.
	return FunctionName{name: name, key: cases.Fold().String(name)}
}

// String returns the name as written.
func (f FunctionName) String() string { return f.name }

// Key returns the folded form used for lookups.
func (f FunctionName) Key() string { return f.key }

// Is reports whether f names the same function as other.
func (f FunctionName) Is(other string) bool {
	return f.key == NewFunctionName(other).key
}

// Entry binds a function name to its builder. Signature and Description
// document the call for listings.
type Entry struct {
	Name        string
	Builder     *Builder
	Signature   string
	Description string
}

type table map[string]Entry

// Registry holds the two name tables consulted while parsing: the plain
// table for calls without a null-treatment clause and the nulls table for
// calls with RESPECT NULLS or IGNORE NULLS. A Registry is read-only once
// built and safe for concurrent lookups.
type Registry struct {
	plain table
	nulls table
}

// NewRegistry builds both tables. A name must be unique within a table,
// though it may appear in both. On any failure no registry is returned.
func NewRegistry(plain, nulls []Entry) (*Registry, error) {
	pt, err := buildTable(TablePlain, plain)
	if err != nil {
		return nil, err
	}
	nt, err := buildTable(TableNulls, nulls)
	if err != nil {
		return nil, err
	}
	return &Registry{plain: pt, nulls: nt}, nil
}

func buildTable(tableName string, entries []Entry) (table, error) {
	t := make(table, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || e.Builder == nil {
			return nil, ErrInvalidEntry.GenWithStackByArgs(e.Name, tableName)
		}
		key := NewFunctionName(e.Name).Key()
		if _, ok := t[key]; ok {
			return nil, ErrDuplicateFunction.GenWithStackByArgs(e.Name, tableName)
		}
		t[key] = e
	}
	return t, nil
}

// Find looks name up in the plain table.
func (r *Registry) Find(name string) (*Builder, bool) {
	if r == nil {
		return nil, false
	}
	return r.plain.find(name)
}

// FindNulls looks name up in the nulls table.
func (r *Registry) FindNulls(name string) (*Builder, bool) {
	if r == nil {
		return nil, false
	}
	return r.nulls.find(name)
}

// Lookup returns the builder from the nulls table when nulls is set and
// from the plain table otherwise.
func (r *Registry) Lookup(name string, nulls bool) (*Builder, bool) {
	if nulls {
		return r.FindNulls(name)
	}
	return r.Find(name)
}

// Entries lists the plain table sorted by name.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return r.plain.sorted()
}

// NullsEntries lists the nulls table sorted by name.
func (r *Registry) NullsEntries() []Entry {
	if r == nil {
		return nil
	}
	return r.nulls.sorted()
}

// Names returns every registered name once, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range append(r.Entries(), r.NullsEntries()...) {
		key := NewFunctionName(e.Name).Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, e.Name)
	}
	slices.Sort(names)
	return names
}

// release drops both tables. Later lookups report not found.
func (r *Registry) release() {
	r.plain = nil
	r.nulls = nil
}

func (t table) find(name string) (*Builder, bool) {
	e, ok := t[NewFunctionName(name).Key()]
	if !ok {
		return nil, false
	}
	return e.Builder, true
}

func (t table) sorted() []Entry {
	out := make([]Entry, 0, len(t))
	for _, e := range t {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
