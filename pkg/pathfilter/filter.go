// Package pathfilter decides whether a request path is eligible for
// logging, from wildcard allow and deny lists.
package pathfilter

import (
	"regexp"
	"strings"
	"sync"
)

// Filter gates request paths. When the allow-list is non-empty it takes
// precedence and only matching paths are logged; otherwise any path
// matching the deny-list is skipped. Patterns are literal path segments
// with "*" matching any run of characters, e.g. "/api/*".
//
// The pattern lists can be swapped at runtime with Update; matching and
// updating are safe to interleave.
type Filter struct {
	mu      sync.RWMutex
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// New compiles a Filter from wildcard pattern lists. Patterns that fail to
// compile are skipped; the wildcard translation itself cannot produce an
// invalid expression.
func New(includePaths, ignorePaths []string) *Filter {
	return &Filter{
		include: compile(includePaths),
		exclude: compile(ignorePaths),
	}
}

// Update replaces both pattern lists, for configuration hot reload.
// Requests already past the gate are unaffected.
func (f *Filter) Update(includePaths, ignorePaths []string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.include = compile(includePaths)
	f.exclude = compile(ignorePaths)
	f.mu.Unlock()
}

// ShouldLog reports whether the given path is eligible for logging. Any
// query string is stripped before matching; the caller keeps the full path
// for the record itself.
func (f *Filter) ShouldLog(path string) bool {
	if f == nil {
		return true
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.include) > 0 {
		return matchAny(f.include, path)
	}
	return !matchAny(f.exclude, path)
}

func compile(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(p), `\*`, ".*") + "$"
		re, err := regexp.Compile(expr)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

func matchAny(res []*regexp.Regexp, path string) bool {
	for _, re := range res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
