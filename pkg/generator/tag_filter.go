package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blimu-dev/swagger2ts/pkg/errdefs"
	"github.com/blimu-dev/swagger2ts/pkg/utils"
)

// TagFilter decides which services take part in a run. A zero TagFilter
// admits everything.
type TagFilter struct {
	allow   map[string]bool
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewTagFilter builds a filter from an allow-list of tags and regex
// include/exclude patterns. Allow-list entries are normalized like tags; an
// allow-list with no usable entries admits every tag.
func NewTagFilter(allow, includePatterns, excludePatterns []string) (TagFilter, error) {
	var f TagFilter
	for _, t := range allow {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if f.allow == nil {
			f.allow = map[string]bool{}
		}
		f.allow[t] = true
	}
	include, exclude, err := compileTagFilters(includePatterns, excludePatterns)
	if err != nil {
		return TagFilter{}, err
	}
	f.include = include
	f.exclude = exclude
	return f, nil
}

// ParseTagList splits a comma-separated tag list
func ParseTagList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeTag trims, NFC-normalizes and lower-cases a tag
func NormalizeTag(tag string) string {
	return strings.ToLower(utils.NormalizeName(tag))
}

// Allows reports whether the service with the given normalized tag is generated
func (f TagFilter) Allows(tag string) bool {
	if f.allow != nil && !f.allow[tag] {
		return false
	}
	return shouldIncludeTag(tag, f.include, f.exclude)
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, &errdefs.ConfigError{Field: "includeTags", Message: fmt.Sprintf("invalid pattern %q: %v", p, err)}
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, &errdefs.ConfigError{Field: "excludeTags", Message: fmt.Sprintf("invalid pattern %q: %v", p, err)}
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// shouldIncludeTag applies include patterns first (any match admits, no
// patterns admit all), then exclude patterns (any match rejects)
func shouldIncludeTag(tag string, include, exclude []*regexp.Regexp) bool {
	included := len(include) == 0
	for _, r := range include {
		if r.MatchString(tag) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, r := range exclude {
		if r.MatchString(tag) {
			return false
		}
	}
	return true
}
