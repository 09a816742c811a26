// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package predicate

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Matcher compiles name patterns.
type Matcher interface {
	Compile(pattern string) (Pattern, error)
}

// Pattern is a compiled name pattern.
type Pattern interface {
	Match(name string) bool
}

// GlobMatcher matches shell glob patterns with support for "**" across path separators.
type GlobMatcher struct{}

func (GlobMatcher) Compile(pattern string) (Pattern, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid glob pattern %q", pattern)
	}
	return globPattern(pattern), nil
}

type globPattern string

func (p globPattern) Match(name string) bool {
	matched, err := doublestar.PathMatch(string(p), name)
	return err == nil && matched
}

// RegexpMatcher matches regular expressions in RE2 syntax.
// Patterns are not anchored.
type RegexpMatcher struct{}

func (RegexpMatcher) Compile(pattern string) (Pattern, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("invalid regular expression %q: %w", pattern, err)
	}
	return regexpPattern{re: re}, nil
}

type regexpPattern struct {
	re *regexp.Regexp
}

func (p regexpPattern) Match(name string) bool {
	return p.re.MatchString(name)
}
