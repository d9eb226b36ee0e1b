// Package pathfilter decides which subdirectory names are left out of
// shell replication.
package pathfilter

import (
	"regexp"
	"strings"

	"github.com/taigrr/dirdeploy/internal/types"
)

// DefaultIgnored are the version-control and cache directory names that are
// never replicated.
var DefaultIgnored = []string{
	".git",
	"__pycache__",
	".hg",
	".svn",
	".pytest_cache",
	".mypy_cache",
}

// PathFilter matches directory names against the ignore set.
type PathFilter struct {
	ignoredPatterns []string
	compiled        []*regexp.Regexp
}

// New creates a new PathFilter with the default ignore set plus any patterns
// from config.
func New(config *types.IgnoreConfig) *PathFilter {
	pf := &PathFilter{
		ignoredPatterns: append([]string(nil), DefaultIgnored...),
	}

	if config != nil {
		for _, pattern := range config.IgnoredPatterns {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				pf.ignoredPatterns = append(pf.ignoredPatterns, pattern)
			}
		}
	}

	for _, pattern := range pf.ignoredPatterns {
		pf.compiled = append(pf.compiled, globToRegexp(pattern))
	}

	return pf
}

// globToRegexp converts a name glob to an anchored regex.
func globToRegexp(pattern string) *regexp.Regexp {
	// Names never contain separators; strip any trailing ones from patterns
	// like ".git/".
	normalized := strings.TrimRight(strings.ReplaceAll(pattern, "\\", "/"), "/")

	// Escape all regex special chars first
	regexPattern := regexp.QuoteMeta(normalized)

	regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*") // * matches non-slash
	regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")  // ? matches single char

	return regexp.MustCompile("^" + regexPattern + "$")
}

// IsIgnored reports whether a directory name is in the ignore set.
func (pf *PathFilter) IsIgnored(name string) bool {
	for _, re := range pf.compiled {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// FilterNames returns the names that are not ignored, keeping their order.
func (pf *PathFilter) FilterNames(names []string) []string {
	var allowed []string
	for _, name := range names {
		if !pf.IsIgnored(name) {
			allowed = append(allowed, name)
		}
	}
	return allowed
}
