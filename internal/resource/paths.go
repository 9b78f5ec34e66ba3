package resource

import (
	"fmt"
	"regexp"
)

// scriptKeys are the only JSON keys that can hold script text. The key
// name alone is not enough: "code" and "script" appear in non-script
// contexts across Ignition resources, so a key must also sit at a path
// matching one of the structural patterns below.
var scriptKeys = map[string]bool{
	"script": true,
	"code":   true,
}

// defaultPatterns are suffix-anchored against dotted/bracketed paths such
// as root.events.onActionPerformed.config.script or
// propConfig.tag.transforms[2].code. Together they cover the places
// Ignition stores Python across views, transforms, event handlers, custom
// methods, message handlers, tag event scripts and extension functions,
// without this package modeling those schemas explicitly.
var defaultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(^|[.\]])script$`),
	regexp.MustCompile(`config\.script$`),
	regexp.MustCompile(`transforms\[\d+\]\.code$`),
	regexp.MustCompile(`customMethods\[\d+\]\.script$`),
	regexp.MustCompile(`messageHandlers\[\d+\]\.script$`),
	regexp.MustCompile(`eventScripts\[\d+\]\.script$`),
	regexp.MustCompile(`onChange\.script$`),
	regexp.MustCompile(`extensionFunctions\[\d+\]\.script$`),
}

// Matcher decides which (key, path) pairs hold script text. The zero set
// of extras gives Ignition's stock resource shapes; config can add more
// suffix patterns for custom module resources.
type Matcher struct {
	patterns []*regexp.Regexp

	// Indent, when non-empty, overrides per-document indent detection
	// during re-serialization.
	Indent string
}

// NewMatcher returns a Matcher using the built-in patterns plus any extra
// suffix regexes.
func NewMatcher(extra ...string) (*Matcher, error) {
	patterns := append([]*regexp.Regexp{}, defaultPatterns...)
	for _, e := range extra {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, fmt.Errorf("compile script path pattern %q: %w", e, err)
		}
		patterns = append(patterns, re)
	}
	return &Matcher{patterns: patterns}, nil
}

// DefaultMatcher returns a Matcher with only the built-in patterns.
func DefaultMatcher() *Matcher {
	return &Matcher{patterns: defaultPatterns}
}

// IsScriptPath reports whether a string value at the given key and full
// dotted path should be treated as script text.
func (m *Matcher) IsScriptPath(key, path string) bool {
	if !scriptKeys[key] {
		return false
	}
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
