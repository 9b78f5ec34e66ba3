// Package resource locates and rewrites the encoded Python scripts nested
// inside Ignition JSON resource documents (views, transforms, event
// handlers). It knows nothing about any particular resource schema; script
// fields are recognized purely by key name plus structural path pattern.
package resource

import (
	"fmt"
	"strings"

	"ignscript/internal/codec"
)

// ScriptLocation is one discovered script field. Locations are snapshots
// of a single traversal; any edit to the document invalidates them.
type ScriptLocation struct {
	Path         string `json:"path"`
	EncodedValue string `json:"-"`
	DecodedValue string `json:"-"`
	ParentPath   string `json:"parentPath"`
	Key          string `json:"key"`
}

// Result is the outcome of a whole-document decode. Malformed input never
// produces an error return; the original text passes through and Errors
// says why.
type Result struct {
	Content    string
	Locations  []ScriptLocation
	HasScripts bool
	Errors     []string
}

// FindScriptPaths walks doc depth-first and returns every script field in
// pre-order, object members in document order. Matched string values are
// recorded and not descended into.
func (m *Matcher) FindScriptPaths(doc Node) []ScriptLocation {
	var locs []ScriptLocation
	m.walk(doc, "", func(loc ScriptLocation) bool {
		locs = append(locs, loc)
		return true
	})
	return locs
}

// HasScripts reports whether doc contains at least one script field,
// stopping at the first match.
func (m *Matcher) HasScripts(doc Node) bool {
	found := false
	m.walk(doc, "", func(ScriptLocation) bool {
		found = true
		return false
	})
	return found
}

// walk visits every script field. The visit callback returns false to stop
// early.
func (m *Matcher) walk(n Node, path string, visit func(ScriptLocation) bool) bool {
	switch v := n.(type) {
	case *Object:
		for _, mem := range v.Members {
			childPath := mem.Key
			if path != "" {
				childPath = path + "." + mem.Key
			}
			// Only string values can be scripts; an object that happens to
			// be named "script" is traversed like anything else.
			if s, ok := mem.Value.(String); ok && m.IsScriptPath(mem.Key, childPath) {
				loc := ScriptLocation{
					Path:         childPath,
					EncodedValue: string(s),
					DecodedValue: codec.Decode(string(s)),
					ParentPath:   path,
					Key:          mem.Key,
				}
				if !visit(loc) {
					return false
				}
				continue
			}
			if !m.walk(mem.Value, childPath, visit) {
				return false
			}
		}
	case *Array:
		for i, el := range v.Elems {
			if !m.walk(el, fmt.Sprintf("%s[%d]", path, i), visit) {
				return false
			}
		}
	}
	return true
}

// rewrite applies fn to every matched script string in place. This second
// structural pass is keyed on key-and-path matching rather than previously
// recorded locations, so it stays correct even if the caller mutated the
// tree between passes.
func (m *Matcher) rewrite(n Node, path string, fn func(string) string) {
	switch v := n.(type) {
	case *Object:
		for i := range v.Members {
			mem := &v.Members[i]
			childPath := mem.Key
			if path != "" {
				childPath = path + "." + mem.Key
			}
			if s, ok := mem.Value.(String); ok && m.IsScriptPath(mem.Key, childPath) {
				mem.Value = String(fn(string(s)))
				continue
			}
			m.rewrite(mem.Value, childPath, fn)
		}
	case *Array:
		for i, el := range v.Elems {
			m.rewrite(el, fmt.Sprintf("%s[%d]", path, i), fn)
		}
	}
}

// ExtractAndDecode parses jsonText, decodes every script field in place,
// and re-serializes with the source document's own indentation. Parse and
// serialize failures are reported through Result.Errors with the input
// passed through unchanged.
func (m *Matcher) ExtractAndDecode(jsonText string) Result {
	doc, err := ParseDocument(jsonText)
	if err != nil {
		return Result{Content: jsonText, Errors: []string{err.Error()}}
	}
	locs := m.FindScriptPaths(doc)
	if len(locs) == 0 {
		return Result{Content: jsonText}
	}
	m.rewrite(doc, "", func(s string) string {
		// Guarded decode: leave plain text alone so decoding an
		// already-decoded document is a no-op.
		if !codec.IsEncodedScript(s) {
			return s
		}
		return codec.Decode(s)
	})
	out, err := Serialize(doc, m.indentFor(jsonText))
	if err != nil {
		return Result{Content: jsonText, Locations: locs, HasScripts: true, Errors: []string{err.Error()}}
	}
	return Result{Content: out, Locations: locs, HasScripts: true}
}

// EncodeScripts is the inverse of ExtractAndDecode: it re-encodes every
// script field of a decoded document. Encoding is unconditional, so it is
// not idempotent; callers must not pass already-encoded content. Any
// parse or serialize failure returns the input unchanged.
func (m *Matcher) EncodeScripts(decodedText string) string {
	doc, err := ParseDocument(decodedText)
	if err != nil {
		return decodedText
	}
	m.rewrite(doc, "", codec.Encode)
	out, err := Serialize(doc, m.indentFor(decodedText))
	if err != nil {
		return decodedText
	}
	return out
}

// indentFor picks the serialization indent: the configured override when
// set, otherwise whatever the source document uses.
func (m *Matcher) indentFor(text string) string {
	if m.Indent != "" {
		return m.Indent
	}
	return DetectIndent(text)
}

// ScriptLineCount returns the number of lines in a decoded script, for
// display purposes.
func ScriptLineCount(decoded string) int {
	if decoded == "" {
		return 0
	}
	return strings.Count(decoded, "\n") + 1
}
