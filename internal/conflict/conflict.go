// Package conflict extracts unresolved three-way-merge regions that touch
// encoded script fields, and computes the splice needed to write a
// resolution back into the document.
package conflict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"ignscript/internal/codec"
)

// ScriptConflict is one unresolved merge conflict over a script field.
// Line numbers are 0-based and inclusive, covering the whole marker block.
// Any edit to the document invalidates the line range; resolution
// re-parses and matches by ID before touching the document.
type ScriptConflict struct {
	ID              string `json:"id"`
	JSONKey         string `json:"jsonKey"`
	CurrentContent  string `json:"currentContent"`
	IncomingContent string `json:"incomingContent"`
	CurrentScript   string `json:"currentScript"`
	IncomingScript  string `json:"incomingScript"`
	CurrentBranch   string `json:"currentBranch"`
	IncomingBranch  string `json:"incomingBranch"`
	StartLine       int    `json:"startLine"`
	EndLine         int    `json:"endLine"`
}

// scriptLineRe matches a JSON member line holding a script field, capturing
// indentation, key, the raw (still escaped) string body, and an optional
// trailing comma.
var scriptLineRe = regexp.MustCompile(`^(\s*)"(script|code)"\s*:\s*"((?:[^"\\]|\\.)*)"(,?)`)

// HasConflictMarkers reports whether unresolved conflict markers are present.
func HasConflictMarkers(text string) bool {
	return strings.Contains(text, "<<<<<<<")
}

// Parse scans docText for conflict regions delimited by <<<<<<< / ======= /
// >>>>>>> marker triples and returns one ScriptConflict per region whose
// current or incoming block contains a script field line. Conflicts that do
// not touch a script field are left to generic merge tooling.
func Parse(docText string) []ScriptConflict {
	lines := strings.Split(docText, "\n")
	var conflicts []ScriptConflict
	inConflict := false
	section := ""
	startLine := 0
	currentBranch := ""
	incomingBranch := ""
	var current, incoming []string

	flush := func(endLine int) {
		if !inConflict {
			return
		}
		if c, ok := buildConflict(startLine, endLine, currentBranch, incomingBranch, current, incoming); ok {
			conflicts = append(conflicts, c)
		}
		inConflict = false
		section = ""
		currentBranch = ""
		incomingBranch = ""
		current = nil
		incoming = nil
	}

	for idx, line := range lines {
		switch {
		case strings.HasPrefix(line, "<<<<<<<"):
			if inConflict {
				flush(idx - 1)
			}
			inConflict = true
			startLine = idx
			currentBranch = strings.TrimSpace(strings.TrimPrefix(line, "<<<<<<<"))
			section = "current"
		case !inConflict:
			continue
		case strings.HasPrefix(line, "======="):
			section = "incoming"
		case strings.HasPrefix(line, ">>>>>>>"):
			incomingBranch = strings.TrimSpace(strings.TrimPrefix(line, ">>>>>>>"))
			flush(idx)
		case section == "current":
			current = append(current, line)
		case section == "incoming":
			incoming = append(incoming, line)
		}
	}
	return conflicts
}

// buildConflict assembles a ScriptConflict from a fully scanned region, or
// reports false when neither side carries a script field.
func buildConflict(startLine, endLine int, currentBranch, incomingBranch string, current, incoming []string) (ScriptConflict, bool) {
	curKey, curScript, curOK := findScriptLine(current)
	incKey, incScript, incOK := findScriptLine(incoming)
	if !curOK && !incOK {
		return ScriptConflict{}, false
	}
	key := curKey
	if !curOK {
		key = incKey
	}
	c := ScriptConflict{
		ID:              fmt.Sprintf("%s:%d-%d", key, startLine, endLine),
		JSONKey:         key,
		CurrentContent:  strings.Join(current, "\n"),
		IncomingContent: strings.Join(incoming, "\n"),
		CurrentBranch:   currentBranch,
		IncomingBranch:  incomingBranch,
		StartLine:       startLine,
		EndLine:         endLine,
	}
	if curOK {
		c.CurrentScript = codec.Decode(curScript)
	}
	if incOK {
		c.IncomingScript = codec.Decode(incScript)
	}
	return c, true
}

// findScriptLine returns the key and the wire-form value of the first
// script field line in a block. The raw line carries the JSON-escaped
// spelling of the wire value, so the JSON string layer is peeled off here;
// the Ignition escape layer is the codec's job.
func findScriptLine(block []string) (key, encoded string, ok bool) {
	for _, line := range block {
		if m := scriptLineRe.FindStringSubmatch(line); m != nil {
			return m[2], jsonUnquote(m[3]), true
		}
	}
	return "", "", false
}

// jsonUnquote interprets raw as the body of a JSON string literal. Invalid
// literals come back verbatim rather than failing the whole extraction.
func jsonUnquote(raw string) string {
	var s string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &s); err != nil {
		return raw
	}
	return s
}

// jsonQuote renders s as a JSON string literal without HTML escaping.
func jsonQuote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
