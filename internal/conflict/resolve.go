package conflict

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ignscript/internal/codec"
)

// Conflict resolution precondition violations. Unlike malformed input,
// these are raised to the caller: proceeding would silently corrupt the
// document.
var (
	// ErrConflictGone means the conflict ID was not found on re-parse;
	// an earlier edit shifted or removed the region.
	ErrConflictGone = errors.New("conflict no longer exists")
	// ErrHeaderAltered means the synthetic function header above the
	// script was edited.
	ErrHeaderAltered = errors.New("script header was modified")
)

// Edit is a line-range replacement instruction for the owning document
// host. Lines are 0-based, inclusive.
type Edit struct {
	StartLine int
	EndLine   int
	Text      string
}

var indentRe = regexp.MustCompile(`^\s*`)

// Resolve computes the splice that replaces the conflict's whole marker
// block with one resolved script line. resolvedText must still begin with
// the synthetic header from Wrap. The document is re-parsed and the
// conflict matched by ID immediately before computing line numbers, so a
// stale ID fails with ErrConflictGone instead of splicing the wrong range.
func Resolve(docText, conflictID, resolvedText string) (Edit, error) {
	var target *ScriptConflict
	for _, c := range Parse(docText) {
		if c.ID == conflictID {
			target = &c
			break
		}
	}
	if target == nil {
		return Edit{}, fmt.Errorf("%w: %s", ErrConflictGone, conflictID)
	}

	script, err := Unwrap(target.JSONKey, resolvedText)
	if err != nil {
		return Edit{}, err
	}
	encoded := codec.Encode(script)

	indent, comma := lineFormat(target, docText)
	line := indent + `"` + target.JSONKey + `": ` + jsonQuote(encoded) + comma
	return Edit{StartLine: target.StartLine, EndLine: target.EndLine, Text: line}, nil
}

// lineFormat recovers the indentation and trailing comma of the original
// current-side script line, falling back to the document line at the
// conflict's start when the current block has none.
func lineFormat(c *ScriptConflict, docText string) (indent, comma string) {
	for _, line := range strings.Split(c.CurrentContent, "\n") {
		if m := scriptLineRe.FindStringSubmatch(line); m != nil {
			return m[1], m[4]
		}
	}
	lines := strings.Split(docText, "\n")
	if c.StartLine >= 0 && c.StartLine < len(lines) {
		indent = indentRe.FindString(lines[c.StartLine])
	}
	return indent, ""
}

// ApplyEdit replaces the edit's line range in docText and returns the new
// document text.
func ApplyEdit(docText string, e Edit) string {
	lines := strings.Split(docText, "\n")
	if e.StartLine < 0 || e.StartLine >= len(lines) || e.EndLine < e.StartLine {
		return docText
	}
	end := e.EndLine
	if end >= len(lines) {
		end = len(lines) - 1
	}
	var out []string
	out = append(out, lines[:e.StartLine]...)
	out = append(out, strings.Split(e.Text, "\n")...)
	out = append(out, lines[end+1:]...)
	return strings.Join(out, "\n")
}

// ResolveTake resolves a conflict by taking one side wholesale. side is
// "current" or "incoming".
func ResolveTake(docText, conflictID, side string) (Edit, error) {
	var target *ScriptConflict
	for _, c := range Parse(docText) {
		if c.ID == conflictID {
			target = &c
			break
		}
	}
	if target == nil {
		return Edit{}, fmt.Errorf("%w: %s", ErrConflictGone, conflictID)
	}
	var script string
	switch side {
	case "current":
		script = target.CurrentScript
	case "incoming":
		script = target.IncomingScript
	default:
		return Edit{}, fmt.Errorf("unknown side %q", side)
	}
	return Resolve(docText, conflictID, Wrap(target.JSONKey, script))
}
