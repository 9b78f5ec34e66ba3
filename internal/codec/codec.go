// Package codec converts Ignition's escaped wire form of embedded Python
// scripts to and from readable source text.
//
// Ignition stores scripts as HTML/JS-safe escaped strings inside JSON
// resource files: tabs and newlines become the two-character sequences \t
// and \n, and the characters < > & = ' become \u003c-style escapes. The
// substitution tables below are ordered, and the order is load-bearing:
// encoding must escape backslashes before any rule that introduces new
// backslashes, and decoding must never let the generic \\ rule split a
// longer escape apart.
package codec

import "strings"

// rule is one (literal, escape) substitution pair.
type rule struct {
	literal string
	escaped string
}

// encodingRules is applied first-to-last as sequential whole-string
// replacements. The backslash rule must stay first.
var encodingRules = []rule{
	{`\`, `\\`},
	{`"`, `\"`},
	{"\t", `\t`},
	{"\n", `\n`},
	{"\r", `\r`},
	{"\f", `\f`},
	{"\b", `\b`},
	{"<", `\u003c`},
	{">", `\u003e`},
	{"&", `\u0026`},
	{"=", `\u003d`},
	{"'", `\u0027`},
}

// decodingRules is consulted in order at each backslash during a single
// left-to-right scan: Unicode escapes first, simple escapes next, the
// generic \\ rule last. A sequential whole-string replacement pass would
// mis-decode sequences like \\u003c (an escaped backslash followed by the
// literal text "u003c"), so Decode scans instead of substituting.
var decodingRules = []rule{
	{"<", `\u003c`},
	{">", `\u003e`},
	{"&", `\u0026`},
	{"=", `\u003d`},
	{"'", `\u0027`},
	{"\t", `\t`},
	{"\n", `\n`},
	{"\r", `\r`},
	{"\f", `\f`},
	{"\b", `\b`},
	{`"`, `\"`},
	{`\`, `\\`},
}

// Encode converts readable Python source to Ignition's escaped wire form.
// The empty string encodes to itself.
func Encode(decoded string) string {
	if decoded == "" {
		return decoded
	}
	encoded := decoded
	for _, r := range encodingRules {
		encoded = strings.ReplaceAll(encoded, r.literal, r.escaped)
	}
	return encoded
}

// Decode converts Ignition's escaped wire form back to readable Python
// source. It is the exact inverse of Encode: Decode(Encode(s)) == s for
// every string s. Escapes are resolved in a single pass so that an escaped
// backslash shields the characters that follow it.
func Decode(encoded string) string {
	if !strings.Contains(encoded, `\`) {
		return encoded
	}
	var b strings.Builder
	b.Grow(len(encoded))
	for i := 0; i < len(encoded); {
		if encoded[i] != '\\' {
			b.WriteByte(encoded[i])
			i++
			continue
		}
		matched := false
		for _, r := range decodingRules {
			if strings.HasPrefix(encoded[i:], r.escaped) {
				b.WriteString(r.literal)
				i += len(r.escaped)
				matched = true
				break
			}
		}
		if !matched {
			// Unrecognized escape: keep the backslash verbatim.
			b.WriteByte(encoded[i])
			i++
		}
	}
	return b.String()
}

// IsEncodedScript reports whether value looks like it is already in wire
// form. This is a heuristic, not a proof: decoded Python that contains the
// literal two-character text \n or \t (say, inside a regex) also matches.
func IsEncodedScript(value string) bool {
	for _, marker := range []string{`\u003c`, `\u003e`, `\u0026`, `\u003d`, `\u0027`, `\n`, `\t`} {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}

// VerifyRoundTrip reports whether script survives an encode/decode cycle
// unchanged. Intended for tests and self-checks, not production control flow.
func VerifyRoundTrip(script string) bool {
	return Decode(Encode(script)) == script
}
