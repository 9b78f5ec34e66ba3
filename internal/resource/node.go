package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Node is one JSON value. The concrete types form a tagged union so that
// traversal is a type switch instead of reflection, and so that member
// order and numeric literals survive a parse/serialize cycle untouched.
type Node interface{ node() }

// Object is a JSON object with members in document order.
type Object struct {
	Members []Member
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Node
}

// Array is a JSON array.
type Array struct {
	Elems []Node
}

// String is a JSON string value.
type String string

// Number holds the verbatim numeric literal from the source text, so
// 1.50 does not come back as 1.5.
type Number string

// Bool is a JSON boolean.
type Bool bool

// Null is the JSON null value.
type Null struct{}

func (*Object) node() {}
func (*Array) node()  {}
func (String) node()  {}
func (Number) node()  {}
func (Bool) node()    {}
func (Null) node()    {}

// ParseDocument parses JSON text into a Node tree, preserving member order
// and numeric literals.
func ParseDocument(text string) (Node, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON document")
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("parse object key: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Members = append(obj.Members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, fmt.Errorf("parse object end: %w", err)
			}
			return obj, nil
		case '[':
			arr := &Array{}
			for dec.More() {
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Elems = append(arr.Elems, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, fmt.Errorf("parse array end: %w", err)
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Serialize writes the Node tree back to JSON text using the given indent
// unit, keeping member order and numeric literals as parsed.
func Serialize(n Node, indent string) (string, error) {
	var b strings.Builder
	if err := writeNode(&b, n, indent, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeNode(b *strings.Builder, n Node, indent string, depth int) error {
	switch v := n.(type) {
	case *Object:
		if len(v.Members) == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{\n")
		for i, m := range v.Members {
			b.WriteString(strings.Repeat(indent, depth+1))
			b.WriteString(quoteJSON(m.Key))
			b.WriteString(": ")
			if err := writeNode(b, m.Value, indent, depth+1); err != nil {
				return err
			}
			if i < len(v.Members)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte('}')
		return nil
	case *Array:
		if len(v.Elems) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[\n")
		for i, el := range v.Elems {
			b.WriteString(strings.Repeat(indent, depth+1))
			if err := writeNode(b, el, indent, depth+1); err != nil {
				return err
			}
			if i < len(v.Elems)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte(']')
		return nil
	case String:
		b.WriteString(quoteJSON(string(v)))
		return nil
	case Number:
		b.WriteString(string(v))
		return nil
	case Bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil
	case Null:
		b.WriteString("null")
		return nil
	}
	return fmt.Errorf("serialize: unknown node type %T", n)
}

// quoteJSON produces a JSON string literal without HTML escaping, so a
// decoded script containing < or & stays readable in the output file.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a string cannot fail
	return strings.TrimSuffix(buf.String(), "\n")
}

var leadingIndentRe = regexp.MustCompile(`(?m)^([ \t]+)\S`)

// DetectIndent returns the leading-whitespace run of the first indented
// line, or two spaces when no line is indented. Reusing the source indent
// keeps version-control diffs minimal.
func DetectIndent(text string) string {
	if m := leadingIndentRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return "  "
}
