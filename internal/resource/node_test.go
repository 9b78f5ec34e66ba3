package resource

import "testing"

func TestSerializePreservesNumericLiterals(t *testing.T) {
	t.Parallel()
	in := `{
  "position": {
    "x": 0.5,
    "y": 1.50,
    "rotate": {"angle": "0deg"},
    "big": 9007199254740993
  }
}`
	doc, err := ParseDocument(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Serialize(doc, "  ")
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{
  "position": {
    "x": 0.5,
    "y": 1.50,
    "rotate": {
      "angle": "0deg"
    },
    "big": 9007199254740993
  }
}`
	if out != want {
		t.Fatalf("serialized:\n%s\nwant:\n%s", out, want)
	}
}

func TestParseDocumentRejectsTrailingData(t *testing.T) {
	t.Parallel()
	if _, err := ParseDocument(`{"a": 1} {"b": 2}`); err == nil {
		t.Fatal("expected error for trailing data")
	}
	if _, err := ParseDocument(`{"a": `); err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestParseScalarDocuments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{`"s"`, `"s"`},
		{`42`, `42`},
		{`true`, `true`},
		{`null`, `null`},
		{`[]`, `[]`},
		{`[1, "a", null, false]`, "[\n  1,\n  \"a\",\n  null,\n  false\n]"},
	}
	for _, tt := range tests {
		doc, err := ParseDocument(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		out, err := Serialize(doc, "  ")
		if err != nil {
			t.Fatalf("serialize %q: %v", tt.in, err)
		}
		if out != tt.want {
			t.Fatalf("Serialize(%q) = %q, want %q", tt.in, out, tt.want)
		}
	}
}

func TestDetectIndent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want string
	}{
		{"two spaces", "{\n  \"a\": 1\n}", "  "},
		{"four spaces", "{\n    \"a\": 1\n}", "    "},
		{"tab", "{\n\t\"a\": 1\n}", "\t"},
		{"no indentation", `{"a": 1}`, "  "},
		{"empty", "", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectIndent(tt.text); got != tt.want {
				t.Fatalf("DetectIndent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeDoesNotHTMLEscape(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument(`{"html": "<div> & </div>"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Serialize(doc, "  ")
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := "{\n  \"html\": \"<div> & </div>\"\n}"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}
