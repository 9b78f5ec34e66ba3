package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const encodedView = `{
  "custom": {},
  "events": {
    "onActionPerformed": {
      "config": {
        "script": "\\tif a \\u003c b:\\n\\t\\tprint(\\u0027hi\\u0027)"
      }
    }
  }
}`

const conflictedView = `{
<<<<<<< HEAD
  "script": "\\tprint(1)",
=======
  "script": "\\tprint(2)",
>>>>>>> feature
  "meta": {}
}`

// runCommand executes the root command with args, capturing stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("igs %s: %v", strings.Join(args, " "), err)
	}
	return buf.String()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeEncodeRoundTripInPlace(t *testing.T) {
	path := writeTempFile(t, "view.json", encodedView)

	runCommand(t, "decode", path)
	decoded, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(decoded), `"script": "\tif a < b:\n\t\tprint('hi')"`) {
		t.Fatalf("decoded file missing readable script:\n%s", decoded)
	}

	runCommand(t, "encode", path)
	encoded, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(encoded) != encodedView {
		t.Fatalf("encode did not restore wire form:\n got: %s\nwant: %s", encoded, encodedView)
	}
}

func TestDecodeStdoutLeavesFileAlone(t *testing.T) {
	path := writeTempFile(t, "view.json", encodedView)
	prev := decodeStdout
	decodeStdout = true
	defer func() { decodeStdout = prev }()

	out := runCommand(t, "decode", path, "--stdout")
	if !strings.Contains(out, "print('hi')") {
		t.Fatalf("stdout missing decoded script: %s", out)
	}
	after, _ := os.ReadFile(path)
	if string(after) != encodedView {
		t.Fatal("decode --stdout must not modify the input file")
	}
}

func TestScriptsJSON(t *testing.T) {
	path := writeTempFile(t, "view.json", encodedView)
	prev := jsonOut
	jsonOut = true
	defer func() { jsonOut = prev }()

	out := runCommand(t, "scripts", path, "--json")
	var entries []struct {
		Path  string `json:"path"`
		Key   string `json:"key"`
		Lines int    `json:"lines"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode scripts JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Path != "events.onActionPerformed.config.script" || entries[0].Lines != 2 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestConflictsHumanOutput(t *testing.T) {
	path := writeTempFile(t, "view.json", conflictedView)
	out := runCommand(t, "conflicts", path)
	if !strings.Contains(out, "script:1-5") {
		t.Fatalf("missing conflict id: %s", out)
	}
	if !strings.Contains(out, "-\tprint(1)") || !strings.Contains(out, "+\tprint(2)") {
		t.Fatalf("missing diff lines: %s", out)
	}
}

func TestResolveTakeAndHistory(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("IGNSCRIPT_JOURNAL", filepath.Join(tmp, "journal.db"))
	path := filepath.Join(tmp, "view.json")
	if err := os.WriteFile(path, []byte(conflictedView), 0o644); err != nil {
		t.Fatal(err)
	}
	prev := resolveTake
	resolveTake = "incoming"
	defer func() { resolveTake = prev }()

	runCommand(t, "resolve", path, "--take", "incoming")
	resolved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(resolved), "<<<<<<<") {
		t.Fatalf("markers remain:\n%s", resolved)
	}
	if !strings.Contains(string(resolved), `"script": "\\tprint(2)",`) {
		t.Fatalf("wrong resolution:\n%s", resolved)
	}

	resolveTake = ""
	out := runCommand(t, "history")
	if !strings.Contains(out, "script:1-5") || !strings.Contains(out, "incoming") {
		t.Fatalf("history missing resolution: %s", out)
	}
}
