package conflict

import (
	"fmt"
	"strings"
)

// header returns the synthetic Python function definition shown above a
// decoded script so an external editor can make sense of the body's
// indentation. Purely presentational; never persisted.
func header(key string) string {
	switch key {
	case "script":
		return "def handleEvent(event):"
	case "code":
		return "def transform(self, value, quality, timestamp):"
	default:
		return fmt.Sprintf("def %s(value):", key)
	}
}

// Wrap prefixes script with the synthetic definition header for key.
func Wrap(key, script string) string {
	return header(key) + "\n" + script
}

// Unwrap strips the synthetic header added by Wrap. The header must still
// be byte-for-byte intact: an altered header means the resolver edited a
// line that does not belong to the real script, and the resolution must be
// redone rather than silently repaired.
func Unwrap(key, text string) (string, error) {
	want := header(key) + "\n"
	if !strings.HasPrefix(text, want) {
		return "", fmt.Errorf("%w: expected %q", ErrHeaderAltered, header(key))
	}
	return strings.TrimPrefix(text, want), nil
}
