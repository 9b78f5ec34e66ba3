package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, Resolution{
		File:           "views/Button/view.json",
		ConflictID:     "script:12-18",
		JSONKey:        "script",
		CurrentBranch:  "HEAD",
		IncomingBranch: "feature",
		Choice:         "incoming",
		Script:         "\tprint(2)",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.Record(ctx, Resolution{
		File:       "tags/pump.json",
		ConflictID: "code:3-9",
		JSONKey:    "code",
		Choice:     "edited",
		Script:     "\treturn value",
	})
	require.NoError(t, err)

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Most recent first.
	assert.Equal(t, "tags/pump.json", got[0].File)
	assert.Equal(t, "edited", got[0].Choice)
	assert.Equal(t, "views/Button/view.json", got[1].File)
	assert.Equal(t, "\tprint(2)", got[1].Script)
	assert.NotEmpty(t, got[0].CreatedAt)
}

func TestRecentDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordRejectsBadChoice(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Record(context.Background(), Resolution{
		File:       "f.json",
		ConflictID: "script:0-4",
		JSONKey:    "script",
		Choice:     "whatever",
		Script:     "x",
	})
	require.Error(t, err)
}
