package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestAppendAndRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, Entry{
		Server: "9.9.9.9:53", Name: "example.com", QType: "A",
		RCode: "NOERROR", Answers: 1, RTTMs: 12,
	}))
	require.NoError(t, j.Append(ctx, Entry{
		Server: "9.9.9.9:53", Name: "nope.invalid", QType: "AAAA",
		RCode: "NXDOMAIN",
	}))

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "nope.invalid", entries[0].Name)
	assert.Equal(t, "NXDOMAIN", entries[0].RCode)
	assert.Equal(t, "example.com", entries[1].Name)
	assert.Equal(t, 1, entries[1].Answers)
	assert.WithinDuration(t, time.Now(), entries[0].At, time.Minute)
}

func TestRecentLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, j.Append(ctx, Entry{Server: "s", Name: "n", QType: "A"}))
	}

	entries, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "non-positive limits clamp to one entry")
}

func TestRecentEmpty(t *testing.T) {
	j := openTestJournal(t)
	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordsFailures(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, Entry{
		Server: "10.0.0.1:53", Name: "example.com", QType: "A",
		Err: "i/o timeout",
	}))

	entries, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "i/o timeout", entries[0].Err)
	assert.Empty(t, entries[0].RCode)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, Entry{Server: "s", Name: "persist.example", QType: "A"}))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "persist.example", entries[0].Name)
}
