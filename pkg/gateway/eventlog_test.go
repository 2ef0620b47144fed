package gateway

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 2, 0, time.UTC)
	assert.Equal(t, "07/03/24 09:05:02 -> node42:light_report:true\n", FormatLine(ts, "node42:light_report:true"))
}

func TestEventLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "log.txt")
	loc := time.FixedZone("IST", 2*60*60)

	l, err := OpenEventLog(path, loc)
	require.NoError(t, err)
	l.now = func() time.Time { return time.Date(2024, time.December, 31, 22, 30, 0, 0, time.UTC) }

	l.Append("node42:light_report:true")
	l.Append("garbage")
	require.NoError(t, l.Close())

	// Appending after close is dropped silently.
	l.Append("late")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "01/01/25 00:30:00 -> node42:light_report:true", lines[0])
	assert.Equal(t, "01/01/25 00:30:00 -> garbage", lines[1])
}

func TestEventLogAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o644))

	l, err := OpenEventLog(path, nil)
	require.NoError(t, err)
	l.Append("new")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "old line\n"))
	assert.True(t, strings.HasSuffix(string(data), " -> new\n"))
}
