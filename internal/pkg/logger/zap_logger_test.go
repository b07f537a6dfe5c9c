package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.log")
	l := NewIsolatedLogger(path)

	l.Debug("HUB", "dropped below file level", nil)
	l.Info("HUB", "client registered", map[string]interface{}{"session_id": "abc"})
	l.Error("HUB", "write failed", map[string]interface{}{"error": "broken pipe"})
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)

	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "client registered", lines[0]["message"])
	assert.Equal(t, "HUB", lines[0]["module"])
	assert.Equal(t, "abc", lines[0]["details"].(map[string]any)["session_id"])

	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "broken pipe", lines[1]["error_ref"])
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	l.Info("X", "nothing", nil)
	assert.NoError(t, l.Sync())
}
