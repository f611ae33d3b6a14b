package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "posledger/internal/log"
)

type entry struct {
	TS      string         `json:"ts"`
	Level   string         `json:"level"`
	Action  string         `json:"action"`
	Session string         `json:"session"`
	Kind    string         `json:"kind"`
	Err     string         `json:"err"`
	Fields  map[string]any `json:"fields"`
}

func decode(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var out []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		out = append(out, e)
	}
	return out
}

func TestHelpersWriteJSONLines(t *testing.T) {
	var buf bytes.Buffer
	sid := applog.Init(&buf)
	t.Cleanup(applog.Discard)

	applog.Info(nil, "store.load", map[string]any{"products": 3})
	applog.Audit(nil, "sale.commit", map[string]any{"sale_id": 1, "total": "53.73"})
	applog.Security(nil, "validation.fail", map[string]any{"field": "price"})
	applog.Error(nil, "store.save.fail", errors.New("disk full"), nil)

	entries := decode(t, &buf)
	require.Len(t, entries, 4)

	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "store.load", entries[0].Action)
	assert.EqualValues(t, 3, entries[0].Fields["products"])

	assert.Equal(t, "audit", entries[1].Kind)
	assert.Equal(t, "53.73", entries[1].Fields["total"])

	assert.Equal(t, "warn", entries[2].Level)
	assert.Equal(t, "error", entries[3].Level)
	assert.Equal(t, "disk full", entries[3].Err)

	for _, e := range entries {
		assert.Equal(t, sid, e.Session)
		assert.NotEmpty(t, e.TS)
	}
	assert.Equal(t, sid, applog.Session())
}

func TestDiscardDropsLines(t *testing.T) {
	var buf bytes.Buffer
	applog.Init(&buf)
	applog.Discard()
	applog.Info(nil, "ignored", nil)
	assert.Empty(t, buf.String())
	assert.Empty(t, applog.Session())
}
