package chat

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(i int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"n":%d}`, i))
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(100)

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Snapshot())
	assert.NotNil(t, h.Snapshot(), "empty snapshot must marshal as [], not null")
}

func TestHistoryAppendBelowLimit(t *testing.T) {
	h := NewHistory(100)

	for i := range 10 {
		h.Append(entry(i))
	}

	assert.Equal(t, 10, h.Len())

	snapshot := h.Snapshot()
	require.Len(t, snapshot, 10)

	for i, payload := range snapshot {
		assert.JSONEq(t, string(entry(i)), string(payload))
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(100)

	total := 250
	for i := range total {
		h.Append(entry(i))
		assert.LessOrEqual(t, h.Len(), 100)
	}

	assert.Equal(t, 100, h.Len())

	snapshot := h.Snapshot()
	require.Len(t, snapshot, 100)

	// exactly the last 100, in submission order
	for i, payload := range snapshot {
		assert.JSONEq(t, string(entry(total-100+i)), string(payload))
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory(3)

	h.Append(entry(0))
	h.Append(entry(1))

	snapshot := h.Snapshot()

	// appends past the limit rotate the buffer; the earlier snapshot
	// must be unaffected
	h.Append(entry(2))
	h.Append(entry(3))
	h.Append(entry(4))

	require.Len(t, snapshot, 2)
	assert.JSONEq(t, string(entry(0)), string(snapshot[0]))
	assert.JSONEq(t, string(entry(1)), string(snapshot[1]))
}

func TestHistorySmallLimitWraps(t *testing.T) {
	h := NewHistory(2)

	h.Append(entry(1))
	h.Append(entry(2))
	h.Append(entry(3))

	snapshot := h.Snapshot()
	require.Len(t, snapshot, 2)
	assert.JSONEq(t, string(entry(2)), string(snapshot[0]))
	assert.JSONEq(t, string(entry(3)), string(snapshot[1]))
}
