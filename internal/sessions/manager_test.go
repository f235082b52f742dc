package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/devmentor/server/internal/missions"
)

func TestCreateAndGetSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.History)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, 1, m.GetSessionCount())
}

func TestGetSession_Unknown(t *testing.T) {
	m := NewManager(time.Hour)

	_, ok := m.GetSession("nonexistent")
	assert.False(t, ok)
}

func TestGetSession_Expired(t *testing.T) {
	m := NewManager(time.Millisecond)

	session, err := m.CreateSession()
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)
}

func TestAppendTurn(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	parsed := map[int]missions.Mission{
		1: {Title: "First", Content: "Do the thing."},
	}

	err = m.AppendTurn(session.ID, "how do I start?", "start with the thing", parsed)
	require.NoError(t, err)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	require.Len(t, got.History, 2)
	assert.Equal(t, "user", got.History[0].Role)
	assert.Equal(t, "how do I start?", got.History[0].Content)
	assert.Equal(t, "assistant", got.History[1].Role)
	assert.Equal(t, "First", got.Missions[1].Title)
}

func TestAppendTurn_UnknownSession(t *testing.T) {
	m := NewManager(time.Hour)

	err := m.AppendTurn("nonexistent", "hi", "hello", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAppendTurn_MergesMissions(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	require.NoError(t, m.AppendTurn(session.ID, "a", "b", map[int]missions.Mission{
		1: {Title: "First"},
	}))
	require.NoError(t, m.AppendTurn(session.ID, "c", "d", map[int]missions.Mission{
		1: {Title: "First, revised"},
		2: {Title: "Second"},
	}))

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Equal(t, "First, revised", got.Missions[1].Title)
	assert.Equal(t, "Second", got.Missions[2].Title)
}

func TestAppendTurn_BoundsHistory(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	for i := 0; i < maxHistoryTurns+10; i++ {
		require.NoError(t, m.AppendTurn(session.ID, "q", "a", nil))
	}

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Len(t, got.History, maxHistoryTurns*2)
}

func TestDeleteSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	m.DeleteSession(session.ID)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.GetSessionCount())
}
