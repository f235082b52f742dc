package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"codeberg.org/devmentor/server/internal/mentor"
	"codeberg.org/devmentor/server/internal/missions"
)

// caps how much conversation history a session accumulates; older
// turns are dropped from the front
const maxHistoryTurns = 50

// represents one user's mentor conversation
type Session struct {
	ID           string
	History      []mentor.Message
	Missions     map[int]missions.Mission
	LastActivity time.Time
	ExpiresAt    time.Time
}

// manages mentor conversations in memory. Conversations are
// ephemeral: a restart or TTL expiry discards them.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

// returns a new session manager
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	// start cleanup goroutine
	go m.cleanupExpiredSessions()

	return m
}

// returns a new random session ID
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// creates a new conversation
func (m *Manager) CreateSession() (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:           id,
		History:      []mentor.Message{},
		Missions:     map[int]missions.Mission{},
		LastActivity: now,
		ExpiresAt:    now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return session, nil
}

// retrieves a conversation by ID
func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	// check if expired
	if time.Now().After(session.ExpiresAt) {
		return nil, false
	}

	return session, true
}

// AppendTurn records a user input and the mentor's reply, merges any
// missions the reply carried, and refreshes the TTL
func (m *Manager) AppendTurn(sessionID, input, reply string, parsed map[int]missions.Mission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	// check if expired
	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, sessionID)
		return ErrSessionExpired
	}

	session.History = append(session.History,
		mentor.Message{Role: "user", Content: input},
		mentor.Message{Role: "assistant", Content: reply},
	)

	if overflow := len(session.History) - maxHistoryTurns*2; overflow > 0 {
		session.History = session.History[overflow:]
	}

	for number, mission := range parsed {
		session.Missions[number] = mission
	}

	now := time.Now()
	session.LastActivity = now
	session.ExpiresAt = now.Add(m.ttl)

	return nil
}

// removes a conversation
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// runs periodically to remove expired conversations
func (m *Manager) cleanupExpiredSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()

		for id, session := range m.sessions {
			if now.After(session.ExpiresAt) {
				delete(m.sessions, id)
			}
		}

		m.mu.Unlock()
	}
}

// returns the number of active conversations
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
