package session

import (
	"sync"

	"github.com/google/uuid"

	"finanalyst/pkg/core/chat"
	"finanalyst/pkg/core/metrics"
)

// Session is the per-conversation scope. The conversation log outlives
// individual uploads; the analysis and its serialized context belong to
// the most recent successfully loaded statement and are replaced
// wholesale when a new file arrives.
type Session struct {
	ID string

	mu         sync.Mutex
	log        *chat.Log
	analysis   *metrics.Analysis
	serialized string
}

func newSession() *Session {
	return &Session{
		ID:  uuid.NewString(),
		log: chat.NewLog(),
	}
}

// SetAnalysis installs a freshly computed analysis, discarding the
// previous one, and flips the lead turn to data-ready if it has never
// been flipped.
func (s *Session) SetAnalysis(a *metrics.Analysis, serialized string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = a
	s.serialized = serialized
	s.log.MarkDataReady()
}

// Analysis returns the current analysis, or nil before the first
// successful upload.
func (s *Session) Analysis() *metrics.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

// Context returns the serialized analysis context; empty before the
// first successful upload.
func (s *Session) Context() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serialized
}

// Append adds a turn to the conversation log.
func (s *Session) Append(t chat.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Append(t)
}

// Messages returns a snapshot of the conversation in order. Handlers
// return this after every mutation so the caller can redraw.
func (s *Session) Messages() []chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Turns()
}

// Manager owns the live sessions. Sessions are isolated; nothing is
// shared between them and nothing survives a process restart.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session.
func (m *Manager) Create() *Session {
	s := newSession()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}
