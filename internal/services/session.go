package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/doc-designer/internal/editor"
	"github.com/diewo77/doc-designer/internal/layout"
)

var ErrSessionNotFound = errors.New("session_not_found")

// Session is one in-memory editing session. The editor itself is not safe
// for concurrent use; every access goes through Do.
type Session struct {
	ID       string
	Created  time.Time
	mu       sync.Mutex
	ed       *editor.Editor
	gesture  *editor.Gesture
	lastUsed time.Time
}

// Do runs fn with exclusive access to the session editor.
func (s *Session) Do(fn func(e *editor.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.ed)
}

// Gesture runs fn like Do, also handing it the pending pointer gesture (nil
// when none). fn returns the gesture to keep pending.
func (s *Session) Gesture(fn func(e *editor.Editor, g *editor.Gesture) *editor.Gesture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	s.gesture = fn(s.ed, s.gesture)
}

// Pending reports whether a pointer gesture is in progress.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture != nil
}

// SessionState is the client-facing view of a session.
type SessionState struct {
	ID           string          `json:"id"`
	Template     layout.Template `json:"template"`
	Selected     string          `json:"selected,omitempty"`
	Zoom         float64         `json:"zoom"`
	CanUndo      bool            `json:"can_undo"`
	CanRedo      bool            `json:"can_redo"`
	HistoryLen   int             `json:"history_len"`
	HistoryIndex int             `json:"history_index"`
}

// State snapshots the session.
func (s *Session) State() SessionState {
	var st SessionState
	s.Do(func(e *editor.Editor) {
		sel, _ := e.Selected()
		st = SessionState{
			ID:           s.ID,
			Template:     e.Template(),
			Selected:     sel,
			Zoom:         e.Zoom(),
			CanUndo:      e.CanUndo(),
			CanRedo:      e.CanRedo(),
			HistoryLen:   e.History().Len(),
			HistoryIndex: e.History().Index(),
		}
	})
	return st
}

// SessionStore keeps editing sessions in memory. Two sessions on the same
// template are independent; saving is last write wins.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []editor.Option
}

func NewSessionStore(opts ...editor.Option) *SessionStore {
	return &SessionStore{sessions: map[string]*Session{}, opts: opts}
}

// Open starts a session editing a copy of t.
func (s *SessionStore) Open(t layout.Template) *Session {
	now := time.Now()
	sess := &Session{ID: uuid.NewString(), Created: now, lastUsed: now, ed: editor.New(t, s.opts...)}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Prune closes sessions idle for longer than ttl and returns how many.
func (s *SessionStore) Prune(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
