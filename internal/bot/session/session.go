package session

import (
	"sync"
	"time"
)

// Design flow steps, in questionnaire order.
const (
	StepMainColor          = "awaiting_main_color"
	StepTextColor          = "awaiting_text_color"
	StepText               = "awaiting_text"
	StepAdditionalElements = "awaiting_additional_elements"
	StepAdditionalFile     = "awaiting_additional_file"
	StepElementsPosition   = "awaiting_elements_position"
	StepAgeHeight          = "awaiting_age_height"
	StepFont               = "awaiting_font"
	StepCompleted          = "completed"
)

// StartCommand carries the user identity captured at flow start. The
// menu button and the inline callback both build one and feed it into
// the same entry point.
type StartCommand struct {
	UserID    int64
	Username  string
	FirstName string
	ChatID    int64
}

// Session is the in-memory record of one user's progress through a
// design flow. Answer fields are mutated once per accepted answer.
type Session struct {
	UserID    int64
	Username  string
	FirstName string
	ChatID    int64

	CapaType           string
	MainColor          string
	TextColor          string
	Text               string
	AdditionalElements string
	ElementsPosition   string
	Age                string
	Height             string
	Font               string

	Step        string
	CompletedAt time.Time
}

// Manager owns the mapping from user id to Session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for a user if one exists.
func (m *Manager) Get(userID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[userID]
}

// Start creates a fresh session for the user at the first step,
// overwriting any previous one.
func (m *Manager) Start(cmd StartCommand, capaType string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := &Session{
		UserID:    cmd.UserID,
		Username:  cmd.Username,
		FirstName: cmd.FirstName,
		ChatID:    cmd.ChatID,
		CapaType:  capaType,
		Step:      StepMainColor,
	}
	m.sessions[cmd.UserID] = sess
	return sess
}

// Active reports whether the user has a session in a non-terminal step.
func (m *Manager) Active(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	return ok && sess.Step != StepCompleted
}

// Reset marks the user's session terminal so further messages fall
// through to menu handling. Persisted data is untouched.
func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[userID]; ok {
		sess.Step = StepCompleted
	}
}
