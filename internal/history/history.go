package history

import (
	"sync"

	"ai-companion/internal/llm"
)

// Manager keeps a rolling per-user dialogue window. Long-term knowledge
// lives in the memory engine; this is only the immediate conversation.
type Manager struct {
	mu       sync.RWMutex
	limit    int
	sessions map[int64][]llm.Message
}

func NewManager(limit int) *Manager {
	return &Manager{limit: limit, sessions: make(map[int64][]llm.Message)}
}

func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *Manager) AppendUser(userID int64, content string) {
	m.append(userID, llm.Message{Role: "user", Content: content})
}

func (m *Manager) AppendAssistant(userID int64, content string) {
	m.append(userID, llm.Message{Role: "assistant", Content: content})
}

func (m *Manager) append(userID int64, msg llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := append(m.sessions[userID], msg)
	if m.limit > 0 && len(msgs) > m.limit {
		msgs = msgs[len(msgs)-m.limit:]
	}
	m.sessions[userID] = msgs
}

func (m *Manager) Get(userID int64) []llm.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	es := m.sessions[userID]
	out := make([]llm.Message, len(es))
	copy(out, es)
	return out
}
