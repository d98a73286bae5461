package affinity

import (
	"log"
	"sync"
)

// Record is a single user's persisted affinity state. Field names match the
// on-disk layout; absent fields fall back to zero values on load.
type Record struct {
	Score        int `json:"affinity"`
	MessageCount int `json:"message_count"`
}

// Repository abstracts persistence of the full user->record mapping.
// Load must return an empty mapping for missing or malformed data.
// Save must be atomic: either the whole mapping is written or the
// previous content stays intact.
type Repository interface {
	Load() (map[string]Record, error)
	Save(records map[string]Record) error
}

// Manager owns per-user affinity scores bounded to [min, max].
// Every mutation round-trips the full mapping through the repository,
// so all mutating calls are serialized behind a single mutex.
type Manager struct {
	repo    Repository
	initial int
	max     int
	min     int
	mu      sync.Mutex
}

func NewManager(repo Repository, initial, max, min int) *Manager {
	return &Manager{repo: repo, initial: initial, max: max, min: min}
}

// GetScore returns the user's score, creating and persisting a default
// record if the user has never been seen.
func (m *Manager) GetScore(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.load()
	rec, ok := data[userID]
	if !ok {
		rec = Record{Score: m.initial}
		data[userID] = rec
		m.save(data)
	}
	return rec.Score
}

// AddDelta shifts the user's score by delta, clamped to the configured
// bounds, and counts the interaction.
func (m *Manager) AddDelta(userID string, delta int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.load()
	rec, ok := data[userID]
	if !ok {
		rec = Record{Score: m.initial}
	}
	rec.Score = m.clamp(rec.Score + delta)
	rec.MessageCount++
	data[userID] = rec
	m.save(data)
	return rec.Score
}

// SetScore stores the clamped value directly. MessageCount is preserved:
// a direct set is not an interaction.
func (m *Manager) SetScore(userID string, value int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.load()
	rec := data[userID]
	rec.Score = m.clamp(value)
	data[userID] = rec
	m.save(data)
	return rec.Score
}

// GetStats returns the user's record without materializing one for an
// unknown user. A stats probe must not create state.
func (m *Manager) GetStats(userID string) Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.load()
	rec, ok := data[userID]
	if !ok {
		return Record{Score: m.initial}
	}
	return rec
}

func (m *Manager) clamp(v int) int {
	if v > m.max {
		return m.max
	}
	if v < m.min {
		return m.min
	}
	return v
}

func (m *Manager) load() map[string]Record {
	data, err := m.repo.Load()
	if err != nil || data == nil {
		return map[string]Record{}
	}
	return data
}

func (m *Manager) save(data map[string]Record) {
	if err := m.repo.Save(data); err != nil {
		log.Printf("failed to save affinity data: %v", err)
	}
}
