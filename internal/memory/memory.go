package memory

import (
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	maxPermanentLen = 300
	maxRecentLen    = 200
	maxTopics       = 10
	maxRelevant     = 3

	topicSeparator = "|"
)

// decorative suffixes the memory model appends to topic names; stripped
// before keyword matching so 「戦車の話」 still matches 「戦車」.
var topicSuffixes = []string{"の話", "の約束"}

// Topic is one dated entry of the middle retention layer.
type Topic struct {
	Text string `yaml:"text"`
	Date string `yaml:"date"`
}

// Record is a single user's three-layer memory.
type Record struct {
	Permanent string  `yaml:"permanent"`
	Recent    string  `yaml:"recent"`
	Topics    []Topic `yaml:"topics"`
}

func (r Record) empty() bool {
	return r.Permanent == "" && r.Recent == "" && len(r.Topics) == 0
}

// Repository abstracts persistence of the full user->record mapping,
// with the same contract as the affinity repository: missing or malformed
// data loads as an empty mapping, saves are atomic.
type Repository interface {
	Load() (map[string]Record, error)
	Save(records map[string]Record) error
}

// Manager owns per-user memory in three independently bounded layers:
// permanent facts, a rolling recent summary and a deduplicated topic list.
type Manager struct {
	repo Repository
	mu   sync.Mutex
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

func (m *Manager) GetPermanent(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, rec := m.ensure(userID)
	return rec.Permanent
}

// UpdatePermanent fully replaces the permanent layer, truncated to the cap.
func (m *Manager) UpdatePermanent(userID, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, rec := m.ensure(userID)
	rec.Permanent = truncate(content, maxPermanentLen)
	data[userID] = rec
	m.save(data)
}

func (m *Manager) GetRecent(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, rec := m.ensure(userID)
	return rec.Recent
}

// UpdateRecent fully replaces the recent summary, truncated to the cap.
func (m *Manager) UpdateRecent(userID, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, rec := m.ensure(userID)
	rec.Recent = truncate(content, maxRecentLen)
	data[userID] = rec
	m.save(data)
}

func (m *Manager) GetTopics(userID string) []Topic {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, rec := m.ensure(userID)
	return rec.Topics
}

// AddTopic prepends a dated topic. An existing entry with the same leading
// segment (text before the separator) is replaced and moved to the front;
// the list is trimmed to the cap from the tail.
func (m *Manager) AddTopic(userID, topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, rec := m.ensure(userID)

	key := topic
	if i := strings.Index(topic, topicSeparator); i >= 0 {
		key = topic[:i]
	}

	kept := make([]Topic, 0, len(rec.Topics)+1)
	kept = append(kept, Topic{Text: topic, Date: time.Now().Format("2006-01-02")})
	for _, t := range rec.Topics {
		if strings.HasPrefix(t.Text, key) {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) > maxTopics {
		kept = kept[:maxTopics]
	}
	rec.Topics = kept
	data[userID] = rec
	m.save(data)
}

// GetRelevantTopics returns up to 3 stored topics whose keywords occur in
// message, most recent first. Matching is a deliberately naive
// case-insensitive substring check over whitespace-split tokens of at
// least two runes.
func (m *Manager) GetRelevantTopics(userID, message string) []Topic {
	if message == "" {
		return nil
	}
	topics := m.GetTopics(userID)
	if len(topics) == 0 {
		return nil
	}

	messageLower := strings.ToLower(message)
	var relevant []Topic
	for _, t := range topics {
		content := topicContent(t.Text)
		for _, s := range topicSuffixes {
			content = strings.ReplaceAll(content, s, "")
		}
		for _, word := range strings.Fields(content) {
			if utf8.RuneCountInString(word) >= 2 && strings.Contains(messageLower, strings.ToLower(word)) {
				relevant = append(relevant, t)
				break
			}
		}
	}
	if len(relevant) > maxRelevant {
		relevant = relevant[:maxRelevant]
	}
	return relevant
}

// GetMemoryForPrompt composes the labeled memory sections injected into the
// system prompt. This is the only read path prompt assembly should use.
func (m *Manager) GetMemoryForPrompt(userID, userMessage string) string {
	var parts []string

	if permanent := m.GetPermanent(userID); permanent != "" {
		parts = append(parts, "【基本情報】"+permanent)
	}
	if recent := m.GetRecent(userID); recent != "" {
		parts = append(parts, "【直近】"+recent)
	}
	if userMessage != "" {
		if relevant := m.GetRelevantTopics(userID, userMessage); len(relevant) > 0 {
			contents := make([]string, 0, len(relevant))
			for _, t := range relevant {
				contents = append(contents, topicContent(t.Text))
			}
			parts = append(parts, "【関連する過去の話題】"+strings.Join(contents, "、"))
		}
	}

	return strings.Join(parts, "\n")
}

// HasMemory reports whether any layer is non-empty, without materializing
// a record for an unknown user.
func (m *Manager) HasMemory(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.load()
	rec, ok := data[userID]
	if !ok {
		return false
	}
	return !rec.empty()
}

// ensure returns the user's record, creating and persisting a default one
// on first access.
func (m *Manager) ensure(userID string) (map[string]Record, Record) {
	data := m.load()
	rec, ok := data[userID]
	if !ok {
		rec = Record{}
		data[userID] = rec
		m.save(data)
	}
	return data, rec
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
		log.Printf("failed to save memory data: %v", err)
	}
}

func topicContent(text string) string {
	if i := strings.Index(text, topicSeparator); i >= 0 {
		return text[:i]
	}
	return text
}

// truncate caps s at max runes. The stored text is Japanese, so byte
// truncation would split characters.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
