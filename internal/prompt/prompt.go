package prompt

import (
	"fmt"
	"strings"

	"ai-companion/internal/affinity"
	"ai-companion/internal/character"
	"ai-companion/internal/memory"
)

// Builder assembles the per-user context injected into chat completion
// calls: base character prompt, relationship tier and memory sections.
type Builder struct {
	affinity *affinity.Manager
	memory   *memory.Manager
	card     character.Card
}

func NewBuilder(aff *affinity.Manager, mem *memory.Manager, card character.Card) *Builder {
	return &Builder{affinity: aff, memory: mem, card: card}
}

// SystemPrompt builds the system prompt for one turn. userMessage drives
// topic relevance; pass "" to skip the topics section.
func (b *Builder) SystemPrompt(userID, userMessage string) string {
	score := b.affinity.GetScore(userID)
	levelName, levelPrompt := affinity.ResolveLevel(score, b.card.AffinityLevels)

	prompt := fmt.Sprintf("%s\n\n【好感度: %d/%d - %s】\n%s",
		b.card.BasePrompt, score, b.card.AffinityConfig.Max, levelName, levelPrompt)

	if mem := b.memory.GetMemoryForPrompt(userID, userMessage); mem != "" {
		prompt += "\n\n【この人の記憶】\n" + mem
	}
	return prompt
}

// MoodHint returns the instruction appended when the sentiment delta is
// notable, so the reply reflects the affinity swing.
func MoodHint(delta int) string {
	switch {
	case delta < 0:
		return fmt.Sprintf("\n\n【注意: ユーザーの発言は少し失礼でした。好感度が%d下がりました。少し傷ついた様子で返答してください】", delta)
	case delta >= 3:
		return fmt.Sprintf("\n\n【注意: ユーザーの発言はとても優しかったです。好感度が+%d上がりました。嬉しそうに返答してください】", delta)
	default:
		return ""
	}
}

// MemoryUpdatePrompt asks the model to fold the latest exchange into the
// three memory layers, in a line-oriented format ParseMemoryUpdate reads.
func MemoryUpdatePrompt(oldPermanent, oldRecent, userMsg, botReply string) string {
	return fmt.Sprintf(`会話から記憶を更新してください。

【ルール】
- 比喩・アナロジー禁止（事実のみ）
- 異なるトピックを無理に結びつけない
- 簡潔に（略語OK）

【現在の基本情報】
%s

【直近の記憶】
%s

【新しい会話】
U:%s
B:%s

以下の形式で出力:
PERMANENT: 名前/好み/約束（変更あれば）
RECENT: 今回の会話の要約（1行）
TOPIC: 新しい話題があれば（なければ空）`,
		orNone(oldPermanent), orNone(oldRecent), clip(userMsg, 150), clip(botReply, 150))
}

// MemoryUpdate is the parsed result of a memory-update completion.
// Empty fields mean "leave that layer untouched".
type MemoryUpdate struct {
	Permanent string
	Recent    string
	Topic     string
}

// ParseMemoryUpdate extracts the PERMANENT/RECENT/TOPIC lines from the
// model output. Unknown lines are ignored; placeholder values meaning
// "no change" are treated as empty.
func ParseMemoryUpdate(text string) MemoryUpdate {
	var upd MemoryUpdate
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "PERMANENT:"):
			upd.Permanent = cleanValue(strings.TrimPrefix(line, "PERMANENT:"))
		case strings.HasPrefix(line, "RECENT:"):
			upd.Recent = cleanValue(strings.TrimPrefix(line, "RECENT:"))
		case strings.HasPrefix(line, "TOPIC:"):
			upd.Topic = cleanValue(strings.TrimPrefix(line, "TOPIC:"))
		}
	}
	return upd
}

func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "(なし)", "(変更なし)", "なし":
		return ""
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "(なし)"
	}
	return s
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
