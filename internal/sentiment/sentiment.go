package sentiment

import (
	"context"
	"encoding/json"
	"log"
	"regexp"

	"ai-companion/internal/llm"
)

// DefaultDelta is used whenever classification fails for any reason.
const DefaultDelta = 1

const (
	minDelta = -5
	maxDelta = 5
)

const classifierPrompt = `あなたはメッセージの感情分析をするAIです。
ユーザーのメッセージが「優しい・褒め言葉・好意的」か「普通」か「ひどい・侮辱的・攻撃的」かを判定し、
好感度の変動値を-5から+5の整数で返してください。

判定基準:
- +5: とても優しい、愛情表現、褒め言葉
- +3: 優しい、気遣い、励まし
- +1: 普通の会話、質問
- -1: 少し失礼、からかい
- -3: 失礼、批判的
- -5: 非常にひどい、侮辱、暴言

JSONフォーマットで回答: {"score": 数値, "reason": "理由"}`

// models rarely answer with bare JSON; pull the first object out of
// whatever surrounds it
var jsonObject = regexp.MustCompile(`\{[^}]+\}`)

// Analyzer classifies a user message into an affinity delta in [-5, 5].
type Analyzer struct {
	client llm.Client
}

func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Delta returns the affinity change for message. Any failure of the
// classification call or its output format falls back to DefaultDelta.
func (a *Analyzer) Delta(ctx context.Context, message string) int {
	resp, err := a.client.Generate(ctx, []llm.Message{
		{Role: "system", Content: classifierPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		log.Printf("sentiment analysis failed: %v", err)
		return DefaultDelta
	}

	raw := jsonObject.FindString(resp.Content)
	if raw == "" {
		return DefaultDelta
	}
	var parsed struct {
		Score  *float64 `json:"score"`
		Reason string   `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed.Score == nil {
		return DefaultDelta
	}

	delta := int(*parsed.Score)
	if delta < minDelta {
		return minDelta
	}
	if delta > maxDelta {
		return maxDelta
	}
	return delta
}
