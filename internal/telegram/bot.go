package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-companion/internal/affinity"
	"ai-companion/internal/character"
	"ai-companion/internal/history"
	"ai-companion/internal/linter"
	"ai-companion/internal/llm"
	"ai-companion/internal/memory"
	"ai-companion/internal/prompt"
	"ai-companion/internal/sentiment"
)

// Telegram rejects messages above 4096 characters.
const maxMessageLen = 4096

type Bot struct {
	api          *tgbotapi.BotAPI
	llmClient    llm.Client
	analyzer     *sentiment.Analyzer
	affinity     *affinity.Manager
	memory       *memory.Manager
	prompts      *prompt.Builder
	history      *history.Manager
	linterRules  linter.Rules
	card         character.Card
	adminUserID  int64
	notifyChatID int64
}

func New(
	botToken string,
	llmClient llm.Client,
	analyzer *sentiment.Analyzer,
	aff *affinity.Manager,
	mem *memory.Manager,
	prompts *prompt.Builder,
	hist *history.Manager,
	linterRules linter.Rules,
	card character.Card,
	adminUserID int64,
	notifyChatID int64,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:          api,
		llmClient:    llmClient,
		analyzer:     analyzer,
		affinity:     aff,
		memory:       mem,
		prompts:      prompts,
		history:      hist,
		linterRules:  linterRules,
		card:         card,
		adminUserID:  adminUserID,
		notifyChatID: notifyChatID,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	log.Printf("logged in as @%s", b.api.Self.UserName)
	log.Printf("character: %s (%s)", b.card.Name, b.card.Personality)

	b.notify(startupGreeting(time.Now().Hour()))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.notify(shutdownGreeting(time.Now().Hour()))
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		b.handleIncomingMessage(ctx, update.Message)
	}
}

// SendDailyCheckin posts the hour-appropriate greeting to the notify chat.
func (b *Bot) SendDailyCheckin() {
	b.notify(startupGreeting(time.Now().Hour()))
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "affinity":
			b.handleAffinityCommand(msg)
		case "reset":
			b.history.Reset(msg.From.ID)
			b.sendMessage(msg.Chat.ID, "今の会話は忘れたよ。記憶はちゃんと残ってるからね")
		case "shutdown":
			b.handleShutdownCommand(msg)
		}
		return
	}
	if msg.Text == "" {
		return
	}
	b.handleChat(ctx, msg)
}

func (b *Bot) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	key := strconv.FormatInt(userID, 10)

	log.Printf("incoming message from %d (@%s): %q", userID, msg.From.UserName, msg.Text)

	// Classify sentiment and update affinity before generating, so the
	// reply already reflects the swing.
	delta := b.analyzer.Delta(ctx, msg.Text)
	newScore := b.affinity.AddDelta(key, delta)
	log.Printf("affinity for %s: %d (delta %+d)", key, newScore, delta)

	systemPrompt := b.prompts.SystemPrompt(key, msg.Text) + prompt.MoodHint(delta)

	contextMsgs := []llm.Message{{Role: "system", Content: systemPrompt}}
	contextMsgs = append(contextMsgs, b.history.Get(userID)...)
	contextMsgs = append(contextMsgs, llm.Message{Role: "user", Content: msg.Text})

	resp, err := b.llmClient.Generate(ctx, contextMsgs)
	if err != nil {
		log.Printf("failed to generate text: %v", err)
		b.sendMessage(msg.Chat.ID, "ごめんね、今ちょっと調子が悪いみたい…少し待ってね")
		return
	}
	log.Printf("LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	reply := linter.Format(resp.Content, b.linterRules)

	b.history.AppendUser(userID, msg.Text)
	b.history.AppendAssistant(userID, reply)

	for _, chunk := range splitMessage(reply, maxMessageLen) {
		b.sendMessage(msg.Chat.ID, chunk)
	}

	// Memory update runs in the background; failure leaves prior memory
	// untouched.
	go b.updateMemory(key, msg.Text, reply)
}

func (b *Bot) updateMemory(key, userMsg, reply string) {
	ctx := context.Background()
	oldPermanent := b.memory.GetPermanent(key)
	oldRecent := b.memory.GetRecent(key)

	req := prompt.MemoryUpdatePrompt(oldPermanent, oldRecent, userMsg, reply)
	resp, err := b.llmClient.Generate(ctx, []llm.Message{{Role: "user", Content: req}})
	if err != nil {
		log.Printf("memory update failed: %v", err)
		return
	}

	upd := prompt.ParseMemoryUpdate(resp.Content)
	if upd.Permanent != "" {
		b.memory.UpdatePermanent(key, upd.Permanent)
	}
	if upd.Recent != "" {
		b.memory.UpdateRecent(key, upd.Recent)
	}
	if upd.Topic != "" {
		b.memory.AddTopic(key, upd.Topic)
	}
}

func (b *Bot) handleAffinityCommand(msg *tgbotapi.Message) {
	key := strconv.FormatInt(msg.From.ID, 10)
	stats := b.affinity.GetStats(key)
	levelName, _ := affinity.ResolveLevel(stats.Score, b.card.AffinityLevels)

	name := b.card.Name
	if name == "" {
		name = "AI"
	}
	text := fmt.Sprintf("💕 %sとの関係\n好感度: %d/%d\n状態: %s\n会話回数: %d回",
		name, stats.Score, b.card.AffinityConfig.Max, levelName, stats.MessageCount)
	b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleShutdownCommand(msg *tgbotapi.Message) {
	if b.adminUserID == 0 || msg.From.ID != b.adminUserID {
		b.sendMessage(msg.Chat.ID, "❌ このコマンドは管理者のみ使用できます")
		return
	}
	b.sendMessage(msg.Chat.ID, "シャットダウンします...")
	b.notify(shutdownGreeting(time.Now().Hour()))
	b.api.StopReceivingUpdates()
}

func (b *Bot) notify(text string) {
	if b.notifyChatID == 0 {
		return
	}
	b.sendMessage(b.notifyChatID, text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

// splitMessage cuts text into rune-safe chunks of at most limit characters.
func splitMessage(text string, limit int) []string {
	r := []rune(text)
	if len(r) <= limit {
		return []string{text}
	}
	var out []string
	for len(r) > limit {
		out = append(out, string(r[:limit]))
		r = r[limit:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
