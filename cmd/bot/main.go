package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ai-companion/internal/affinity"
	"ai-companion/internal/character"
	"ai-companion/internal/config"
	"ai-companion/internal/history"
	"ai-companion/internal/linter"
	"ai-companion/internal/llm"
	"ai-companion/internal/memory"
	"ai-companion/internal/prompt"
	"ai-companion/internal/scheduler"
	"ai-companion/internal/sentiment"
	"ai-companion/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	card := character.Load(cfg.CharacterFilePath)
	linterRules := linter.LoadRules(cfg.LinterFilePath)

	affRepo, err := affinity.NewFileRepository(cfg.AffinityFilePath)
	if err != nil {
		log.Fatalf("failed to init affinity storage: %v", err)
	}
	affMgr := affinity.NewManager(affRepo,
		card.AffinityConfig.Initial, card.AffinityConfig.Max, card.AffinityConfig.Min)

	memRepo, err := memory.NewFileRepository(cfg.MemoryFilePath)
	if err != nil {
		log.Fatalf("failed to init memory storage: %v", err)
	}
	memMgr := memory.NewManager(memRepo)

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		llmClient,
		sentiment.NewAnalyzer(llmClient),
		affMgr,
		memMgr,
		prompt.NewBuilder(affMgr, memMgr, card),
		history.NewManager(cfg.HistoryLimit),
		linterRules,
		card,
		cfg.AdminUserID,
		cfg.NotifyChatID,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.CheckinCronSpec != "" {
		sched := scheduler.New(cfg.CheckinCronSpec)
		sched.SetCheckinFunction(bot.SendDailyCheckin)
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
}
