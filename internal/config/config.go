package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	AdminUserID      int64  `env:"ADMIN_USER"`
	NotifyChatID     int64  `env:"NOTIFY_CHAT_ID"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Character card and output linter rules
	CharacterFilePath string `env:"CHARACTER_FILE_PATH" envDefault:"config/character.yaml"`
	LinterFilePath    string `env:"LINTER_FILE_PATH" envDefault:"config/linter.yaml"`

	// Per-user state storage
	AffinityFilePath string `env:"AFFINITY_FILE_PATH" envDefault:"data/user_affinity.json"`
	MemoryFilePath   string `env:"MEMORY_FILE_PATH" envDefault:"data/user_memory.yaml"`

	// Daily check-in message, cron spec in UTC. Empty disables it.
	CheckinCronSpec string `env:"CHECKIN_CRON_SPEC" envDefault:"0 9 * * *"`

	// Dialogue history window per user, in messages
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"20"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
