package character

import (
	"os"

	"gopkg.in/yaml.v3"

	"ai-companion/internal/affinity"
)

const defaultBasePrompt = "あなたはAIアシスタントです。"

type Bounds struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"`
	Min     int `yaml:"min"`
}

// Card is the character definition loaded at startup. It is treated as
// immutable after load and passed explicitly to the components that need it.
type Card struct {
	Name           string           `yaml:"name"`
	Personality    string           `yaml:"personality"`
	BasePrompt     string           `yaml:"base_prompt"`
	AffinityConfig Bounds           `yaml:"affinity_config"`
	AffinityLevels []affinity.Level `yaml:"affinity_levels"`
}

func Default() Card {
	return Card{
		BasePrompt:     defaultBasePrompt,
		AffinityConfig: Bounds{Initial: 20, Max: 100, Min: 0},
	}
}

// Load reads the character card from path. A missing or unreadable file
// yields the default card, never an error.
func Load(path string) Card {
	card := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return card
	}
	if err := yaml.Unmarshal(data, &card); err != nil {
		return Default()
	}
	if card.BasePrompt == "" {
		card.BasePrompt = defaultBasePrompt
	}
	return card
}
