package linter

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// safeMarker replaces forbidden literals; the usual case is an LLM
// emitting a dangling code-fence variant that breaks chat formatting.
const safeMarker = "```"

type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	Flags       string `yaml:"flags"`
}

type Rules struct {
	ForbiddenPatterns []string `yaml:"forbidden_patterns"`
	Replacements      []Rule   `yaml:"replacements"`
}

// LoadRules reads the rule table from path. A missing or unreadable file
// yields an empty table, never an error.
func LoadRules(path string) Rules {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}
	}
	return rules
}

var multiNewline = regexp.MustCompile(`\n{3,}`)

// Format sanitizes generated text before delivery: forbidden literals are
// neutralized, replacement rules are applied in declared order (a malformed
// pattern is skipped, never fatal), runs of 3+ newlines collapse to 2 and
// surrounding whitespace is trimmed. Pure function of (text, rules).
func Format(text string, rules Rules) string {
	for _, p := range rules.ForbiddenPatterns {
		if p == "" {
			continue
		}
		text = strings.ReplaceAll(text, p, safeMarker)
	}

	for _, rule := range rules.Replacements {
		pattern := rule.Pattern
		var flags string
		if strings.Contains(rule.Flags, "ignorecase") {
			flags += "i"
		}
		if strings.Contains(rule.Flags, "multiline") {
			flags += "m"
		}
		if flags != "" {
			pattern = "(?" + flags + ")" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, rule.Replacement)
	}

	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
