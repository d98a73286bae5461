package affinity

import "sort"

// Level is one row of the relationship tier table from the character card.
type Level struct {
	Threshold      int    `yaml:"threshold"`
	Description    string `yaml:"description"`
	PromptAddition string `yaml:"prompt_addition"`
}

// ResolveLevel picks the highest-threshold level whose threshold is <= score.
// If no threshold qualifies the first configured entry wins, matching the
// configured base tier. An empty table yields empty strings.
func ResolveLevel(score int, levels []Level) (string, string) {
	if len(levels) == 0 {
		return "", ""
	}
	sorted := make([]Level, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold > sorted[j].Threshold })
	for _, l := range sorted {
		if score >= l.Threshold {
			return l.Description, l.PromptAddition
		}
	}
	return levels[0].Description, levels[0].PromptAddition
}
