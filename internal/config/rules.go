package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/alexanderramin/questgame/internal/domain"
)

// Rarity holds the base probability of each loot tier.
type Rarity struct {
	Common float64
	Rare   float64
	Epic   float64
}

// GitRules controls rewards granted by version-control sync.
type GitRules struct {
	Enabled  bool
	CommitXP int
	TagXP    int
}

// Rules are the tunable game rules. The zero value is not usable; start
// from DefaultRules.
type Rules struct {
	CategoryWeights      map[domain.Category]float64
	Rarity               Rarity
	DailyEffortTargetMin int
	DailyEffortMaxMin    int
	Git                  GitRules
}

// DefaultRules returns the rules used when no configuration overrides them.
func DefaultRules() Rules {
	return Rules{
		CategoryWeights: map[domain.Category]float64{
			domain.CategoryBuild: 1.0,
			domain.CategoryShip:  1.25,
			domain.CategoryReach: 1.2,
		},
		Rarity:               Rarity{Common: 0.8, Rare: 0.18, Epic: 0.02},
		DailyEffortTargetMin: 25,
		DailyEffortMaxMin:    50,
		Git:                  GitRules{Enabled: true, CommitXP: 2, TagXP: 20},
	}
}

// Weight returns the xp multiplier for c, 1.0 when unset.
func (r Rules) Weight(c domain.Category) float64 {
	if w, ok := r.CategoryWeights[c]; ok {
		return w
	}
	return 1.0
}

// LoadRules reads rules from a JSON file. A missing file yields the
// defaults. Malformed values keep their default and are reported as
// warnings; only an unreadable file is an error.
func LoadRules(path string) (Rules, []string, error) {
	if path == "" {
		return DefaultRules(), nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultRules(), nil, nil
		}
		return DefaultRules(), nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	rules, warnings := ParseRules(data)
	return rules, warnings, nil
}

// ParseRules decodes a JSON config document on top of DefaultRules. Each key
// is decoded on its own so one bad value never discards the others.
func ParseRules(data []byte) (Rules, []string) {
	rules := DefaultRules()
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		warn("config is not a JSON object, using defaults: %v", err)
		return rules, warnings
	}

	if msg, ok := raw["category_weights"]; ok {
		var weights map[string]json.RawMessage
		if err := json.Unmarshal(msg, &weights); err != nil {
			warn("category_weights must be an object, using defaults")
		} else {
			for _, name := range sortedKeys(weights) {
				c := domain.Category(name)
				if !c.IsValid() {
					warn("category_weights.%s: unknown category, ignored", name)
					continue
				}
				var w float64
				if err := json.Unmarshal(weights[name], &w); err != nil || w < 0 {
					warn("category_weights.%s: expected a non-negative number, using %.2f", name, rules.CategoryWeights[c])
					continue
				}
				rules.CategoryWeights[c] = w
			}
		}
	}

	if msg, ok := raw["rarity"]; ok {
		var rarity map[string]json.RawMessage
		if err := json.Unmarshal(msg, &rarity); err != nil {
			warn("rarity must be an object, using defaults")
		} else {
			decodeProbability(rarity, "common", &rules.Rarity.Common, warn)
			decodeProbability(rarity, "rare", &rules.Rarity.Rare, warn)
			decodeProbability(rarity, "epic", &rules.Rarity.Epic, warn)
		}
	}

	decodePositiveInt(raw, "daily_effort_target_minutes", &rules.DailyEffortTargetMin, warn)
	decodePositiveInt(raw, "daily_effort_max_minutes", &rules.DailyEffortMaxMin, warn)

	if msg, ok := raw["git"]; ok {
		var git map[string]json.RawMessage
		if err := json.Unmarshal(msg, &git); err != nil {
			warn("git must be an object, using defaults")
		} else {
			if v, ok := git["enabled"]; ok {
				if err := json.Unmarshal(v, &rules.Git.Enabled); err != nil {
					warn("git.enabled: expected a boolean, using %t", rules.Git.Enabled)
				}
			}
			decodeNonNegativeInt(git, "git.", "commit_xp", &rules.Git.CommitXP, warn)
			decodeNonNegativeInt(git, "git.", "tag_xp", &rules.Git.TagXP, warn)
		}
	}

	return rules, warnings
}

func decodeProbability(m map[string]json.RawMessage, key string, dst *float64, warn func(string, ...any)) {
	v, ok := m[key]
	if !ok {
		return
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil || f < 0 || f > 1 {
		warn("rarity.%s: expected a probability in [0,1], using %.3f", key, *dst)
		return
	}
	*dst = f
}

func decodePositiveInt(m map[string]json.RawMessage, key string, dst *int, warn func(string, ...any)) {
	v, ok := m[key]
	if !ok {
		return
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil || n <= 0 {
		warn("%s: expected a positive integer, using %d", key, *dst)
		return
	}
	*dst = n
}

func decodeNonNegativeInt(m map[string]json.RawMessage, prefix, key string, dst *int, warn func(string, ...any)) {
	v, ok := m[key]
	if !ok {
		return
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil || n < 0 {
		warn("%s%s: expected a non-negative integer, using %d", prefix, key, *dst)
		return
	}
	*dst = n
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
