package domain

const (
	firstLevelThreshold = 100
	thresholdGrowth     = 1.3
)

// LevelForXP returns the player level reached with xp total experience.
// Level 1 needs 100 xp to clear; each next threshold is the previous one
// times 1.3, truncated.
func LevelForXP(xp int) int {
	level, _, _ := LevelProgress(xp)
	return level
}

// LevelProgress returns the level for xp, the experience already earned
// inside that level and the size of the level's threshold.
func LevelProgress(xp int) (level, into, needed int) {
	level = 1
	threshold := firstLevelThreshold
	remaining := xp
	if remaining < 0 {
		remaining = 0
	}
	for remaining >= threshold {
		remaining -= threshold
		level++
		threshold = nextThreshold(threshold)
	}
	return level, remaining, threshold
}

// LevelThresholds returns the first n per-level thresholds (100, 130, 169, ...).
func LevelThresholds(n int) []int {
	out := make([]int, 0, n)
	threshold := firstLevelThreshold
	for i := 0; i < n; i++ {
		out = append(out, threshold)
		threshold = nextThreshold(threshold)
	}
	return out
}

func nextThreshold(t int) int {
	return int(float64(t) * thresholdGrowth)
}
