// Package growth implements the points ledger that promotes a buddy through
// its five maturity levels.
package growth

// MaxLevel is terminal; a buddy at MaxLevel never advances.
const MaxLevel = 5

// Thresholds maps a level to the points required to reach the next one.
// Levels without an entry are terminal.
var Thresholds = map[int]int{
	1: 50,
	2: 150,
	3: 300,
	4: 500,
}

// ApplyDelta adds delta points to the current total and evaluates a single
// level transition against the current level's threshold. Exactly one step
// is considered per call: a delta that crosses two thresholds levels up once
// here and again on the next evaluation. delta must be non-negative.
func ApplyDelta(currentLevel, currentPoints, delta int) (newPoints, newLevel int, leveledUp bool) {
	newPoints = currentPoints + delta
	newLevel = currentLevel
	if threshold, ok := Thresholds[currentLevel]; ok && newPoints >= threshold {
		newLevel = currentLevel + 1
	}
	return newPoints, newLevel, newLevel != currentLevel
}

// InteractionValue converts the combined length of a user message and the
// buddy's reply into growth points: one point per 100 characters, capped at 5
// to bound single-turn inflation.
func InteractionValue(message, reply string) int {
	v := (len(message) + len(reply)) / 100
	if v > 5 {
		return 5
	}
	return v
}
