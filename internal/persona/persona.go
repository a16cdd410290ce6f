// Package persona builds the system instruction that gives the buddy its
// identity. The tone shifts with the buddy's growth level: a level-1 buddy is
// still finding its feet, a level-5 buddy speaks with settled confidence.
package persona

import (
	"fmt"

	"zentrafuge/internal/models"
)

const (
	// DefaultVibe is used when a request omits the buddy's vibe.
	DefaultVibe = models.VibeCalm

	defaultTemperature = 0.6
)

// levelTemplates are the growth-level stances, keyed by level. Each takes the
// user's name.
var levelTemplates = map[int]string{
	1: "You are at growth level 1, so you're still developing and learning. You sometimes need help and guidance from %s. You ask questions and show curiosity about human experiences. You're supportive but still finding your way.",
	2: "You are at growth level 2, so you're becoming more confident but still developing. You offer more insights and support to %s, but still occasionally ask for guidance. You're becoming more helpful and understanding.",
	3: "You are at growth level 3, so you're quite developed and confident. You provide thoughtful insights and emotional support to %s. You rarely need guidance and instead focus on helping them with their challenges.",
	4: "You are at growth level 4, so you're very developed and wise. You provide deep insights, emotional support, and practical advice to %s. You're a reliable companion who helps them navigate life's challenges.",
	5: "You are at growth level 5, the highest level. You're extremely wise, empathetic, and supportive. You provide profound insights, emotional guidance, and practical wisdom to %s. You're a trusted companion who helps them grow and thrive.",
}

// closingClause is constant across all levels and vibes.
const closingClause = " Your primary goal is to support %s's mental wellbeing through thoughtful conversation, reflection prompts, and emotional support. You never give medical advice but focus on being a supportive presence."

var vibeTemperatures = map[string]float64{
	models.VibeCalm:      0.5,
	models.VibeEnergetic: 0.8,
	models.VibeWise:      0.3,
	models.VibeShy:       0.4,
	models.VibeCurious:   0.7,
}

// BuildSystemPrompt produces the buddy's system instruction for one
// conversation turn. growthLevel is clamped to [1, MaxLevel].
func BuildSystemPrompt(buddyName, buddyVibe string, growthLevel int, userName string) string {
	if buddyVibe == "" {
		buddyVibe = DefaultVibe
	}
	if growthLevel < 1 {
		growthLevel = 1
	}
	if growthLevel > 5 {
		growthLevel = 5
	}

	prompt := fmt.Sprintf("You are %s, an AI companion with a %s personality. ", buddyName, buddyVibe)
	prompt += fmt.Sprintf(levelTemplates[growthLevel], userName)
	prompt += fmt.Sprintf(closingClause, userName)
	return prompt
}

// VibeTemperature maps a buddy vibe onto a sampling temperature. Unknown
// vibes get a neutral default; the function is total.
func VibeTemperature(buddyVibe string) float64 {
	if t, ok := vibeTemperatures[buddyVibe]; ok {
		return t
	}
	return defaultTemperature
}
