// Package prompts holds the in-memory catalog of daily reflection prompts.
// The catalog is a startup constant; newly submitted prompts are accepted but
// intentionally not persisted.
package prompts

import "math/rand"

// Catalog is the full ordered list of reflection prompts.
var Catalog = []string{
	"What made you smile today?",
	"What's something you're grateful for right now?",
	"What's a small act of kindness you experienced or witnessed recently?",
	"What's something you're looking forward to?",
	"What's a challenge you're facing, and how might you overcome it?",
	"What's something you've learned recently?",
	"What would you tell your younger self today?",
	"What's a quality you appreciate about yourself?",
	"What's a small step you could take toward a goal?",
	"What's something that brought you peace recently?",
	"What's a boundary you need to set or maintain?",
	"What's something you can let go of today?",
	"What's a way you could be kinder to yourself?",
	"What's a simple pleasure you could enjoy today?",
	"What's something you're proud of accomplishing?",
	"What's a way you could connect with someone today?",
	"What's a healthy habit you'd like to build?",
	"What's a thought pattern you'd like to change?",
	"What's something that inspires you?",
	"What's a way you could help someone else today?",
}

// Service serves prompt reads with an injected random source so tests can be
// deterministic.
type Service struct {
	catalog []string
	rng     *rand.Rand
}

func NewService(rng *rand.Rand) *Service {
	return &Service{catalog: Catalog, rng: rng}
}

// Daily returns one uniformly random prompt from the catalog.
func (s *Service) Daily() string {
	return s.catalog[s.rng.Intn(len(s.catalog))]
}

// All returns the full catalog in order.
func (s *Service) All() []string {
	return s.catalog
}
