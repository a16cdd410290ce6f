// Package chat sequences one conversation turn with the buddy: persona
// prompt, generated reply, thread persistence, growth accounting.
package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"zentrafuge/internal/apperrors"
	"zentrafuge/internal/growth"
	"zentrafuge/internal/llm"
	"zentrafuge/internal/models"
	"zentrafuge/internal/persona"
)

// replyTokenCap bounds the buddy's response length per turn.
const replyTokenCap = 300

// UserStore is the slice of persistence the orchestrator needs for users.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	AddPoints(ctx context.Context, userID string, delta int) (int, error)
	SetLevel(ctx context.Context, userID string, level int) error
}

// ThreadStore appends to a user's conversation thread.
type ThreadStore interface {
	AppendMessages(ctx context.Context, userID string, msgs ...models.ChatMessage) error
}

// Generator is the generative-text collaborator.
type Generator interface {
	Chat(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64) (string, llm.Usage, error)
}

// HistoryEntry is one prior turn supplied by the client.
type HistoryEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type TurnRequest struct {
	UserID    string
	Message   string
	BuddyName string
	BuddyVibe string
	History   []HistoryEntry
}

type TurnResult struct {
	Reply        string
	Usage        llm.Usage
	GrowthPoints int
	GrowthLevel  int
	LeveledUp    bool
}

type Service struct {
	users   UserStore
	threads ThreadStore
	gen     Generator
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(users UserStore, threads ThreadStore, gen Generator, logger *zap.Logger) *Service {
	return &Service{users: users, threads: threads, gen: gen, now: time.Now, logger: logger}
}

// HandleTurn runs one exchange with the buddy. The three side effects
// (generation call, thread append, growth update) are sequential and
// non-transactional; any failure aborts the turn at that step.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	user, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	systemPrompt := persona.BuildSystemPrompt(req.BuddyName, req.BuddyVibe, user.GrowthLevel, user.Name)

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, h := range req.History {
		role := "assistant"
		if h.Sender == models.SenderUser {
			role = "user"
		}
		messages = append(messages, llm.Message{Role: role, Content: h.Text})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})

	reply, usage, err := s.gen.Chat(ctx, messages, replyTokenCap, persona.VibeTemperature(req.BuddyVibe))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
	}

	now := s.now()
	err = s.threads.AppendMessages(ctx, req.UserID,
		models.ChatMessage{Sender: models.SenderUser, Text: req.Message, Timestamp: now},
		models.ChatMessage{Sender: models.SenderBuddy, Text: reply, Timestamp: now},
	)
	if err != nil {
		return nil, err
	}

	delta := growth.InteractionValue(req.Message, reply)
	totalPoints, err := s.users.AddPoints(ctx, req.UserID, delta)
	if err != nil {
		return nil, err
	}

	_, newLevel, leveledUp := growth.ApplyDelta(user.GrowthLevel, totalPoints, 0)
	if leveledUp {
		if err := s.users.SetLevel(ctx, req.UserID, newLevel); err != nil {
			return nil, err
		}
		s.logger.Info("buddy leveled up",
			zap.String("user_id", req.UserID),
			zap.Int("level", newLevel),
			zap.Int("points", totalPoints),
		)
	}

	return &TurnResult{
		Reply:        reply,
		Usage:        usage,
		GrowthPoints: totalPoints,
		GrowthLevel:  newLevel,
		LeveledUp:    leveledUp,
	}, nil
}
