// Package buddy matches anonymous peer messages between users. A message is
// written unclaimed and handed to exactly one requester.
package buddy

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zentrafuge/internal/apperrors"
	"zentrafuge/internal/models"
)

// candidateLimit bounds how many unclaimed messages one claim attempt
// considers.
const candidateLimit = 10

// UserStore verifies that a participant exists.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
}

// MessageStore is the peer-message persistence collaborator. Claim is
// conditional: it reports false when the message was already claimed.
type MessageStore interface {
	CreatePeerMessage(ctx context.Context, m models.PeerMessage) error
	UnclaimedPeerMessages(ctx context.Context, excludeSender string, limit int) ([]models.PeerMessage, error)
	ClaimPeerMessage(ctx context.Context, id, receiverID string, at time.Time) (bool, error)
	PeerMessagesForUser(ctx context.Context, userID string) ([]models.PeerMessage, error)
}

type Service struct {
	users    UserStore
	messages MessageStore
	rng      *rand.Rand
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(users UserStore, messages MessageStore, rng *rand.Rand, logger *zap.Logger) *Service {
	return &Service{users: users, messages: messages, rng: rng, now: time.Now, logger: logger}
}

// Submit records a new unclaimed message from userID.
func (s *Service) Submit(ctx context.Context, userID, text string) (models.PeerMessage, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return models.PeerMessage{}, err
	}

	sent := s.now()
	msg := models.PeerMessage{
		ID:       uuid.NewString(),
		Message:  text,
		SenderID: userID,
		SentAt:   &sent,
	}
	if err := s.messages.CreatePeerMessage(ctx, msg); err != nil {
		return models.PeerMessage{}, err
	}
	return msg, nil
}

// ClaimRandom hands userID one unclaimed message authored by someone else,
// chosen uniformly among a bounded candidate set. Candidates lost to a
// concurrent claimer are dropped and another is drawn; when every candidate
// is gone the requester is told nothing is available.
func (s *Service) ClaimRandom(ctx context.Context, userID string) (models.PeerMessage, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return models.PeerMessage{}, err
	}

	candidates, err := s.messages.UnclaimedPeerMessages(ctx, userID, candidateLimit)
	if err != nil {
		return models.PeerMessage{}, err
	}

	for len(candidates) > 0 {
		i := s.rng.Intn(len(candidates))
		picked := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		received := s.now()
		claimed, err := s.messages.ClaimPeerMessage(ctx, picked.ID, userID, received)
		if err != nil {
			return models.PeerMessage{}, err
		}
		if !claimed {
			s.logger.Debug("peer message lost to concurrent claim", zap.String("message_id", picked.ID))
			continue
		}
		picked.ReceiverID = &userID
		picked.ReceivedAt = &received
		return picked, nil
	}

	return models.PeerMessage{}, apperrors.ErrNoMessagesAvailable
}

// MessageWithType decorates a peer message with its direction relative to
// the listing user.
type MessageWithType struct {
	models.PeerMessage
	Type string `json:"type"`
}

// ListAll returns every message userID sent or received, newest first.
func (s *Service) ListAll(ctx context.Context, userID string) ([]MessageWithType, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.PeerMessagesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]MessageWithType, 0, len(msgs))
	for _, m := range msgs {
		kind := "received"
		if m.SenderID == userID {
			kind = "sent"
		}
		out = append(out, MessageWithType{PeerMessage: m, Type: kind})
	}
	return out, nil
}
