package store

import (
	"context"
	"time"

	"zentrafuge/internal/models"
)

func (s *Store) CreatePeerMessage(ctx context.Context, m models.PeerMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO buddy_messages (id, message, sender_id, receiver_id, sent_at, received_at)
		VALUES ($1, $2, $3, NULL, $4, NULL)`, m.ID, m.Message, m.SenderID, m.SentAt)
	if err != nil {
		return storeErr("create peer message", err)
	}
	return nil
}

// UnclaimedPeerMessages returns up to limit unclaimed messages not authored
// by excludeSender.
func (s *Store) UnclaimedPeerMessages(ctx context.Context, excludeSender string, limit int) ([]models.PeerMessage, error) {
	msgs := []models.PeerMessage{}
	err := s.db.SelectContext(ctx, &msgs, `
		SELECT id, message, sender_id, receiver_id, sent_at, received_at
		FROM buddy_messages
		WHERE receiver_id IS NULL AND sender_id <> $1
		LIMIT $2`, excludeSender, limit)
	if err != nil {
		return nil, storeErr("query unclaimed", err)
	}
	return msgs, nil
}

// ClaimPeerMessage assigns the message to receiverID if it is still
// unclaimed. Returns false when a concurrent claimer got there first.
func (s *Store) ClaimPeerMessage(ctx context.Context, id, receiverID string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE buddy_messages SET receiver_id=$1, received_at=$2
		WHERE id=$3 AND receiver_id IS NULL`, receiverID, at, id)
	if err != nil {
		return false, storeErr("claim peer message", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("claim peer message", err)
	}
	return n == 1, nil
}

// PeerMessagesForUser returns every message the user sent or received,
// newest send time first; messages with no send time sort as oldest.
func (s *Store) PeerMessagesForUser(ctx context.Context, userID string) ([]models.PeerMessage, error) {
	msgs := []models.PeerMessage{}
	err := s.db.SelectContext(ctx, &msgs, `
		SELECT id, message, sender_id, receiver_id, sent_at, received_at
		FROM buddy_messages
		WHERE sender_id=$1 OR receiver_id=$1
		ORDER BY sent_at DESC NULLS LAST`, userID)
	if err != nil {
		return nil, storeErr("list peer messages", err)
	}
	return msgs, nil
}
