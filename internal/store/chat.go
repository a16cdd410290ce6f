package store

import (
	"context"

	"zentrafuge/internal/models"
)

// AppendMessages adds entries to a user's conversation thread in order. The
// thread is implicit: it exists as soon as the first row lands.
func (s *Store) AppendMessages(ctx context.Context, userID string, msgs ...models.ChatMessage) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("begin append", err)
	}
	defer tx.Rollback()

	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chat_messages (user_id, sender, text, created_at)
			VALUES ($1, $2, $3, $4)`, userID, m.Sender, m.Text, m.Timestamp); err != nil {
			return storeErr("append message", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storeErr("commit append", err)
	}
	return nil
}

// ListMessages returns the thread in append order. A user with no thread
// gets an empty slice, not an error.
func (s *Store) ListMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	msgs := []models.ChatMessage{}
	err := s.db.SelectContext(ctx, &msgs, `
		SELECT id, user_id, sender, text, created_at
		FROM chat_messages WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	return msgs, nil
}

// ClearMessages resets the thread to empty. Clearing an absent thread is a
// no-op success.
func (s *Store) ClearMessages(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id=$1`, userID); err != nil {
		return storeErr("clear messages", err)
	}
	return nil
}
