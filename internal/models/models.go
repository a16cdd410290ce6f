package models

import "time"

// Buddy vibes recognized by the persona builder. Anything else falls back
// to a neutral generation temperature.
const (
	VibeCalm      = "calm"
	VibeEnergetic = "energetic"
	VibeWise      = "wise"
	VibeShy       = "shy"
	VibeCurious   = "curious"
)

const (
	SenderUser  = "user"
	SenderBuddy = "buddy"
)

type User struct {
	UserID       string    `db:"user_id" json:"userId"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	BuddyName    string    `db:"buddy_name" json:"buddyName"`
	BuddyVibe    string    `db:"buddy_vibe" json:"buddyVibe"`
	GrowthLevel  int       `db:"growth_level" json:"growthLevel"`
	GrowthPoints int       `db:"growth_points" json:"growthPoints"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ChatMessage is one entry in a user's buddy conversation thread.
type ChatMessage struct {
	ID        int64     `db:"id" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	Sender    string    `db:"sender" json:"sender"`
	Text      string    `db:"text" json:"text"`
	Timestamp time.Time `db:"created_at" json:"timestamp"`
}

// PeerMessage is an anonymous note passed between users. It is created
// unclaimed (ReceiverID null) and claimed at most once.
type PeerMessage struct {
	ID         string     `db:"id" json:"id"`
	Message    string     `db:"message" json:"message"`
	SenderID   string     `db:"sender_id" json:"senderId"`
	ReceiverID *string    `db:"receiver_id" json:"receiverId,omitempty"`
	SentAt     *time.Time `db:"sent_at" json:"sent,omitempty"`
	ReceivedAt *time.Time `db:"received_at" json:"received,omitempty"`
}
