package model

import "time"

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one turn in a session's conversation. Rows are append-only and
// ordered by CreatedAt; once written they are never mutated. Transient
// transcript flags (placeholder, delivery state) live in the app layer and
// are deliberately not persisted.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	Sender    Sender    `gorm:"size:16;not null" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAssistant
}
