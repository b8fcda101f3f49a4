package model

import "time"

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionArchived SessionStatus = "archived"
)

// Session is one document-editing engagement, from upload through finalize.
// The identifier is minted by the workflow layer when it parses the upload,
// so the primary key is the externally issued UUID. TextContent is the
// authoritative editable source for the next AI turn; a session restored
// without it degrades to chat-only mode.
type Session struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	Status      SessionStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	OriginalURL string        `gorm:"size:512" json:"original_url"`
	DraftURL    string        `gorm:"size:512" json:"draft_url"`
	TextContent string        `gorm:"type:mediumtext" json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
