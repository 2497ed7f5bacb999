package model

import "time"

// Chat is a single turn: one user message and the AI response it produced.
// SessionID, FileName and FileSize are nullable because rows written against
// a pre-session database never carry them.
type Chat struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   *uint     `gorm:"index" json:"session_id,omitempty"`
	UserMessage string    `gorm:"type:text;not null" json:"user_message"`
	AIResponse  string    `gorm:"column:ai_response;type:text;not null" json:"ai_response"`
	KeywordID   *uint     `gorm:"index" json:"keyword_id,omitempty"`
	FileName    *string   `gorm:"size:255" json:"file_name,omitempty"`
	FileSize    *int64    `json:"file_size,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
