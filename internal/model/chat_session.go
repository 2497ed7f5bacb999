package model

import "time"

// ChatSession groups turns into one conversation. Deletion is a soft delete:
// IsActive flips to false and the rows stay behind for the cleanup worker.
type ChatSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:64;not null" json:"title"`
	FirstMessage string    `gorm:"type:text;not null" json:"first_message"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
