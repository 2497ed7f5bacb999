package model

import "time"

// Keyword is a reusable instruction template prefixed onto AI requests.
type Keyword struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
