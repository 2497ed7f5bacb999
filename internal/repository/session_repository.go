package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"genai-chat/internal/model"
)

// SessionSummary is a session row with the listing aggregates the UI shows.
type SessionSummary struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	FirstMessage  string     `json:"first_message"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	MessageCount  int64      `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

type SessionRepository struct {
	db     *gorm.DB
	schema SchemaVersion
}

func NewSessionRepository(db *gorm.DB, schema SchemaVersion) *SessionRepository {
	return &SessionRepository{db: db, schema: schema}
}

func (r *SessionRepository) Create(session *model.ChatSession) error {
	if !r.schema.SupportsSessions() {
		return ErrSchemaNotReady
	}
	session.IsActive = true
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

// ListSummaries returns active sessions, most recently touched first. On a
// legacy database there is nothing to list, so it returns an empty slice.
func (r *SessionRepository) ListSummaries() ([]SessionSummary, error) {
	if !r.schema.SupportsSessions() {
		return []SessionSummary{}, nil
	}

	var rows []SessionSummary
	err := r.db.Table("chat_sessions cs").
		Select("cs.id, cs.title, cs.first_message, cs.created_at, cs.updated_at, COUNT(c.id) AS message_count, MAX(c.created_at) AS last_message_at").
		Joins("LEFT JOIN chats c ON cs.id = c.session_id").
		Where("cs.is_active = ?", true).
		Group("cs.id").
		Order("cs.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions failed: %w", err)
	}
	return rows, nil
}

func (r *SessionRepository) GetByID(id uint) (*model.ChatSession, error) {
	if !r.schema.SupportsSessions() {
		return nil, ErrSchemaNotReady
	}

	var session model.ChatSession
	if err := r.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) UpdateTitle(id uint, title string) (bool, error) {
	if !r.schema.SupportsSessions() {
		return false, ErrSchemaNotReady
	}

	result := r.db.Model(&model.ChatSession{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "updated_at": time.Now()})
	if result.Error != nil {
		return false, fmt.Errorf("update session failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SoftDelete flips is_active; rows are never physically removed here.
func (r *SessionRepository) SoftDelete(id uint) (bool, error) {
	if !r.schema.SupportsSessions() {
		return false, ErrSchemaNotReady
	}

	result := r.db.Model(&model.ChatSession{}).Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return false, fmt.Errorf("soft delete session failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Touch bumps updated_at so the session sorts to the top of listings after a
// new turn lands in it.
func (r *SessionRepository) Touch(id uint) error {
	if !r.schema.SupportsSessions() {
		return ErrSchemaNotReady
	}
	if err := r.db.Model(&model.ChatSession{}).Where("id = ?", id).
		Update("updated_at", time.Now()).Error; err != nil {
		return fmt.Errorf("touch session failed: %w", err)
	}
	return nil
}
