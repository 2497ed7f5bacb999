package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"genai-chat/internal/model"
)

// legacyChatColumns is the column subset shared by both schema generations.
var legacyChatColumns = []string{"user_message", "ai_response", "keyword_id", "created_at"}

// ChatListItem is a chat row joined with its keyword and session titles for
// listing endpoints. SessionTitle stays nil on a legacy database.
type ChatListItem struct {
	ID           uint      `json:"id"`
	SessionID    *uint     `json:"session_id,omitempty"`
	UserMessage  string    `json:"user_message"`
	AIResponse   string    `gorm:"column:ai_response" json:"ai_response"`
	KeywordID    *uint     `json:"keyword_id,omitempty"`
	FileName     *string   `json:"file_name,omitempty"`
	FileSize     *int64    `json:"file_size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	KeywordTitle *string   `json:"keyword_title,omitempty"`
	SessionTitle *string   `json:"session_title,omitempty"`
}

type ChatRepository struct {
	db     *gorm.DB
	schema SchemaVersion
}

func NewChatRepository(db *gorm.DB, schema SchemaVersion) *ChatRepository {
	return &ChatRepository{db: db, schema: schema}
}

// Create inserts a full chat row when the schema supports sessions and a
// session id is present; otherwise it inserts only the legacy column subset.
func (r *ChatRepository) Create(chat *model.Chat) error {
	if r.schema.SupportsSessions() && chat.SessionID != nil {
		if err := r.db.Create(chat).Error; err != nil {
			return fmt.Errorf("create chat failed: %w", err)
		}
		return nil
	}
	return r.CreateLegacy(chat)
}

// CreateLegacy writes only the columns every schema generation has. This is
// the degrade path: it must succeed on a database that has never been
// migrated to sessions.
func (r *ChatRepository) CreateLegacy(chat *model.Chat) error {
	chat.SessionID = nil
	chat.FileName = nil
	chat.FileSize = nil
	if err := r.db.Select(legacyChatColumns).Create(chat).Error; err != nil {
		return fmt.Errorf("create legacy chat failed: %w", err)
	}
	return nil
}

// ListBySessionID returns the session's turns in ascending created_at order.
// On a legacy database no history can exist, so it returns an empty slice.
func (r *ChatRepository) ListBySessionID(sessionID uint) ([]model.Chat, error) {
	if !r.schema.SupportsSessions() {
		return []model.Chat{}, nil
	}

	var chats []model.Chat
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("list chats by session failed: %w", err)
	}
	return chats, nil
}

func (r *ChatRepository) ListAll() ([]ChatListItem, error) {
	var rows []ChatListItem
	query := r.listQuery().Order("c.created_at DESC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list chats failed: %w", err)
	}
	return rows, nil
}

func (r *ChatRepository) GetByID(id uint) (*ChatListItem, error) {
	var rows []ChatListItem
	query := r.listQuery().Where("c.id = ?", id).Limit(1)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get chat failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *ChatRepository) ListByKeywordID(keywordID uint) ([]ChatListItem, error) {
	var rows []ChatListItem
	query := r.listQuery().Where("c.keyword_id = ?", keywordID).Order("c.created_at DESC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list chats by keyword failed: %w", err)
	}
	return rows, nil
}

func (r *ChatRepository) DeleteByID(id uint) (bool, error) {
	result := r.db.Delete(&model.Chat{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete chat failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteBySessionID removes all turns of a session. Used by the cleanup
// worker after a soft delete, never from the request path.
func (r *ChatRepository) DeleteBySessionID(sessionID uint) (int64, error) {
	if !r.schema.SupportsSessions() {
		return 0, nil
	}
	result := r.db.Where("session_id = ?", sessionID).Delete(&model.Chat{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete chats by session failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ChatRepository) listQuery() *gorm.DB {
	if r.schema.SupportsSessions() {
		return r.db.Table("chats c").
			Select("c.id, c.session_id, c.user_message, c.ai_response, c.keyword_id, c.file_name, c.file_size, c.created_at, k.title AS keyword_title, cs.title AS session_title").
			Joins("LEFT JOIN keywords k ON c.keyword_id = k.id").
			Joins("LEFT JOIN chat_sessions cs ON c.session_id = cs.id")
	}
	return r.db.Table("chats c").
		Select("c.id, c.user_message, c.ai_response, c.keyword_id, c.created_at, k.title AS keyword_title").
		Joins("LEFT JOIN keywords k ON c.keyword_id = k.id")
}
