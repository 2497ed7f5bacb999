package app

import (
	"context"

	"genai-chat/internal/model"
	"genai-chat/internal/repository"
)

// Store interfaces consumed by the services. The repository package provides
// the real implementations; tests substitute fakes.

type ChatStore interface {
	Create(chat *model.Chat) error
	CreateLegacy(chat *model.Chat) error
	ListBySessionID(sessionID uint) ([]model.Chat, error)
	ListAll() ([]repository.ChatListItem, error)
	GetByID(id uint) (*repository.ChatListItem, error)
	ListByKeywordID(keywordID uint) ([]repository.ChatListItem, error)
	DeleteByID(id uint) (bool, error)
}

type SessionStore interface {
	Create(session *model.ChatSession) error
	GetByID(id uint) (*model.ChatSession, error)
	ListSummaries() ([]repository.SessionSummary, error)
	UpdateTitle(id uint, title string) (bool, error)
	SoftDelete(id uint) (bool, error)
	Touch(id uint) error
}

type KeywordStore interface {
	Create(keyword *model.Keyword) error
	List() ([]model.Keyword, error)
	GetByID(id uint) (*model.Keyword, error)
	Update(id uint, title, prompt string) (bool, error)
	Delete(id uint) (bool, error)
	SearchByTitle(title string) ([]model.Keyword, error)
}

// TurnsCache mirrors cache.TurnsCache; a nil implementation is tolerated
// everywhere it appears.
type TurnsCache interface {
	Get(ctx context.Context, sessionID uint) ([]model.Chat, bool, error)
	Set(ctx context.Context, sessionID uint, turns []model.Chat) error
	Delete(ctx context.Context, sessionID uint) error
}

// CleanupPublisher hands a soft-deleted session to the async cascade worker.
type CleanupPublisher interface {
	Publish(ctx context.Context, sessionID uint) error
}

// TurnGenerator is the external generative model behind the fallback chain.
type TurnGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextExtractor turns an uploaded file into plain text.
type TextExtractor interface {
	Extract(path string) (string, error)
}
