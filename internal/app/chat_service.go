package app

import (
	"strings"

	"genai-chat/internal/model"
	"genai-chat/internal/repository"
)

// ChatService is the plain listing/maintenance surface over chat rows.
type ChatService struct {
	chats ChatStore
}

func NewChatService(chats ChatStore) *ChatService {
	return &ChatService{chats: chats}
}

func (s *ChatService) List() ([]repository.ChatListItem, error) {
	return s.chats.ListAll()
}

func (s *ChatService) Get(id uint) (*repository.ChatListItem, error) {
	chat, err := s.chats.GetByID(id)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	return chat, nil
}

// Create inserts a turn by hand, without session linkage. Used by tooling
// that imports transcripts; the AI pipeline never calls this.
func (s *ChatService) Create(userMessage, aiResponse string, keywordID *uint) (*model.Chat, error) {
	userMessage = strings.TrimSpace(userMessage)
	aiResponse = strings.TrimSpace(aiResponse)
	if userMessage == "" || aiResponse == "" {
		return nil, ErrInvalidInput
	}

	chat := &model.Chat{
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		KeywordID:   keywordID,
	}
	if err := s.chats.CreateLegacy(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) ListByKeyword(keywordID uint) ([]repository.ChatListItem, error) {
	return s.chats.ListByKeywordID(keywordID)
}

func (s *ChatService) Delete(id uint) error {
	found, err := s.chats.DeleteByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrChatNotFound
	}
	return nil
}
