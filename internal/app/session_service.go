package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"genai-chat/internal/model"
	"genai-chat/internal/repository"
)

// SessionService is the session management surface: listing with aggregates,
// reads with turns, rename, soft delete, and explicit turn appends.
type SessionService struct {
	sessions   SessionStore
	chats      ChatStore
	turnsCache TurnsCache
	publisher  CleanupPublisher
	logger     *zap.Logger
}

func NewSessionService(
	sessions SessionStore,
	chats ChatStore,
	turnsCache TurnsCache,
	publisher CleanupPublisher,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessions:   sessions,
		chats:      chats,
		turnsCache: turnsCache,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *SessionService) List() ([]repository.SessionSummary, error) {
	return s.sessions.ListSummaries()
}

// Get returns the session and its turns in ascending order, serving turns
// from the cache when possible.
func (s *SessionService) Get(ctx context.Context, id uint) (*model.ChatSession, []model.Chat, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSchemaNotReady) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	if s.turnsCache != nil {
		if cached, hit, cacheErr := s.turnsCache.Get(ctx, id); cacheErr == nil && hit {
			return session, cached, nil
		}
	}

	turns, err := s.chats.ListBySessionID(id)
	if err != nil {
		return nil, nil, err
	}
	if s.turnsCache != nil {
		if err := s.turnsCache.Set(ctx, id, turns); err != nil {
			s.logger.Debug("cache session turns failed", zap.Error(err))
		}
	}
	return session, turns, nil
}

// Create makes a session explicitly. Title defaults to the truncated first
// message when the client supplies none.
func (s *SessionService) Create(title, firstMessage string) (*model.ChatSession, error) {
	firstMessage = strings.TrimSpace(firstMessage)
	if firstMessage == "" {
		return nil, ErrInvalidInput
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = SessionTitle(firstMessage)
	}

	session := &model.ChatSession{
		Title:        title,
		FirstMessage: firstMessage,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Rename(id uint, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidInput
	}

	found, err := s.sessions.UpdateTitle(id, title)
	if err != nil {
		if errors.Is(err, repository.ErrSchemaNotReady) {
			return ErrSessionNotFound
		}
		return err
	}
	if !found {
		return ErrSessionNotFound
	}
	return nil
}

// Delete soft-deletes the session and hands the cascade (child chat rows,
// cached turns) to the async cleanup worker. Publish failures are absorbed:
// the rows stay orphaned until a later delete retries.
func (s *SessionService) Delete(ctx context.Context, id uint) error {
	found, err := s.sessions.SoftDelete(id)
	if err != nil {
		if errors.Is(err, repository.ErrSchemaNotReady) {
			return ErrSessionNotFound
		}
		return err
	}
	if !found {
		return ErrSessionNotFound
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, id); err != nil {
			s.logger.Warn("publish session cleanup failed",
				zap.Uint("session_id", id),
				zap.Error(err),
			)
		}
	}
	if s.turnsCache != nil {
		if err := s.turnsCache.Delete(ctx, id); err != nil {
			s.logger.Debug("invalidate turns cache failed", zap.Error(err))
		}
	}
	return nil
}

// AddChat appends an already-generated turn to an explicit session.
func (s *SessionService) AddChat(ctx context.Context, sessionID uint, userMessage, aiResponse string, keywordID *uint) (*model.Chat, error) {
	userMessage = strings.TrimSpace(userMessage)
	aiResponse = strings.TrimSpace(aiResponse)
	if userMessage == "" || aiResponse == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSchemaNotReady) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	chat := &model.Chat{
		SessionID:   &sessionID,
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		KeywordID:   keywordID,
	}
	if err := s.chats.Create(chat); err != nil {
		return nil, err
	}

	if err := s.sessions.Touch(sessionID); err != nil {
		s.logger.Debug("touch session failed", zap.Error(err))
	}
	if s.turnsCache != nil {
		if err := s.turnsCache.Delete(ctx, sessionID); err != nil {
			s.logger.Debug("invalidate turns cache failed", zap.Error(err))
		}
	}
	return chat, nil
}
