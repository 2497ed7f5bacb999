package app

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"genai-chat/internal/model"
)

// AskService is the turn orchestrator: it assembles the prompt, runs the
// model fallback chain, and persists the turn best-effort. A successful
// generation is never lost to a persistence failure — persistence errors are
// logged and absorbed, and the caller still gets the response text.
type AskService struct {
	generator       TurnGenerator
	extractor       TextExtractor
	chats           ChatStore
	sessions        SessionStore
	keywords        KeywordStore
	turnsCache      TurnsCache
	logger          *zap.Logger
	maxContextTurns int
}

type AskInput struct {
	Text      string
	KeywordID *uint
	SessionID *uint
}

type AskFileInput struct {
	FilePath  string
	FileName  string
	FileSize  int64
	Text      string
	KeywordID *uint
	SessionID *uint
}

type AskResult struct {
	Response  string `json:"response"`
	SessionID *uint  `json:"session_id,omitempty"`
	ChatID    *uint  `json:"chat_id,omitempty"`
}

func NewAskService(
	generator TurnGenerator,
	extractor TextExtractor,
	chats ChatStore,
	sessions SessionStore,
	keywords KeywordStore,
	turnsCache TurnsCache,
	logger *zap.Logger,
	maxContextTurns int,
) *AskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxContextTurns < 0 {
		maxContextTurns = 0
	}
	return &AskService{
		generator:       generator,
		extractor:       extractor,
		chats:           chats,
		sessions:        sessions,
		keywords:        keywords,
		turnsCache:      turnsCache,
		logger:          logger,
		maxContextTurns: maxContextTurns,
	}
}

func (s *AskService) AskText(ctx context.Context, input AskInput) (*AskResult, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrTextRequired
	}

	prompt := BuildPrompt(PromptInput{
		Text:        text,
		Instruction: s.resolveInstruction(input.KeywordID),
		History:     s.loadHistory(input.SessionID),
	})

	aiText, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	outcome := s.persistTurn(ctx, turnRecord{
		SessionID:   input.SessionID,
		UserMessage: text,
		AIResponse:  aiText,
		KeywordID:   input.KeywordID,
	})
	return buildResult(aiText, outcome), nil
}

// AskFile extracts the uploaded file, then runs the same pipeline as
// AskText. The temp file is removed exactly once, success or failure.
func (s *AskService) AskFile(ctx context.Context, input AskFileInput) (*AskResult, error) {
	if input.FilePath == "" {
		return nil, ErrFileRequired
	}
	defer func() {
		if err := os.Remove(input.FilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove uploaded file failed",
				zap.String("path", input.FilePath),
				zap.Error(err),
			)
		}
	}()

	fileText, err := s.extractor.Extract(input.FilePath)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	prompt := BuildPrompt(PromptInput{
		Text:        text,
		FileText:    fileText,
		Instruction: s.resolveInstruction(input.KeywordID),
		History:     s.loadHistory(input.SessionID),
	})

	aiText, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	fileName := input.FileName
	fileSize := input.FileSize
	outcome := s.persistTurn(ctx, turnRecord{
		SessionID:   input.SessionID,
		UserMessage: FileTurnMessage(fileName, fileText),
		AIResponse:  aiText,
		KeywordID:   input.KeywordID,
		FileName:    &fileName,
		FileSize:    &fileSize,
	})
	return buildResult(aiText, outcome), nil
}

// resolveInstruction looks up the keyword template. A missing keyword is not
// an error: the turn simply runs without the instruction.
func (s *AskService) resolveInstruction(keywordID *uint) string {
	if keywordID == nil {
		return ""
	}
	keyword, err := s.keywords.GetByID(*keywordID)
	if err != nil {
		s.logger.Warn("keyword lookup failed, proceeding without instruction",
			zap.Uint("keyword_id", *keywordID),
			zap.Error(err),
		)
		return ""
	}
	if keyword == nil {
		s.logger.Info("keyword not found, proceeding without instruction",
			zap.Uint("keyword_id", *keywordID),
		)
		return ""
	}
	return keyword.Prompt
}

// loadHistory fetches prior turns for session replay, bounded to the most
// recent maxContextTurns (0 = unlimited). A read failure degrades to an
// empty history rather than failing the turn.
func (s *AskService) loadHistory(sessionID *uint) []PromptTurn {
	if sessionID == nil {
		return nil
	}
	turns, err := s.chats.ListBySessionID(*sessionID)
	if err != nil {
		s.logger.Warn("load session history failed, proceeding without context",
			zap.Uint("session_id", *sessionID),
			zap.Error(err),
		)
		return nil
	}
	if s.maxContextTurns > 0 && len(turns) > s.maxContextTurns {
		turns = turns[len(turns)-s.maxContextTurns:]
	}

	history := make([]PromptTurn, 0, len(turns))
	for _, turn := range turns {
		history = append(history, PromptTurn{
			UserMessage: turn.UserMessage,
			AIResponse:  turn.AIResponse,
		})
	}
	return history
}

type turnRecord struct {
	SessionID   *uint
	UserMessage string
	AIResponse  string
	KeywordID   *uint
	FileName    *string
	FileSize    *int64
}

// persistOutcome is the two-outcome result of the persistence phase: either
// the turn landed (with its ids) or it was skipped with a reason. It never
// carries an error — persistence failures do not reach the caller.
type persistOutcome struct {
	SessionID *uint
	ChatID    *uint
	Skipped   bool
	Reason    string
}

func (s *AskService) persistTurn(ctx context.Context, rec turnRecord) persistOutcome {
	sessionID := rec.SessionID
	if sessionID == nil {
		session := &model.ChatSession{
			Title:        SessionTitle(rec.UserMessage),
			FirstMessage: rec.UserMessage,
		}
		if err := s.sessions.Create(session); err != nil {
			s.logger.Warn("create session failed, falling back to legacy insert",
				zap.Error(err),
			)
			return s.persistLegacy(rec)
		}
		sessionID = &session.ID
	}

	chat := &model.Chat{
		SessionID:   sessionID,
		UserMessage: rec.UserMessage,
		AIResponse:  rec.AIResponse,
		KeywordID:   rec.KeywordID,
		FileName:    rec.FileName,
		FileSize:    rec.FileSize,
	}
	if err := s.chats.Create(chat); err != nil {
		s.logger.Warn("create chat failed, falling back to legacy insert",
			zap.Uint("session_id", *sessionID),
			zap.Error(err),
		)
		return s.persistLegacy(rec)
	}

	if rec.SessionID != nil {
		if err := s.sessions.Touch(*sessionID); err != nil {
			s.logger.Debug("touch session failed", zap.Error(err))
		}
	}
	s.invalidateTurns(ctx, *sessionID)

	return persistOutcome{SessionID: sessionID, ChatID: &chat.ID}
}

// persistLegacy is the last resort: a chat row with only the columns every
// schema generation has, no session linkage. If even this fails the turn is
// simply not recorded.
func (s *AskService) persistLegacy(rec turnRecord) persistOutcome {
	chat := &model.Chat{
		UserMessage: rec.UserMessage,
		AIResponse:  rec.AIResponse,
		KeywordID:   rec.KeywordID,
	}
	if err := s.chats.CreateLegacy(chat); err != nil {
		s.logger.Error("legacy chat insert failed, turn not recorded",
			zap.Error(err),
		)
		return persistOutcome{Skipped: true, Reason: err.Error()}
	}
	return persistOutcome{ChatID: &chat.ID}
}

func (s *AskService) invalidateTurns(ctx context.Context, sessionID uint) {
	if s.turnsCache == nil {
		return
	}
	if err := s.turnsCache.Delete(ctx, sessionID); err != nil {
		s.logger.Debug("invalidate turns cache failed",
			zap.Uint("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func buildResult(aiText string, outcome persistOutcome) *AskResult {
	return &AskResult{
		Response:  aiText,
		SessionID: outcome.SessionID,
		ChatID:    outcome.ChatID,
	}
}
