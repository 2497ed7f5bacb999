package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-chat/internal/app"
	"genai-chat/internal/model"
)

func newAskService(gen *fakeGenerator, ext *fakeExtractor, chats *fakeChatStore, sessions *fakeSessionStore, keywords *fakeKeywordStore) *app.AskService {
	return app.NewAskService(gen, ext, chats, sessions, keywords, nil, nil, 20)
}

func uintPtr(v uint) *uint { return &v }

func TestAskTextRejectsEmptyText(t *testing.T) {
	gen := &fakeGenerator{response: "hi"}
	svc := newAskService(gen, nil, &fakeChatStore{}, newFakeSessionStore(), newFakeKeywordStore())

	_, err := svc.AskText(context.Background(), app.AskInput{Text: "   "})

	assert.ErrorIs(t, err, app.ErrTextRequired)
	assert.Empty(t, gen.prompts, "generator must not run without text")
}

func TestAskTextCreatesSessionAndChat(t *testing.T) {
	gen := &fakeGenerator{response: "jawaban"}
	chats := &fakeChatStore{}
	sessions := newFakeSessionStore()
	svc := newAskService(gen, nil, chats, sessions, newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "halo"})

	require.NoError(t, err)
	assert.Equal(t, "jawaban", result.Response)
	require.NotNil(t, result.SessionID)
	require.NotNil(t, result.ChatID)

	require.Len(t, sessions.created, 1)
	assert.Equal(t, "halo", sessions.created[0].Title)
	assert.Equal(t, "halo", sessions.created[0].FirstMessage)

	require.Len(t, chats.created, 1)
	assert.Equal(t, "halo", chats.created[0].UserMessage)
	assert.Equal(t, "jawaban", chats.created[0].AIResponse)
	assert.Equal(t, *result.SessionID, *chats.created[0].SessionID)
}

func TestAskTextNewSessionTitleTruncated(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newAskService(&fakeGenerator{response: "ok"}, nil, &fakeChatStore{}, sessions, newFakeKeywordStore())

	long := strings.Repeat("a", 60)
	_, err := svc.AskText(context.Background(), app.AskInput{Text: long})

	require.NoError(t, err)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, strings.Repeat("a", 47)+"...", sessions.created[0].Title)
	assert.Equal(t, long, sessions.created[0].FirstMessage)
}

func TestAskTextExistingSessionFoldsHistory(t *testing.T) {
	gen := &fakeGenerator{response: "a3"}
	chats := &fakeChatStore{history: []model.Chat{
		{UserMessage: "u1", AIResponse: "a1"},
		{UserMessage: "u2", AIResponse: "a2"},
	}}
	sessions := newFakeSessionStore()
	svc := newAskService(gen, nil, chats, sessions, newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "u3", SessionID: uintPtr(7)})

	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "User: u1\nAI: a1\nUser: u2\nAI: a2\nUser: u3\nAI:", gen.prompts[0])
	assert.Empty(t, sessions.created, "existing session must not spawn another")
	assert.Equal(t, []uint{7}, sessions.touched)
	require.NotNil(t, result.SessionID)
	assert.Equal(t, uint(7), *result.SessionID)
}

func TestAskTextHistoryBoundedToMostRecentTurns(t *testing.T) {
	history := make([]model.Chat, 5)
	for i := range history {
		history[i] = model.Chat{UserMessage: "u" + string(rune('1'+i)), AIResponse: "a" + string(rune('1'+i))}
	}
	gen := &fakeGenerator{response: "ok"}
	chats := &fakeChatStore{history: history}
	svc := app.NewAskService(gen, nil, chats, newFakeSessionStore(), newFakeKeywordStore(), nil, nil, 2)

	_, err := svc.AskText(context.Background(), app.AskInput{Text: "next", SessionID: uintPtr(1)})

	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "User: u4\nAI: a4\nUser: u5\nAI: a5\nUser: next\nAI:", gen.prompts[0])
}

func TestAskTextHistoryReadFailureDegradesToEmpty(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	chats := &fakeChatStore{listErr: errors.New("table gone")}
	svc := newAskService(gen, nil, chats, newFakeSessionStore(), newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "halo", SessionID: uintPtr(3)})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Response)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "halo", gen.prompts[0])
}

func TestAskTextKeywordInstructionApplied(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	keywords := newFakeKeywordStore()
	keywords.keywords[4] = &model.Keyword{ID: 4, Title: "ringkas", Prompt: "Ringkas jawabanmu."}
	svc := newAskService(gen, nil, &fakeChatStore{}, newFakeSessionStore(), keywords)

	_, err := svc.AskText(context.Background(), app.AskInput{Text: "halo", KeywordID: uintPtr(4)})

	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "Instruksi: Ringkas jawabanmu.\nhalo", gen.prompts[0])
}

func TestAskTextMissingKeywordIsNotFatal(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	svc := newAskService(gen, nil, &fakeChatStore{}, newFakeSessionStore(), newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "halo", KeywordID: uintPtr(99)})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Response)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "halo", gen.prompts[0], "prompt must omit the missing instruction")
}

func TestAskTextGeneratorFailureAbortsBeforePersistence(t *testing.T) {
	genErr := errors.New("all candidates failed")
	chats := &fakeChatStore{}
	sessions := newFakeSessionStore()
	svc := newAskService(&fakeGenerator{err: genErr}, nil, chats, sessions, newFakeKeywordStore())

	_, err := svc.AskText(context.Background(), app.AskInput{Text: "halo"})

	assert.ErrorIs(t, err, genErr)
	assert.Empty(t, chats.created)
	assert.Empty(t, chats.legacy)
	assert.Empty(t, sessions.created)
}

func TestAskTextSessionCreateFailureFallsBackToLegacy(t *testing.T) {
	chats := &fakeChatStore{}
	sessions := newFakeSessionStore()
	sessions.createErr = errors.New("chat_sessions missing")
	svc := newAskService(&fakeGenerator{response: "ok"}, nil, chats, sessions, newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "halo"})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Response)
	assert.Nil(t, result.SessionID)
	require.NotNil(t, result.ChatID)
	require.Len(t, chats.legacy, 1)
	assert.Nil(t, chats.legacy[0].SessionID)
	assert.Empty(t, chats.created)
}

func TestAskTextChatCreateFailureFallsBackToLegacy(t *testing.T) {
	chats := &fakeChatStore{createErr: errors.New("unknown column session_id")}
	svc := newAskService(&fakeGenerator{response: "ok"}, nil, chats, newFakeSessionStore(), newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "halo"})

	require.NoError(t, err)
	assert.Nil(t, result.SessionID)
	require.NotNil(t, result.ChatID)
	require.Len(t, chats.legacy, 1)
}

func TestAskTextTotalPersistenceFailureStillReturnsResponse(t *testing.T) {
	chats := &fakeChatStore{
		createErr: errors.New("insert failed"),
		legacyErr: errors.New("insert failed again"),
	}
	sessions := newFakeSessionStore()
	sessions.createErr = errors.New("no sessions table")
	svc := newAskService(&fakeGenerator{response: "masih hidup"}, nil, chats, sessions, newFakeKeywordStore())

	result, err := svc.AskText(context.Background(), app.AskInput{Text: "halo"})

	require.NoError(t, err, "persistence failures must never surface")
	assert.Equal(t, "masih hidup", result.Response)
	assert.Nil(t, result.SessionID)
	assert.Nil(t, result.ChatID)
}

func TestAskFileRequiresPath(t *testing.T) {
	svc := newAskService(&fakeGenerator{}, &fakeExtractor{}, &fakeChatStore{}, newFakeSessionStore(), newFakeKeywordStore())

	_, err := svc.AskFile(context.Background(), app.AskFileInput{})

	assert.ErrorIs(t, err, app.ErrFileRequired)
}

func writeTempUpload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.pdf")
	require.NoError(t, os.WriteFile(path, []byte("dummy"), 0o644))
	return path
}

func TestAskFilePersistsFileTurn(t *testing.T) {
	gen := &fakeGenerator{response: "ringkasan"}
	ext := &fakeExtractor{text: "isi dokumen"}
	chats := &fakeChatStore{}
	svc := newAskService(gen, ext, chats, newFakeSessionStore(), newFakeKeywordStore())
	path := writeTempUpload(t)

	result, err := svc.AskFile(context.Background(), app.AskFileInput{
		FilePath: path,
		FileName: "report.pdf",
		FileSize: 5,
		Text:     "apa intinya?",
	})

	require.NoError(t, err)
	assert.Equal(t, "ringkasan", result.Response)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "isi dokumen\nPertanyaan: apa intinya?", gen.prompts[0])

	require.Len(t, chats.created, 1)
	assert.Equal(t, "[File Upload: report.pdf] isi dokumen...", chats.created[0].UserMessage)
	require.NotNil(t, chats.created[0].FileName)
	assert.Equal(t, "report.pdf", *chats.created[0].FileName)
	require.NotNil(t, chats.created[0].FileSize)
	assert.Equal(t, int64(5), *chats.created[0].FileSize)
}

func TestAskFileRemovesTempFileOnSuccess(t *testing.T) {
	svc := newAskService(&fakeGenerator{response: "ok"}, &fakeExtractor{text: "isi"}, &fakeChatStore{}, newFakeSessionStore(), newFakeKeywordStore())
	path := writeTempUpload(t)

	_, err := svc.AskFile(context.Background(), app.AskFileInput{FilePath: path, FileName: "a.pdf"})

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed")
}

func TestAskFileRemovesTempFileOnExtractFailure(t *testing.T) {
	ext := &fakeExtractor{err: errors.New("corrupt pdf")}
	svc := newAskService(&fakeGenerator{}, ext, &fakeChatStore{}, newFakeSessionStore(), newFakeKeywordStore())
	path := writeTempUpload(t)

	_, err := svc.AskFile(context.Background(), app.AskFileInput{FilePath: path, FileName: "a.pdf"})

	assert.Error(t, err)
	assert.Equal(t, 1, ext.calls)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed on failure too")
}

func TestAskFileRemovesTempFileOnGeneratorFailure(t *testing.T) {
	svc := newAskService(&fakeGenerator{err: errors.New("down")}, &fakeExtractor{text: "isi"}, &fakeChatStore{}, newFakeSessionStore(), newFakeKeywordStore())
	path := writeTempUpload(t)

	_, err := svc.AskFile(context.Background(), app.AskFileInput{FilePath: path, FileName: "a.pdf"})

	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
