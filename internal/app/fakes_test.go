package app_test

import (
	"context"

	"genai-chat/internal/model"
	"genai-chat/internal/repository"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeChatStore struct {
	createErr error
	legacyErr error
	listErr   error
	history   []model.Chat
	created   []*model.Chat
	legacy    []*model.Chat
	nextID    uint
}

func (f *fakeChatStore) Create(chat *model.Chat) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	chat.ID = f.nextID
	f.created = append(f.created, chat)
	return nil
}

func (f *fakeChatStore) CreateLegacy(chat *model.Chat) error {
	if f.legacyErr != nil {
		return f.legacyErr
	}
	f.nextID++
	chat.ID = f.nextID
	f.legacy = append(f.legacy, chat)
	return nil
}

func (f *fakeChatStore) ListBySessionID(uint) ([]model.Chat, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.history, nil
}

func (f *fakeChatStore) ListAll() ([]repository.ChatListItem, error) {
	return nil, nil
}

func (f *fakeChatStore) GetByID(uint) (*repository.ChatListItem, error) {
	return nil, nil
}

func (f *fakeChatStore) ListByKeywordID(uint) ([]repository.ChatListItem, error) {
	return nil, nil
}

func (f *fakeChatStore) DeleteByID(uint) (bool, error) {
	return false, nil
}

type fakeSessionStore struct {
	createErr   error
	sessions    map[uint]*model.ChatSession
	created     []*model.ChatSession
	nextID      uint
	touched     []uint
	renamed     map[uint]string
	renameFound bool
	deleted     []uint
	deleteFound bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions:    map[uint]*model.ChatSession{},
		renamed:     map[uint]string{},
		renameFound: true,
		deleteFound: true,
	}
}

func (f *fakeSessionStore) Create(session *model.ChatSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	session.ID = f.nextID
	f.sessions[session.ID] = session
	f.created = append(f.created, session)
	return nil
}

func (f *fakeSessionStore) GetByID(id uint) (*model.ChatSession, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionStore) ListSummaries() ([]repository.SessionSummary, error) {
	return []repository.SessionSummary{}, nil
}

func (f *fakeSessionStore) UpdateTitle(id uint, title string) (bool, error) {
	if !f.renameFound {
		return false, nil
	}
	f.renamed[id] = title
	return true, nil
}

func (f *fakeSessionStore) SoftDelete(id uint) (bool, error) {
	if !f.deleteFound {
		return false, nil
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

func (f *fakeSessionStore) Touch(id uint) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeKeywordStore struct {
	keywords    map[uint]*model.Keyword
	getErr      error
	created     []*model.Keyword
	updated     map[uint][2]string
	updateFound bool
	deleted     []uint
	deleteFound bool
	searched    []string
}

func newFakeKeywordStore() *fakeKeywordStore {
	return &fakeKeywordStore{
		keywords:    map[uint]*model.Keyword{},
		updated:     map[uint][2]string{},
		updateFound: true,
		deleteFound: true,
	}
}

func (f *fakeKeywordStore) Create(keyword *model.Keyword) error {
	keyword.ID = uint(len(f.created) + 1)
	f.created = append(f.created, keyword)
	return nil
}

func (f *fakeKeywordStore) List() ([]model.Keyword, error) {
	return nil, nil
}

func (f *fakeKeywordStore) GetByID(id uint) (*model.Keyword, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.keywords[id], nil
}

func (f *fakeKeywordStore) Update(id uint, title, prompt string) (bool, error) {
	if !f.updateFound {
		return false, nil
	}
	f.updated[id] = [2]string{title, prompt}
	return true, nil
}

func (f *fakeKeywordStore) Delete(id uint) (bool, error) {
	if !f.deleteFound {
		return false, nil
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

func (f *fakeKeywordStore) SearchByTitle(title string) ([]model.Keyword, error) {
	f.searched = append(f.searched, title)
	return nil, nil
}

type fakePublisher struct {
	err       error
	published []uint
}

func (f *fakePublisher) Publish(_ context.Context, sessionID uint) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, sessionID)
	return nil
}

type fakeTurnsCache struct {
	entries map[uint][]model.Chat
	deleted []uint
}

func newFakeTurnsCache() *fakeTurnsCache {
	return &fakeTurnsCache{entries: map[uint][]model.Chat{}}
}

func (f *fakeTurnsCache) Get(_ context.Context, sessionID uint) ([]model.Chat, bool, error) {
	turns, ok := f.entries[sessionID]
	return turns, ok, nil
}

func (f *fakeTurnsCache) Set(_ context.Context, sessionID uint, turns []model.Chat) error {
	f.entries[sessionID] = turns
	return nil
}

func (f *fakeTurnsCache) Delete(_ context.Context, sessionID uint) error {
	delete(f.entries, sessionID)
	f.deleted = append(f.deleted, sessionID)
	return nil
}
