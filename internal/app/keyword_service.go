package app

import (
	"strings"

	"genai-chat/internal/model"
)

// KeywordService manages the instruction templates. Title and prompt are
// trimmed and must be non-empty after trimming.
type KeywordService struct {
	keywords KeywordStore
}

func NewKeywordService(keywords KeywordStore) *KeywordService {
	return &KeywordService{keywords: keywords}
}

func (s *KeywordService) List() ([]model.Keyword, error) {
	return s.keywords.List()
}

func (s *KeywordService) Get(id uint) (*model.Keyword, error) {
	keyword, err := s.keywords.GetByID(id)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, ErrKeywordNotFound
	}
	return keyword, nil
}

func (s *KeywordService) Create(title, prompt string) (*model.Keyword, error) {
	title = strings.TrimSpace(title)
	prompt = strings.TrimSpace(prompt)
	if title == "" || prompt == "" {
		return nil, ErrInvalidInput
	}

	keyword := &model.Keyword{
		Title:  title,
		Prompt: prompt,
	}
	if err := s.keywords.Create(keyword); err != nil {
		return nil, err
	}
	return keyword, nil
}

func (s *KeywordService) Update(id uint, title, prompt string) error {
	title = strings.TrimSpace(title)
	prompt = strings.TrimSpace(prompt)
	if title == "" || prompt == "" {
		return ErrInvalidInput
	}

	found, err := s.keywords.Update(id, title, prompt)
	if err != nil {
		return err
	}
	if !found {
		return ErrKeywordNotFound
	}
	return nil
}

func (s *KeywordService) Delete(id uint) error {
	found, err := s.keywords.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrKeywordNotFound
	}
	return nil
}

func (s *KeywordService) Search(title string) ([]model.Keyword, error) {
	return s.keywords.SearchByTitle(strings.TrimSpace(title))
}
