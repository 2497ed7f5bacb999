package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"genai-chat/internal/model"
)

type KeywordRepository struct {
	db *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) *KeywordRepository {
	return &KeywordRepository{db: db}
}

func (r *KeywordRepository) Create(keyword *model.Keyword) error {
	if err := r.db.Create(keyword).Error; err != nil {
		return fmt.Errorf("create keyword failed: %w", err)
	}
	return nil
}

func (r *KeywordRepository) List() ([]model.Keyword, error) {
	var keywords []model.Keyword
	if err := r.db.Order("created_at DESC").Find(&keywords).Error; err != nil {
		return nil, fmt.Errorf("list keywords failed: %w", err)
	}
	return keywords, nil
}

func (r *KeywordRepository) GetByID(id uint) (*model.Keyword, error) {
	var keyword model.Keyword
	if err := r.db.First(&keyword, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get keyword failed: %w", err)
	}
	return &keyword, nil
}

func (r *KeywordRepository) Update(id uint, title, prompt string) (bool, error) {
	result := r.db.Model(&model.Keyword{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "prompt": prompt})
	if result.Error != nil {
		return false, fmt.Errorf("update keyword failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *KeywordRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&model.Keyword{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete keyword failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *KeywordRepository) SearchByTitle(title string) ([]model.Keyword, error) {
	var keywords []model.Keyword
	if err := r.db.Where("title LIKE ?", "%"+title+"%").
		Order("created_at DESC").Find(&keywords).Error; err != nil {
		return nil, fmt.Errorf("search keywords failed: %w", err)
	}
	return keywords, nil
}
