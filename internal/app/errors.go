package app

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrTextRequired    = errors.New("text is required")
	ErrFileRequired    = errors.New("file is required")
	ErrChatNotFound    = errors.New("chat not found")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrKeywordNotFound = errors.New("keyword not found")
)
