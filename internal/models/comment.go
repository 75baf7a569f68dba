package models

import (
	"errors"
	"strings"
	"time"
)

type Comment struct {
	ID          int64     `json:"id"`
	CommentText string    `json:"comment_text"`
	UserID      int64     `json:"user_id"`
	PostID      int64     `json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username,omitempty"`
}

func ValidateNewComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("comment_text is required")
	}
	return nil
}
