package models

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	PostURL   string    `json:"post_url"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostDetail is the joined read shape: the post plus its author's
// username, the derived vote count and all comments with authors.
type PostDetail struct {
	Post
	Username  string    `json:"username"`
	VoteCount int       `json:"vote_count"`
	Comments  []Comment `json:"comments"`
}

func ValidateNewPost(title, postURL string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}
	u, err := url.ParseRequestURI(postURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("post_url must be a valid URL")
	}
	return nil
}
