package services

import (
	"context"
	"fmt"
	"strings"

	"technews/internal/metrics"
	"technews/internal/models"
	repo "technews/internal/repository"
)

type PostService struct {
	posts repo.Posts
	votes repo.Votes
	audit *AuditService
}

func NewPostService(posts repo.Posts, votes repo.Votes, audit *AuditService) *PostService {
	return &PostService{posts: posts, votes: votes, audit: audit}
}

// Create stores a new post. The owner id always comes from the
// caller's session, never from client input.
func (s *PostService) Create(ctx context.Context, title, postURL string, userID int64) (models.Post, error) {
	title = strings.TrimSpace(title)
	postURL = strings.TrimSpace(postURL)
	if err := models.ValidateNewPost(title, postURL); err != nil {
		return models.Post{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	p, err := s.posts.Create(ctx, title, postURL, userID)
	if err != nil {
		return models.Post{}, err
	}
	s.audit.Record("post", p.ID, userID, "create")
	return p, nil
}

// ListDetail returns posts newest first, joined with author username,
// derived vote count and comments. ownerID narrows to one user's posts
// (the dashboard view).
func (s *PostService) ListDetail(ctx context.Context, ownerID *int64) ([]models.PostDetail, error) {
	return s.posts.ListDetails(ctx, repo.PostFilter{UserID: ownerID})
}

func (s *PostService) GetDetail(ctx context.Context, id int64) (models.PostDetail, error) {
	return s.posts.GetDetail(ctx, id)
}

// Upvote inserts a new vote row and re-reads the post with its fresh
// count. The two steps are deliberately not atomic: a concurrent vote
// between them only shifts the count seen in this response.
func (s *PostService) Upvote(ctx context.Context, userID, postID int64) (models.PostDetail, error) {
	if _, err := s.votes.Create(ctx, userID, postID); err != nil {
		return models.PostDetail{}, err
	}
	metrics.VotesTotal.Inc()
	s.audit.Record("post", postID, userID, "upvote")
	return s.posts.GetDetail(ctx, postID)
}

// VoteCount recomputes the count from the vote rows on every call; it
// is never cached across requests.
func (s *PostService) VoteCount(ctx context.Context, postID int64) (int, error) {
	return s.votes.CountByPost(ctx, postID)
}

// UpdateTitle reports rows affected; zero means no such post. The
// requesting user's ownership is intentionally not checked here (see
// DESIGN.md).
func (s *PostService) UpdateTitle(ctx context.Context, id int64, title string, userID int64) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", ErrValidation)
	}
	n, err := s.posts.UpdateTitle(ctx, id, title)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.audit.Record("post", id, userID, "update_title")
	}
	return n, nil
}

func (s *PostService) Delete(ctx context.Context, id, userID int64) (int64, error) {
	n, err := s.posts.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.audit.Record("post", id, userID, "delete")
	}
	return n, nil
}
