package services

import (
	"context"
	"fmt"
	"strings"

	"technews/internal/models"
	repo "technews/internal/repository"
)

type CommentService struct {
	comments repo.Comments
	audit    *AuditService
}

func NewCommentService(comments repo.Comments, audit *AuditService) *CommentService {
	return &CommentService{comments: comments, audit: audit}
}

func (s *CommentService) Create(ctx context.Context, text string, userID, postID int64) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if err := models.ValidateNewComment(text); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	c, err := s.comments.Create(ctx, text, userID, postID)
	if err != nil {
		return models.Comment{}, err
	}
	s.audit.Record("comment", c.ID, userID, "create")
	return c, nil
}

func (s *CommentService) List(ctx context.Context) ([]models.Comment, error) {
	return s.comments.List(ctx)
}

func (s *CommentService) Delete(ctx context.Context, id, userID int64) (int64, error) {
	n, err := s.comments.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.audit.Record("comment", id, userID, "delete")
	}
	return n, nil
}
