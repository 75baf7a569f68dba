package services

import (
	"context"
	"errors"
	"testing"

	repo "technews/internal/repository"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	store, posts, u := newPostFixture(t)
	audit := NewAuditService(store.AuditLogs(), nil)
	comments := NewCommentService(store.Comments(), audit)

	p, err := posts.Create(ctx, "discuss", "https://example.com/d", u.ID)
	if err != nil {
		t.Fatalf("Create post failed: %v", err)
	}

	t.Run("create", func(t *testing.T) {
		c, err := comments.Create(ctx, "hi", u.ID, p.ID)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if c.ID == 0 || c.CreatedAt.IsZero() {
			t.Errorf("comment missing id or timestamp: %+v", c)
		}
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := comments.Create(ctx, "   ", u.ID, p.ID)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("missing post rejected", func(t *testing.T) {
		_, err := comments.Create(ctx, "hello", u.ID, 999)
		if !errors.Is(err, repo.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("listed under the post with author", func(t *testing.T) {
		d, err := posts.GetDetail(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetDetail failed: %v", err)
		}
		if len(d.Comments) != 1 {
			t.Fatalf("expected 1 comment, got %d", len(d.Comments))
		}
		if d.Comments[0].CommentText != "hi" || d.Comments[0].Username != "owner" {
			t.Errorf("unexpected comment: %+v", d.Comments[0])
		}
	})

	t.Run("list all", func(t *testing.T) {
		all, err := comments.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) != 1 || all[0].Username != "owner" {
			t.Errorf("unexpected list: %+v", all)
		}
	})

	t.Run("delete semantics", func(t *testing.T) {
		d, _ := posts.GetDetail(ctx, p.ID)
		id := d.Comments[0].ID

		n, err := comments.Delete(ctx, id, u.ID)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 row affected, got %d", n)
		}
		n, err = comments.Delete(ctx, id, u.ID)
		if err != nil {
			t.Fatalf("second Delete failed: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 rows affected, got %d", n)
		}
	})
}
