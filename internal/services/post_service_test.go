package services

import (
	"context"
	"errors"
	"testing"

	"technews/internal/models"
	repo "technews/internal/repository"
	"technews/internal/repository/memory"
)

func newPostFixture(t *testing.T) (*memory.Store, *PostService, models.User) {
	t.Helper()
	store := memory.NewStore()
	audit := NewAuditService(store.AuditLogs(), nil)
	users := NewUserService(store.Users(), audit)
	posts := NewPostService(store.Posts(), store.Votes(), audit)

	u, err := users.Register(context.Background(), "owner", "owner@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return store, posts, u
}

func TestPostService_CreateAndGetDetail(t *testing.T) {
	ctx := context.Background()
	_, posts, u := newPostFixture(t)

	p, err := posts.Create(ctx, "Interesting article", "https://example.com/a", u.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	d, err := posts.GetDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if d.Title != "Interesting article" || d.PostURL != "https://example.com/a" {
		t.Errorf("unexpected detail: %+v", d)
	}
	if d.Username != "owner" {
		t.Errorf("expected owner username, got %q", d.Username)
	}
	if d.VoteCount != 0 {
		t.Errorf("fresh post should have vote_count 0, got %d", d.VoteCount)
	}
	if len(d.Comments) != 0 {
		t.Errorf("fresh post should have no comments, got %d", len(d.Comments))
	}
}

func TestPostService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	_, posts, u := newPostFixture(t)

	cases := []struct {
		name  string
		title string
		url   string
	}{
		{"empty title", "", "https://example.com"},
		{"not a url", "title", "definitely not a url"},
		{"missing scheme", "title", "example.com/a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := posts.Create(ctx, tc.title, tc.url, u.ID)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPostService_CreateUnknownOwner(t *testing.T) {
	ctx := context.Background()
	_, posts, _ := newPostFixture(t)

	_, err := posts.Create(ctx, "title", "https://example.com", 999)
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing owner, got %v", err)
	}
}

func TestPostService_Upvote(t *testing.T) {
	ctx := context.Background()
	_, posts, u := newPostFixture(t)

	p, err := posts.Create(ctx, "vote on me", "https://example.com/v", u.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	d, err := posts.Upvote(ctx, u.ID, p.ID)
	if err != nil {
		t.Fatalf("Upvote failed: %v", err)
	}
	if d.VoteCount != 1 {
		t.Errorf("expected vote_count 1, got %d", d.VoteCount)
	}

	// no dedup: a second vote by the same user adds another row
	d, err = posts.Upvote(ctx, u.ID, p.ID)
	if err != nil {
		t.Fatalf("second Upvote failed: %v", err)
	}
	if d.VoteCount != 2 {
		t.Errorf("expected vote_count 2, got %d", d.VoteCount)
	}

	n, err := posts.VoteCount(ctx, p.ID)
	if err != nil {
		t.Fatalf("VoteCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}

func TestPostService_UpvoteMissingPost(t *testing.T) {
	ctx := context.Background()
	_, posts, u := newPostFixture(t)

	_, err := posts.Upvote(ctx, u.ID, 999)
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostService_UpdateTitle(t *testing.T) {
	ctx := context.Background()
	_, posts, u := newPostFixture(t)

	p, err := posts.Create(ctx, "old title", "https://example.com", u.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := posts.UpdateTitle(ctx, p.ID, "new title", u.ID)
	if err != nil {
		t.Fatalf("UpdateTitle failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}

	d, err := posts.GetDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if d.Title != "new title" {
		t.Errorf("title not updated: %q", d.Title)
	}

	if n, _ := posts.UpdateTitle(ctx, 999, "whatever", u.ID); n != 0 {
		t.Errorf("expected 0 rows for missing post, got %d", n)
	}
	if _, err := posts.UpdateTitle(ctx, p.ID, "  ", u.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank title, got %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	_, posts, u := newPostFixture(t)

	p, err := posts.Create(ctx, "doomed", "https://example.com", u.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := posts.Delete(ctx, p.ID, u.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}

	if _, err := posts.GetDetail(ctx, p.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("deleted post should be gone, got %v", err)
	}

	// deleting again is a zero-row no-op, not an error
	n, err = posts.Delete(ctx, p.ID, u.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows affected, got %d", n)
	}
}

func TestPostService_ListDetailOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	store, posts, u := newPostFixture(t)

	audit := NewAuditService(store.AuditLogs(), nil)
	users := NewUserService(store.Users(), audit)
	other, err := users.Register(ctx, "other", "other@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	p1, _ := posts.Create(ctx, "first", "https://example.com/1", u.ID)
	p2, _ := posts.Create(ctx, "second", "https://example.com/2", other.ID)
	p3, _ := posts.Create(ctx, "third", "https://example.com/3", u.ID)

	all, err := posts.ListDetail(ctx, nil)
	if err != nil {
		t.Fatalf("ListDetail failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(all))
	}
	// newest first
	if all[0].ID != p3.ID || all[2].ID != p1.ID {
		t.Errorf("posts out of order: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}

	mine, err := posts.ListDetail(ctx, &u.ID)
	if err != nil {
		t.Fatalf("ListDetail(owner) failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 owned posts, got %d", len(mine))
	}
	for _, d := range mine {
		if d.UserID != u.ID {
			t.Errorf("filter leaked post %d owned by %d", d.ID, d.UserID)
		}
	}
	_ = p2
}
