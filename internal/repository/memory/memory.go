// Package memory provides an in-memory implementation of the
// repository interfaces. It backs the unit tests and mirrors the
// constraint behavior of the postgres implementation (unique email,
// foreign keys, rows-affected semantics).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"technews/internal/models"
	"technews/internal/repository"
)

type Store struct {
	mu sync.Mutex

	users    map[int64]models.User
	posts    map[int64]models.Post
	votes    map[int64]models.Vote
	comments map[int64]models.Comment
	sessions map[string]models.Session
	audits   []models.AuditLog

	nextID int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		posts:    make(map[int64]models.Post),
		votes:    make(map[int64]models.Vote),
		comments: make(map[int64]models.Comment),
		sessions: make(map[string]models.Session),
	}
}

func (s *Store) Users() repository.Users         { return (*usersStore)(s) }
func (s *Store) Posts() repository.Posts         { return (*postsStore)(s) }
func (s *Store) Votes() repository.Votes         { return (*votesStore)(s) }
func (s *Store) Comments() repository.Comments   { return (*commentsStore)(s) }
func (s *Store) Sessions() repository.Sessions   { return (*sessionsStore)(s) }
func (s *Store) AuditLogs() repository.AuditLogs { return (*auditStore)(s) }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// ---------- users ----------

type usersStore Store

func (s *usersStore) Create(_ context.Context, username, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, repository.ErrDuplicateEmail
		}
	}
	now := time.Now()
	u := models.User{
		ID:           (*Store)(s).id(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *usersStore) GetByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *usersStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (s *usersStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *usersStore) Update(_ context.Context, u models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok {
		return 0, nil
	}
	for _, other := range s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	cur.Username = u.Username
	cur.Email = u.Email
	cur.PasswordHash = u.PasswordHash
	cur.UpdatedAt = time.Now()
	s.users[u.ID] = cur
	return 1, nil
}

func (s *usersStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	// cascade, as the schema does
	for pid, p := range s.posts {
		if p.UserID == id {
			delete(s.posts, pid)
		}
	}
	for vid, v := range s.votes {
		if v.UserID == id {
			delete(s.votes, vid)
		}
	}
	for cid, c := range s.comments {
		if c.UserID == id {
			delete(s.comments, cid)
		}
	}
	for sid, ses := range s.sessions {
		if ses.UserID == id {
			delete(s.sessions, sid)
		}
	}
	return 1, nil
}

// ---------- posts ----------

type postsStore Store

func (s *postsStore) Create(_ context.Context, title, postURL string, userID int64) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return models.Post{}, repository.ErrNotFound
	}
	now := time.Now()
	p := models.Post{
		ID:        (*Store)(s).id(),
		Title:     title,
		PostURL:   postURL,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *postsStore) detail(p models.Post) models.PostDetail {
	d := models.PostDetail{Post: p, Comments: []models.Comment{}}
	if u, ok := s.users[p.UserID]; ok {
		d.Username = u.Username
	}
	for _, v := range s.votes {
		if v.PostID == p.ID {
			d.VoteCount++
		}
	}
	for _, c := range s.comments {
		if c.PostID == p.ID {
			if u, ok := s.users[c.UserID]; ok {
				c.Username = u.Username
			}
			d.Comments = append(d.Comments, c)
		}
	}
	sort.Slice(d.Comments, func(i, j int) bool {
		return d.Comments[i].ID < d.Comments[j].ID
	})
	return d
}

func (s *postsStore) GetDetail(_ context.Context, id int64) (models.PostDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.PostDetail{}, repository.ErrNotFound
	}
	return s.detail(p), nil
}

func (s *postsStore) ListDetails(_ context.Context, f repository.PostFilter) ([]models.PostDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PostDetail{}
	for _, p := range s.posts {
		if f.UserID != nil && p.UserID != *f.UserID {
			continue
		}
		out = append(out, s.detail(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *postsStore) UpdateTitle(_ context.Context, id int64, title string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return 0, nil
	}
	p.Title = title
	p.UpdatedAt = time.Now()
	s.posts[id] = p
	return 1, nil
}

func (s *postsStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return 0, nil
	}
	delete(s.posts, id)
	for vid, v := range s.votes {
		if v.PostID == id {
			delete(s.votes, vid)
		}
	}
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return 1, nil
}

// ---------- votes ----------

type votesStore Store

func (s *votesStore) Create(_ context.Context, userID, postID int64) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return models.Vote{}, repository.ErrNotFound
	}
	if _, ok := s.posts[postID]; !ok {
		return models.Vote{}, repository.ErrNotFound
	}
	v := models.Vote{ID: (*Store)(s).id(), UserID: userID, PostID: postID}
	s.votes[v.ID] = v
	return v, nil
}

func (s *votesStore) CountByPost(_ context.Context, postID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.votes {
		if v.PostID == postID {
			n++
		}
	}
	return n, nil
}

// ---------- comments ----------

type commentsStore Store

func (s *commentsStore) Create(_ context.Context, text string, userID, postID int64) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return models.Comment{}, repository.ErrNotFound
	}
	if _, ok := s.posts[postID]; !ok {
		return models.Comment{}, repository.ErrNotFound
	}
	c := models.Comment{
		ID:          (*Store)(s).id(),
		CommentText: text,
		UserID:      userID,
		PostID:      postID,
		CreatedAt:   time.Now(),
	}
	s.comments[c.ID] = c
	return c, nil
}

func (s *commentsStore) List(_ context.Context) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		if u, ok := s.users[c.UserID]; ok {
			c.Username = u.Username
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *commentsStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return 0, nil
	}
	delete(s.comments, id)
	return 1, nil
}

// ---------- sessions ----------

type sessionsStore Store

func (s *sessionsStore) Create(_ context.Context, ses models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[ses.UserID]; !ok {
		return repository.ErrNotFound
	}
	s.sessions[ses.ID] = ses
	return nil
}

func (s *sessionsStore) Get(_ context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ses, ok := s.sessions[id]
	if !ok {
		return models.Session{}, repository.ErrNotFound
	}
	return ses, nil
}

func (s *sessionsStore) Touch(_ context.Context, id string, lastSeen, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ses, ok := s.sessions[id]
	if !ok {
		return nil
	}
	ses.LastSeenAt = lastSeen
	ses.ExpiresAt = expires
	s.sessions[id] = ses
	return nil
}

func (s *sessionsStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *sessionsStore) DeleteByUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ses := range s.sessions {
		if ses.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *sessionsStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, ses := range s.sessions {
		if ses.ExpiresAt.Before(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// ---------- audit logs ----------

type auditStore Store

func (s *auditStore) Create(_ context.Context, l models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = (*Store)(s).id()
	l.CreatedAt = time.Now()
	s.audits = append(s.audits, l)
	return nil
}

// Audits returns a copy of the recorded audit entries, for tests.
func (s *Store) Audits() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}
