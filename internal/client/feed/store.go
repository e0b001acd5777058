// Package feed owns the ordered, newest-first collection of posts held by
// the Momento client. Mutations apply optimistically to the in-memory cache
// and are written through to the durable mirror; the remote source of truth
// is consulted only on Refresh.
package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/momento-app/momento/internal/client/api"
	"github.com/momento-app/momento/internal/client/mirror"
	"github.com/momento-app/momento/internal/client/models"
	"github.com/momento-app/momento/internal/logging"
)

// Store is the feed cache. All four mutations are total: invalid post ids
// are absorbed as no-ops, and mirror write failures are logged and
// swallowed; the mirror is advisory and the store itself never fails.
//
// Every mutation produces a fresh snapshot of the feed; callers never see
// store-owned slices.
type Store struct {
	mu     sync.Mutex
	api    api.Client
	mirror mirror.Repository
	log    logging.Logger

	posts []models.Post

	// seams for deterministic tests
	now   func() time.Time
	newID func() string
}

// NewStore builds an empty Store. Call Load to hydrate it from the mirror
// and Refresh to replace the cache from the remote feed.
func NewStore(client api.Client, mir mirror.Repository, log logging.Logger) *Store {
	return &Store{
		api:    client,
		mirror: mir,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Posts returns a deep copy of the feed, newest first.
func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.ClonePosts(s.posts)
}

// Load hydrates the cache from the durable mirror. Best-effort startup path:
// an empty or missing snapshot leaves the feed empty.
func (s *Store) Load(ctx context.Context) error {
	posts, err := s.mirror.LoadPosts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
	return nil
}

// Refresh replaces the cache wholesale with the remote feed (server order,
// latest first) and mirrors the result. Unlike the mutations below, the
// remote call's failure surfaces to the caller.
func (s *Store) Refresh(ctx context.Context) error {
	posts, err := s.api.Feed(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// AddPost synthesizes a post with a fresh id and the current time, empty
// likes and comments, and prepends it to the feed. Returns the created post.
func (s *Store) AddPost(ctx context.Context, imageURL, caption, authorID, authorEmail string) models.Post {
	post := models.Post{
		ID:          s.newID(),
		AuthorID:    authorID,
		AuthorEmail: authorEmail,
		ImageURL:    imageURL,
		Caption:     caption,
		CreatedAt:   s.now(),
		Likes:       []string{},
		Comments:    []models.Comment{},
	}

	s.mu.Lock()
	next := make([]models.Post, 0, len(s.posts)+1)
	next = append(next, post)
	next = append(next, s.posts...)
	s.posts = next
	s.mu.Unlock()

	s.persist(ctx)
	return post.Clone()
}

// DeletePost removes the post with the given id. Absent ids are a no-op so
// the operation stays idempotent under retry.
func (s *Store) DeletePost(ctx context.Context, postID string) {
	s.mu.Lock()
	next := make([]models.Post, 0, len(s.posts))
	removed := false
	for _, p := range s.posts {
		if p.ID == postID {
			removed = true
			continue
		}
		next = append(next, p)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.posts = next
	s.mu.Unlock()

	s.persist(ctx)
}

// LikePost toggles userID's membership in the post's like set: present ids
// are removed (unlike), absent ones added. Unknown post ids are a no-op.
// Engagement changes never move the post within the feed.
func (s *Store) LikePost(ctx context.Context, postID, userID string) {
	s.mu.Lock()
	idx := s.indexOf(postID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	p := s.posts[idx].Clone()
	if p.LikedBy(userID) {
		likes := make([]string, 0, len(p.Likes)-1)
		for _, id := range p.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		p.Likes = likes
	} else {
		p.Likes = append(p.Likes, userID)
	}

	s.replaceAt(idx, p)
	s.mu.Unlock()

	s.persist(ctx)
}

// AddComment appends a comment with a fresh id and the current time to the
// post's comment sequence. Empty or whitespace-only text is rejected as a
// silent no-op, as are unknown post ids. Append order is preserved.
func (s *Store) AddComment(ctx context.Context, postID, userID, userEmail, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	idx := s.indexOf(postID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	p := s.posts[idx].Clone()
	p.Comments = append(p.Comments, models.Comment{
		ID:          s.newID(),
		AuthorID:    userID,
		AuthorEmail: userEmail,
		Text:        text,
		CreatedAt:   s.now(),
	})

	s.replaceAt(idx, p)
	s.mu.Unlock()

	s.persist(ctx)
}

// indexOf returns the position of postID, or -1. Caller holds the lock.
func (s *Store) indexOf(postID string) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// replaceAt swaps in an updated post at idx, producing a new feed slice.
// Caller holds the lock.
func (s *Store) replaceAt(idx int, p models.Post) {
	next := append([]models.Post(nil), s.posts...)
	next[idx] = p
	s.posts = next
}

// persist mirrors the current feed wholesale. Mirror failures are logged and
// swallowed: the mirror reflects last-known state, it is not a guarantee.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	snapshot := models.ClonePosts(s.posts)
	s.mu.Unlock()

	if err := s.mirror.SavePosts(ctx, snapshot); err != nil {
		s.log.Warn(ctx, "failed to mirror feed", "error", err)
	}
}
