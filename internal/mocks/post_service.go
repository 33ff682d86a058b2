package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
)

// MockPostService implements service.PostService. Without function overrides
// it keeps posts in memory, resolves owners through Users and applies the
// same ownership rules as the real service.
type MockPostService struct {
	CreatePostFn func(ctx context.Context, userID int64, title, content string) (*domain.Post, error)
	ListPostsFn  func(ctx context.Context, query domain.PostQuery) (*service.PostPage, error)
	GetPostFn    func(ctx context.Context, postID int64) (*domain.PostWithOwner, error)
	UpdatePostFn func(ctx context.Context, userID, postID int64, patch domain.PostPatch) (*domain.PostWithOwner, error)
	DeletePostFn func(ctx context.Context, userID, postID int64) error

	// Users resolves owner summaries for the in-memory default.
	Users *MockUserStore

	mu     sync.Mutex
	posts  []*domain.Post
	nextID int64

	// ListQueries records every query passed to ListPosts.
	ListQueries []domain.PostQuery
}

var _ service.PostService = (*MockPostService)(nil)

// CreatePost implements service.PostService
func (m *MockPostService) CreatePost(ctx context.Context, userID int64, title, content string) (*domain.Post, error) {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, userID, title, content)
	}

	post, err := domain.NewPost(title, content, userID)
	if err != nil {
		return nil, apperr.New(apperr.KindBadRequest, "Invalid post data", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	post.ID = m.nextID
	stored := *post
	m.posts = append(m.posts, &stored)
	return post, nil
}

// ListPosts implements service.PostService
func (m *MockPostService) ListPosts(ctx context.Context, query domain.PostQuery) (*service.PostPage, error) {
	m.mu.Lock()
	m.ListQueries = append(m.ListQueries, query)
	m.mu.Unlock()

	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, query)
	}

	m.mu.Lock()
	sorted := make([]*domain.Post, len(m.posts))
	copy(sorted, m.posts)
	m.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		var c int
		switch query.SortBy {
		case domain.SortByTitle:
			c = strings.Compare(sorted[i].Title, sorted[j].Title)
		case domain.SortByContent:
			c = strings.Compare(sorted[i].Content, sorted[j].Content)
		default:
			c = compareInt64(sorted[i].ID, sorted[j].ID)
		}
		if query.SortOrder == domain.SortDesc {
			c = -c
		}
		return c < 0
	})

	page := &service.PostPage{Total: len(sorted), Page: query.Page, Limit: query.Limit}
	for i := query.Offset(); i < len(sorted) && len(page.Posts) < query.Limit; i++ {
		page.Posts = append(page.Posts, m.withOwner(sorted[i]))
	}
	return page, nil
}

// GetPost implements service.PostService
func (m *MockPostService) GetPost(ctx context.Context, postID int64) (*domain.PostWithOwner, error) {
	if m.GetPostFn != nil {
		return m.GetPostFn(ctx, postID)
	}

	post, ok := m.lookup(postID)
	if !ok {
		return nil, apperr.NotFound(service.MsgPostNotFound, nil)
	}
	return m.withOwner(post), nil
}

// UpdatePost implements service.PostService
func (m *MockPostService) UpdatePost(
	ctx context.Context,
	userID, postID int64,
	patch domain.PostPatch,
) (*domain.PostWithOwner, error) {
	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, userID, postID, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID != postID {
			continue
		}
		if !p.OwnedBy(userID) {
			return nil, apperr.Unauthorized(service.MsgUnauthorizedUser, service.ErrNotOwned)
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		p.UpdatedAt = time.Now().UTC()
		copied := *p
		return m.withOwner(&copied), nil
	}
	return nil, apperr.NotFound(service.MsgPostNotFound, nil)
}

// DeletePost implements service.PostService
func (m *MockPostService) DeletePost(ctx context.Context, userID, postID int64) error {
	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, userID, postID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID != postID {
			continue
		}
		if !p.OwnedBy(userID) {
			return apperr.Unauthorized(service.MsgUnauthorizedUser, service.ErrNotOwned)
		}
		m.posts = append(m.posts[:i], m.posts[i+1:]...)
		return nil
	}
	return apperr.NotFound(service.MsgPostNotFound, nil)
}

func (m *MockPostService) lookup(postID int64) (*domain.Post, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == postID {
			copied := *p
			return &copied, true
		}
	}
	return nil, false
}

func (m *MockPostService) withOwner(post *domain.Post) *domain.PostWithOwner {
	out := &domain.PostWithOwner{Post: *post, Owner: domain.UserSummary{ID: post.UserID}}
	if m.Users != nil {
		if u, err := m.Users.GetByID(post.UserID); err == nil {
			out.Owner = u.Summary()
		}
	}
	return out
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
