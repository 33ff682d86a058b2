package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/mocks"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSeededPostHandler returns a handler over two users; user 1 owns posts
// 1 and 2, user 2 owns post 3.
func newSeededPostHandler(t *testing.T) (*PostHandler, *mocks.MockPostService) {
	t.Helper()

	users := mocks.NewMockUserStore(
		&domain.User{ID: 1, Email: "alice@example.com", Username: "alice", HashedPassword: "x"},
		&domain.User{ID: 2, Email: "bob@example.com", Username: "bob", HashedPassword: "x"},
	)
	posts := &mocks.MockPostService{Users: users}
	for _, p := range []struct {
		owner          int64
		title, content string
	}{
		{1, "Banana", "second"},
		{1, "Apple", "third"},
		{2, "Cherry", "first"},
	} {
		_, err := posts.CreatePost(context.Background(), p.owner, p.title, p.content)
		require.NoError(t, err)
	}
	return NewPostHandler(posts, 0, slog.Default()), posts
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{name: "success", body: CreatePostRequest{Title: "Hello", Content: "World"}, wantStatus: http.StatusCreated, wantMsg: MsgPostCreated},
		{name: "malformed json", body: `{"title"`, wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidRequestFormat},
		{name: "missing title", body: CreatePostRequest{Content: "World"}, wantStatus: http.StatusBadRequest, wantMsg: "Title is required"},
		{name: "title too long", body: CreatePostRequest{Title: strings.Repeat("t", 256), Content: "World"}, wantStatus: http.StatusBadRequest, wantMsg: "Title must be at most 255 characters"},
		{name: "missing content", body: CreatePostRequest{Title: "Hello"}, wantStatus: http.StatusBadRequest, wantMsg: "Content is required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newSeededPostHandler(t)
			rr := httptest.NewRecorder()
			h.CreatePost(rr, withClaims(newJSONRequest(t, http.MethodPost, "/post", tt.body), 1))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rr).Message)
		})
	}
}

func TestCreatePostResponse(t *testing.T) {
	t.Parallel()

	h, _ := newSeededPostHandler(t)
	rr := httptest.NewRecorder()
	h.CreatePost(rr, withClaims(newJSONRequest(t, http.MethodPost, "/post",
		CreatePostRequest{Title: "Hello", Content: "World"}), 2))

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp PostResponse
	decodeData(t, decodeEnvelope(t, rr), &resp)
	assert.Equal(t, int64(4), resp.ID)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, int64(2), *resp.UserID)
	assert.Nil(t, resp.User)
}

func TestCreatePostWithoutClaims(t *testing.T) {
	t.Parallel()

	h, _ := newSeededPostHandler(t)
	rr := httptest.NewRecorder()
	h.CreatePost(rr, newJSONRequest(t, http.MethodPost, "/post", CreatePostRequest{Title: "a", Content: "b"}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListPosts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantTitles []string
		wantPage   int
		wantLimit  int
	}{
		{name: "defaults", query: "", wantTitles: []string{"Banana", "Apple", "Cherry"}, wantPage: 1, wantLimit: domain.DefaultLimit},
		{name: "by title", query: "?sortBy=title", wantTitles: []string{"Apple", "Banana", "Cherry"}, wantPage: 1, wantLimit: domain.DefaultLimit},
		{name: "by content desc", query: "?sortBy=content&sortOrder=desc", wantTitles: []string{"Apple", "Banana", "Cherry"}, wantPage: 1, wantLimit: domain.DefaultLimit},
		{name: "second page", query: "?page=2&limit=2", wantTitles: []string{"Cherry"}, wantPage: 2, wantLimit: 2},
		{name: "past the end", query: "?page=5&limit=2", wantTitles: []string{}, wantPage: 5, wantLimit: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newSeededPostHandler(t)
			rr := httptest.NewRecorder()
			h.ListPosts(rr, httptest.NewRequest(http.MethodGet, "/posts"+tt.query, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.Equal(t, MsgPostsListed, env.Message)

			var resp PostListResponse
			decodeData(t, env, &resp)
			titles := make([]string, 0, len(resp.Posts))
			for _, p := range resp.Posts {
				titles = append(titles, p.Title)
				require.NotNil(t, p.User)
				assert.Nil(t, p.UserID)
			}
			assert.Equal(t, tt.wantTitles, titles)
			assert.Equal(t, 3, resp.Total)
			assert.Equal(t, tt.wantPage, resp.Page)
			assert.Equal(t, tt.wantLimit, resp.Limit)
		})
	}
}

func TestListPostsInvalidQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		wantMsg string
	}{
		{"?page=abc", "Invalid query params page: abc. The allowed values are numbers."},
		{"?limit=0", "Invalid query params limit: 0. The allowed values are positive numbers."},
		{"?limit=1000", fmt.Sprintf("Invalid query params limit: 1000. The maximum allowed value is %d.", DefaultMaxLimit)},
		{"?sortBy=foo", "Invalid query params sortBy: foo. The allowed values 'id', 'title' or 'content'."},
		{"?sortOrder=up", "Invalid query params sortOrder: up. The allowed values 'asc' or 'desc'."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			h, posts := newSeededPostHandler(t)
			rr := httptest.NewRecorder()
			h.ListPosts(rr, httptest.NewRequest(http.MethodGet, "/posts"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rr).Message)
			assert.Empty(t, posts.ListQueries)
		})
	}
}

func TestListPostsServiceFailure(t *testing.T) {
	t.Parallel()

	posts := &mocks.MockPostService{
		ListPostsFn: func(context.Context, domain.PostQuery) (*service.PostPage, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewPostHandler(posts, 10, nil)

	rr := httptest.NewRecorder()
	h.ListPosts(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, MsgErrRetrievingList, env.Message)
	assert.NotContains(t, rr.Body.String(), "connection")
}

func TestGetPost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantMsg    string
	}{
		{name: "found", id: "3", wantStatus: http.StatusOK, wantMsg: MsgPostRetrieved},
		{name: "missing", id: "99", wantStatus: http.StatusNotFound, wantMsg: service.MsgPostNotFound},
		{name: "non-numeric", id: "abc", wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidPostID},
		{name: "negative", id: "-1", wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidPostID},
		{name: "empty", id: "", wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidPostID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newSeededPostHandler(t)
			rr := httptest.NewRecorder()
			h.GetPost(rr, withPostID(httptest.NewRequest(http.MethodGet, "/post/"+tt.id, nil), tt.id))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rr).Message)
		})
	}
}

func TestGetPostEmbedsOwner(t *testing.T) {
	t.Parallel()

	h, _ := newSeededPostHandler(t)
	rr := httptest.NewRecorder()
	h.GetPost(rr, withPostID(httptest.NewRequest(http.MethodGet, "/post/3", nil), "3"))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp PostResponse
	decodeData(t, decodeEnvelope(t, rr), &resp)
	assert.Equal(t, "Cherry", resp.Title)
	require.NotNil(t, resp.User)
	assert.Equal(t, "bob", resp.User.Username)
	assert.Nil(t, resp.UserID)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestUpdatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		userID     int64
		body       any
		wantStatus int
		wantMsg    string
	}{
		{name: "owner", id: "1", userID: 1, body: map[string]string{"title": "Renamed"}, wantStatus: http.StatusOK, wantMsg: MsgPostUpdated},
		{name: "empty body keeps the post", id: "1", userID: 1, body: map[string]string{}, wantStatus: http.StatusOK, wantMsg: MsgPostUpdated},
		{name: "non-owner", id: "3", userID: 1, body: map[string]string{"title": "Mine now"}, wantStatus: http.StatusUnauthorized, wantMsg: service.MsgUnauthorizedUser},
		{name: "missing", id: "99", userID: 1, body: map[string]string{"title": "x"}, wantStatus: http.StatusNotFound, wantMsg: service.MsgPostNotFound},
		{name: "bad id", id: "x1", userID: 1, body: map[string]string{"title": "x"}, wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidPostID},
		{name: "malformed json", id: "1", userID: 1, body: "{", wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidRequestFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newSeededPostHandler(t)
			req := newJSONRequest(t, http.MethodPatch, "/post/"+tt.id, tt.body)
			rr := httptest.NewRecorder()
			h.UpdatePost(rr, withClaims(withPostID(req, tt.id), tt.userID))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rr).Message)
		})
	}
}

func TestUpdatePostResponse(t *testing.T) {
	t.Parallel()

	h, posts := newSeededPostHandler(t)
	req := newJSONRequest(t, http.MethodPatch, "/post/1", map[string]string{"content": "changed"})
	rr := httptest.NewRecorder()
	h.UpdatePost(rr, withClaims(withPostID(req, "1"), 1))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp PostResponse
	decodeData(t, decodeEnvelope(t, rr), &resp)
	assert.Equal(t, "Banana", resp.Title)
	assert.Equal(t, "changed", resp.Content)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, int64(1), *resp.UserID)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)

	stored, err := posts.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Content)
}

func TestDeletePost(t *testing.T) {
	t.Parallel()

	t.Run("owner", func(t *testing.T) {
		t.Parallel()

		h, posts := newSeededPostHandler(t)
		rr := httptest.NewRecorder()
		h.DeletePost(rr, withClaims(withPostID(httptest.NewRequest(http.MethodDelete, "/post/3", nil), "3"), 2))

		require.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, MsgPostDeleted, env.Message)
		assert.Equal(t, "null", string(env.Data))

		_, err := posts.GetPost(context.Background(), 3)
		assert.Error(t, err)
	})

	t.Run("non-owner leaves the post", func(t *testing.T) {
		t.Parallel()

		h, posts := newSeededPostHandler(t)
		rr := httptest.NewRecorder()
		h.DeletePost(rr, withClaims(withPostID(httptest.NewRequest(http.MethodDelete, "/post/3", nil), "3"), 1))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		_, err := posts.GetPost(context.Background(), 3)
		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		h, _ := newSeededPostHandler(t)
		rr := httptest.NewRecorder()
		h.DeletePost(rr, withClaims(withPostID(httptest.NewRequest(http.MethodDelete, "/post/42", nil), "42"), 1))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
