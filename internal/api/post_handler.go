package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/service"
)

// Client-visible messages of the post endpoints.
const (
	MsgPostCreated   = "Post created successfully"
	MsgPostsListed   = "Posts retrieved successfully"
	MsgPostRetrieved = "Post retrieved successfully"
	MsgPostUpdated   = "Post updated successfully"
	MsgPostDeleted   = "Post deleted successfully"

	MsgErrCreatingPost   = "Error creating post"
	MsgErrRetrievingList = "Error retrieving posts"
	MsgErrRetrievingPost = "Error retrieving post"
	MsgErrUpdatingPost   = "Error updating post"
	MsgErrDeletingPost   = "Error deleting post"
)

// DefaultMaxLimit caps the page size when no limit is configured.
const DefaultMaxLimit = 100

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	posts    service.PostService
	maxLimit int
	logger   *slog.Logger
}

// NewPostHandler creates a new PostHandler. maxLimit <= 0 selects
// DefaultMaxLimit.
func NewPostHandler(posts service.PostService, maxLimit int, logger *slog.Logger) *PostHandler {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{
		posts:    posts,
		maxLimit: maxLimit,
		logger:   logger.With(slog.String("component", "post_handler")),
	}
}

// CreatePost handles POST /post.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrCreatingPost)
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, MsgInvalidRequestFormat, err), "")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, postRequestValidationMessage(err), err), "")
		return
	}

	post, err := h.posts.CreatePost(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrCreatingPost)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, postToResponse(post), MsgPostCreated)
}

// ListPosts handles GET /posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query, err := parsePostQuery(r.URL.Query(), h.maxLimit)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrRetrievingList)
		return
	}

	page, err := h.posts.ListPosts(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrRetrievingList)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, pageToResponse(page), MsgPostsListed)
}

// GetPost handles GET /post/{id}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPostID(r)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrRetrievingPost)
		return
	}

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrRetrievingPost)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, postWithOwnerToResponse(post), MsgPostRetrieved)
}

// UpdatePost handles PATCH /post/{id}.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPostID(r)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrUpdatingPost)
		return
	}

	userID, err := getUserID(r)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrUpdatingPost)
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.New(apperr.KindBadRequest, MsgInvalidRequestFormat, err), "")
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), userID, postID, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, MsgErrUpdatingPost)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, updatedPostToResponse(post), MsgPostUpdated)
}

// DeletePost handles DELETE /post/{id}.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPostID(r)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrDeletingPost)
		return
	}

	userID, err := getUserID(r)
	if err != nil {
		HandleAPIError(w, r, err, MsgErrDeletingPost)
		return
	}

	if err := h.posts.DeletePost(r.Context(), userID, postID); err != nil {
		HandleAPIError(w, r, err, MsgErrDeletingPost)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nil, MsgPostDeleted)
}

func postRequestValidationMessage(err error) string {
	fe, ok := shared.FirstFieldError(err)
	if !ok {
		return MsgInvalidRequestFormat
	}
	switch {
	case fe.Field == "title" && fe.Tag == "max":
		return "Title must be at most 255 characters"
	case fe.Field == "title":
		return "Title is required"
	case fe.Field == "content":
		return "Content is required"
	default:
		return MsgInvalidRequestFormat
	}
}
