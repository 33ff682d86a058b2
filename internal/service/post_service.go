package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/store"
)

// Client-visible messages produced by PostService.
const (
	MsgPostNotFound     = "Post not found"
	MsgUnauthorizedUser = "Unauthorized user"
)

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []*domain.PostWithOwner
	Total int
	Page  int
	Limit int
}

// PostService provides post-related operations.
type PostService interface {
	// CreatePost creates a post owned by userID.
	CreatePost(ctx context.Context, userID int64, title, content string) (*domain.Post, error)

	// ListPosts returns one page of posts with their owners.
	ListPosts(ctx context.Context, query domain.PostQuery) (*PostPage, error)

	// GetPost retrieves a post and its owner.
	GetPost(ctx context.Context, postID int64) (*domain.PostWithOwner, error)

	// UpdatePost applies patch if userID owns the post.
	UpdatePost(ctx context.Context, userID, postID int64, patch domain.PostPatch) (*domain.PostWithOwner, error)

	// DeletePost removes the post if userID owns it.
	DeletePost(ctx context.Context, userID, postID int64) error
}

type postServiceImpl struct {
	posts  store.PostStore
	logger *slog.Logger
}

// NewPostService creates a new PostService.
// It returns an error if the post store is nil.
func NewPostService(posts store.PostStore, logger *slog.Logger) (PostService, error) {
	if posts == nil {
		return nil, fmt.Errorf("%w: post store cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &postServiceImpl{
		posts:  posts,
		logger: logger.With(slog.String("component", "post_service")),
	}, nil
}

// CreatePost implements PostService.CreatePost
func (s *postServiceImpl) CreatePost(
	ctx context.Context,
	userID int64,
	title, content string,
) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := domain.NewPost(title, content, userID)
	if err != nil {
		return nil, apperr.New(apperr.KindBadRequest, postValidationMessage(err), err)
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn("post author no longer exists", slog.Int64("user_id", userID))
			return nil, apperr.Unauthorized(MsgUnauthorizedUser, err)
		}
		log.Error("failed to create post", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return nil, NewServiceError("post", "create", err)
	}

	log.Info("post created", slog.Int64("post_id", post.ID), slog.Int64("user_id", userID))
	return post, nil
}

// ListPosts implements PostService.ListPosts
func (s *postServiceImpl) ListPosts(ctx context.Context, query domain.PostQuery) (*PostPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := query.Validate(); err != nil {
		return nil, apperr.New(apperr.KindBadRequest, "Invalid query params", err)
	}

	posts, total, err := s.posts.List(ctx, query)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, NewServiceError("post", "list", err)
	}

	log.Debug("listed posts",
		slog.Int("count", len(posts)),
		slog.Int("total", total),
		slog.Int("page", query.Page))

	return &PostPage{Posts: posts, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

// GetPost implements PostService.GetPost
func (s *postServiceImpl) GetPost(ctx context.Context, postID int64) (*domain.PostWithOwner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("post not found", slog.Int64("post_id", postID))
			return nil, apperr.NotFound(MsgPostNotFound, err)
		}
		log.Error("failed to retrieve post", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return nil, NewServiceError("post", "get", err)
	}

	return post, nil
}

// UpdatePost implements PostService.UpdatePost
// The row is locked for the ownership check so a concurrent delete or update
// cannot slip in between.
func (s *postServiceImpl) UpdatePost(
	ctx context.Context,
	userID, postID int64,
	patch domain.PostPatch,
) (*domain.PostWithOwner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, apperr.New(apperr.KindBadRequest, postValidationMessage(err), err)
	}

	var updated *domain.PostWithOwner
	err := store.RunInTransaction(ctx, s.posts.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txPosts := s.posts.WithTx(tx)

		if err := s.lockOwned(ctx, txPosts, userID, postID); err != nil {
			return err
		}

		if !patch.Empty() {
			if _, err := txPosts.Update(ctx, postID, patch); err != nil {
				return s.storeError("update", postID, err)
			}
		}

		post, err := txPosts.GetByID(ctx, postID)
		if err != nil {
			return s.storeError("update", postID, err)
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("post updated", slog.Int64("post_id", postID), slog.Int64("user_id", userID))
	return updated, nil
}

// DeletePost implements PostService.DeletePost
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.posts.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txPosts := s.posts.WithTx(tx)

		if err := s.lockOwned(ctx, txPosts, userID, postID); err != nil {
			return err
		}

		if err := txPosts.Delete(ctx, postID); err != nil {
			return s.storeError("delete", postID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("post deleted", slog.Int64("post_id", postID), slog.Int64("user_id", userID))
	return nil
}

// lockOwned loads the post FOR UPDATE and checks that userID owns it.
func (s *postServiceImpl) lockOwned(ctx context.Context, posts store.PostStore, userID, postID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := posts.GetByIDForUpdate(ctx, postID)
	if err != nil {
		return s.storeError("lock", postID, err)
	}

	if !post.OwnedBy(userID) {
		log.Warn("user attempted to modify a post they do not own",
			slog.Int64("post_id", postID),
			slog.Int64("user_id", userID),
			slog.Int64("owner_id", post.UserID))
		return apperr.Unauthorized(MsgUnauthorizedUser, ErrNotOwned)
	}
	return nil
}

func (s *postServiceImpl) storeError(op string, postID int64, err error) error {
	if store.IsNotFoundError(err) {
		return apperr.NotFound(MsgPostNotFound, err)
	}
	s.logger.Error("post store failure",
		slog.String("op", op),
		slog.Int64("post_id", postID),
		slog.String("error", err.Error()))
	return NewServiceError("post", op, err)
}

// postValidationMessage maps domain validation errors to client messages.
func postValidationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Title is required"
	case errors.Is(err, domain.ErrTitleTooLong):
		return fmt.Sprintf("Title must be at most %d characters", domain.MaxTitleLength)
	case errors.Is(err, domain.ErrEmptyContent):
		return "Content is required"
	case errors.Is(err, domain.ErrInvalidUserID):
		return "Invalid user"
	default:
		return "Invalid post data"
	}
}
