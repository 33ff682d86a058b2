package api

import (
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
// Field order is the order the rules are checked in.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"email_format"`
	Password string `json:"password" validate:"password_strength"`
	Username string `json:"username" validate:"required,max=255"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of the authenticated user.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreatePostRequest defines the payload for creating a post.
type CreatePostRequest struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest defines the payload for updating a post. Absent fields
// are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Patch converts the request into a domain patch.
func (r UpdatePostRequest) Patch() domain.PostPatch {
	return domain.PostPatch{Title: r.Title, Content: r.Content}
}

// PostResponse is a post as returned by the API. UserID is set where the
// owner's id is exposed directly; User where the owner summary is embedded.
type PostResponse struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	UserID    *int64              `json:"userId,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	User      *domain.UserSummary `json:"user,omitempty"`
}

// PostListResponse is one page of posts.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

// postToResponse exposes userId and no owner summary.
func postToResponse(p *domain.Post) PostResponse {
	userID := p.UserID
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    &userID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// postWithOwnerToResponse embeds the owner summary and hides userId.
func postWithOwnerToResponse(p *domain.PostWithOwner) PostResponse {
	owner := p.Owner
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User:      &owner,
	}
}

// updatedPostToResponse carries both userId and the owner summary.
func updatedPostToResponse(p *domain.PostWithOwner) PostResponse {
	resp := postWithOwnerToResponse(p)
	userID := p.UserID
	resp.UserID = &userID
	return resp
}

func pageToResponse(page *service.PostPage) PostListResponse {
	resp := PostListResponse{
		Posts: make([]PostResponse, 0, len(page.Posts)),
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
	for _, p := range page.Posts {
		resp.Posts = append(resp.Posts, postWithOwnerToResponse(p))
	}
	return resp
}
