package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Post validation errors
var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrTitleTooLong  = errors.New("title must be at most 255 characters long")
	ErrEmptyContent  = errors.New("content cannot be empty")
	ErrInvalidUserID = errors.New("user ID must be positive")
)

// MaxTitleLength is the column width of posts.title.
const MaxTitleLength = 255

// Post is an article written by a user.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost creates a Post owned by userID. The ID is assigned by the store.
func NewPost(title, content string, userID int64) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks the fields required for persistence.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	if p.UserID <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

// OwnedBy reports whether userID is the author of the post.
func (p *Post) OwnedBy(userID int64) bool {
	return p.UserID == userID
}

// PostWithOwner is a post joined with its author's summary.
type PostWithOwner struct {
	Post
	Owner UserSummary
}

// PostPatch is a partial update. Nil fields are left unchanged.
type PostPatch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// Validate checks the fields the patch sets.
func (p PostPatch) Validate() error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return ErrEmptyTitle
		}
		if utf8.RuneCountInString(*p.Title) > MaxTitleLength {
			return ErrTitleTooLong
		}
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// SortField is a column posts can be ordered by.
type SortField string

// Allowed sort fields
const (
	SortByID      SortField = "id"
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"
)

// SortOrder is the direction of a listing.
type SortOrder string

// Allowed sort orders
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Listing defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// MaxOffset is the largest number of rows a listing may skip. It keeps
// (page-1)*limit within an int on every platform.
const MaxOffset = math.MaxInt32

// MaxPage is the last page number whose offset fits in MaxOffset for the
// given page size. limit must be positive.
func MaxPage(limit int) int {
	return MaxOffset/limit + 1
}

// ParseSortField validates a sort field name.
func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(s); f {
	case SortByID, SortByTitle, SortByContent:
		return f, true
	}
	return "", false
}

// ParseSortOrder validates a sort direction.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(s); o {
	case SortAsc, SortDesc:
		return o, true
	}
	return "", false
}

// PostQuery describes one page of a post listing.
type PostQuery struct {
	Page      int
	Limit     int
	SortBy    SortField
	SortOrder SortOrder
}

// DefaultPostQuery returns the first page sorted by id ascending.
func DefaultPostQuery() PostQuery {
	return PostQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    SortByID,
		SortOrder: SortAsc,
	}
}

// Offset is the number of rows skipped before the page.
func (q PostQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Validate checks that the query can be executed.
func (q PostQuery) Validate() error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be positive", ErrValidation)
	}
	if q.Limit < 1 {
		return fmt.Errorf("%w: limit must be positive", ErrValidation)
	}
	if q.Page > MaxPage(q.Limit) {
		return fmt.Errorf("%w: page %d exceeds %d for limit %d", ErrValidation, q.Page, MaxPage(q.Limit), q.Limit)
	}
	if _, ok := ParseSortField(string(q.SortBy)); !ok {
		return fmt.Errorf("%w: unknown sort field %q", ErrValidation, q.SortBy)
	}
	if _, ok := ParseSortOrder(string(q.SortOrder)); !ok {
		return fmt.Errorf("%w: unknown sort order %q", ErrValidation, q.SortOrder)
	}
	return nil
}
