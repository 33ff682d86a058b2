package api

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/api/middleware"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/domain"
)

// MsgInvalidPostID is returned for a missing or non-numeric post id.
const MsgInvalidPostID = "Invalid post ID"

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// getPostID reads the {id} path parameter. Only plain decimal digits are
// accepted; a missing id, signs, whitespace and overflow are all rejected.
func getPostID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if !digitsOnly.MatchString(raw) {
		return 0, apperr.New(apperr.KindBadRequest, MsgInvalidPostID, domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.KindBadRequest, MsgInvalidPostID, fmt.Errorf("%w: %v", domain.ErrInvalidID, err))
	}
	return id, nil
}

// getUserID returns the authenticated user's ID. A protected route without
// claims is a wiring bug, so it answers 401 rather than trusting the request.
func getUserID(r *http.Request) (int64, error) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return 0, apperr.Unauthorized("Unauthorized", domain.ErrUnauthorized)
	}
	return userID, nil
}

// parsePostQuery reads page, limit, sortBy and sortOrder from the query
// string, applying defaults for absent parameters.
func parsePostQuery(values url.Values, maxLimit int) (domain.PostQuery, error) {
	q := domain.DefaultPostQuery()

	if values.Has("page") {
		page, err := parsePositiveInt("page", values.Get("page"), 0)
		if err != nil {
			return q, err
		}
		q.Page = page
	}

	if values.Has("limit") {
		limit, err := parsePositiveInt("limit", values.Get("limit"), maxLimit)
		if err != nil {
			return q, err
		}
		q.Limit = limit
	}

	// The bound depends on limit, so it is checked once both are known.
	if last := domain.MaxPage(q.Limit); q.Page > last {
		return q, apperr.BadRequest(fmt.Sprintf(
			"Invalid query params page: %s. The maximum allowed value is %d.", values.Get("page"), last))
	}

	if values.Has("sortBy") {
		raw := values.Get("sortBy")
		field, ok := domain.ParseSortField(raw)
		if !ok {
			return q, apperr.BadRequest(fmt.Sprintf(
				"Invalid query params sortBy: %s. The allowed values 'id', 'title' or 'content'.", raw))
		}
		q.SortBy = field
	}

	if values.Has("sortOrder") {
		raw := values.Get("sortOrder")
		order, ok := domain.ParseSortOrder(raw)
		if !ok {
			return q, apperr.BadRequest(fmt.Sprintf(
				"Invalid query params sortOrder: %s. The allowed values 'asc' or 'desc'.", raw))
		}
		q.SortOrder = order
	}

	return q, nil
}

// parsePositiveInt parses a pagination parameter. max <= 0 means unbounded.
func parsePositiveInt(name, raw string, max int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest(fmt.Sprintf(
			"Invalid query params %s: %s. The allowed values are numbers.", name, raw))
	}
	if n < 1 {
		return 0, apperr.BadRequest(fmt.Sprintf(
			"Invalid query params %s: %s. The allowed values are positive numbers.", name, raw))
	}
	if max > 0 && n > max {
		return 0, apperr.BadRequest(fmt.Sprintf(
			"Invalid query params %s: %s. The maximum allowed value is %d.", name, raw, max))
	}
	return n, nil
}
