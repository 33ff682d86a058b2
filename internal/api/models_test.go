package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modelTime = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func samplePost() *domain.PostWithOwner {
	return &domain.PostWithOwner{
		Post: domain.Post{ID: 4, Title: "T", Content: "C", UserID: 2, CreatedAt: modelTime, UpdatedAt: modelTime},
		Owner: domain.UserSummary{
			ID: 2, Email: "bob@example.com", Username: "bob", CreatedAt: modelTime, UpdatedAt: modelTime,
		},
	}
}

func jsonKeys(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestPostResponseShapes(t *testing.T) {
	t.Parallel()

	created := jsonKeys(t, postToResponse(&samplePost().Post))
	assert.Contains(t, created, "userId")
	assert.NotContains(t, created, "user")

	fetched := jsonKeys(t, postWithOwnerToResponse(samplePost()))
	assert.Contains(t, fetched, "user")
	assert.NotContains(t, fetched, "userId")

	updated := jsonKeys(t, updatedPostToResponse(samplePost()))
	assert.Contains(t, updated, "user")
	assert.Contains(t, updated, "userId")

	for _, k := range []string{"id", "title", "content", "createdAt", "updatedAt"} {
		assert.Contains(t, updated, k)
	}
}

func TestOwnerSummaryHasNoPassword(t *testing.T) {
	t.Parallel()

	user := jsonKeys(t, jsonKeys(t, postWithOwnerToResponse(samplePost()))["user"])
	assert.ElementsMatch(t, []string{"id", "email", "username", "createdAt", "updatedAt"}, keysOf(user))
}

func TestPageToResponseNeverNull(t *testing.T) {
	t.Parallel()

	resp := pageToResponse(&service.PostPage{Total: 0, Page: 1, Limit: 10})
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[],"total":0,"page":1,"limit":10}`, string(b))
}

func TestUpdatePostRequestPatch(t *testing.T) {
	t.Parallel()

	var req UpdatePostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"content":"new"}`), &req))
	patch := req.Patch()
	assert.Nil(t, patch.Title)
	require.NotNil(t, patch.Content)
	assert.Equal(t, "new", *patch.Content)
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
