package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestUploadConversation(t *testing.T) {
	e, _ := newTestServer(t)

	payload := []byte(`{"mapping":{"a":{"message":null}},"title":"demo chat"}`)
	rec := doUpload(t, e, "demo.json", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var uploaded UploadConversationResponse
	decodeJSON(t, rec, &uploaded)
	require.Equal(t, "Conversation uploaded successfully", uploaded.Message)
	require.Equal(t, int32(1), uploaded.ChainID)

	// Fetch returns the stored record with name derived from the filename
	// and content deep-equal to the uploaded payload.
	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/api/conversations/%d", uploaded.ChainID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var chain ChainResponse
	decodeJSON(t, rec, &chain)
	require.Equal(t, uploaded.ChainID, chain.ID)
	require.Equal(t, "demo", chain.Name)
	require.False(t, chain.IsFavorite)

	var want, got any
	require.NoError(t, json.Unmarshal(payload, &want))
	require.NoError(t, json.Unmarshal(chain.Content, &got))
	require.Equal(t, want, got)
}

func TestUploadConversationRejectsBadExtension(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doUpload(t, e, "demo.txt", []byte(`{"mapping":{}}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Only JSON files are allowed", errorDetail(t, rec))

	requireConversationCount(t, e, 0)
}

func TestUploadConversationRejectsMalformedJSON(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doUpload(t, e, "demo.json", []byte(`{not json`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid JSON format", errorDetail(t, rec))

	requireConversationCount(t, e, 0)
}

func TestUploadConversationRejectsMissingMapping(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doUpload(t, e, "demo.json", []byte(`{"title":"no mapping here"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid conversation format: missing 'mapping' field", errorDetail(t, rec))

	// An array payload has no top-level keys at all.
	rec = doUpload(t, e, "demo.json", []byte(`[1,2,3]`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid conversation format: missing 'mapping' field", errorDetail(t, rec))

	requireConversationCount(t, e, 0)
}

func TestGetConversationNotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/conversations/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Conversation not found", errorDetail(t, rec))
}

func TestToggleBookmark(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doUpload(t, e, "demo.json", []byte(`{"mapping":{}}`))
	require.Equal(t, http.StatusOK, rec.Code)

	// First toggle flips the flag on.
	rec = doRequest(e, http.MethodPost, "/api/conversations/1/bookmark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chain ChainResponse
	decodeJSON(t, rec, &chain)
	require.True(t, chain.IsFavorite)

	// Second toggle restores the original value.
	rec = doRequest(e, http.MethodPost, "/api/conversations/1/bookmark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &chain)
	require.False(t, chain.IsFavorite)

	// A nonexistent id is not found and changes nothing.
	rec = doRequest(e, http.MethodPost, "/api/conversations/99/bookmark", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Conversation not found", errorDetail(t, rec))
}

func TestDeleteConversation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doUpload(t, e, "demo.json", []byte(`{"mapping":{}}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/conversations/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeJSON(t, rec, &body)
	require.Equal(t, "Conversation deleted successfully", body["message"])

	// The record is gone.
	rec = doRequest(e, http.MethodGet, "/api/conversations/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again is not found.
	rec = doRequest(e, http.MethodDelete, "/api/conversations/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportConversation(t *testing.T) {
	e, _ := newTestServer(t)

	payload := []byte(`{"mapping":{"root":{"children":[]}}}`)
	rec := doUpload(t, e, "my-chat.json", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/conversations/1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var export ExportConversationResponse
	decodeJSON(t, rec, &export)
	require.Equal(t, "my-chat", export.Title)

	exportDate, err := time.Parse(time.RFC3339, export.ExportDate)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), exportDate, time.Minute)

	var want, got any
	require.NoError(t, json.Unmarshal(payload, &want))
	require.NoError(t, json.Unmarshal(export.Conversation, &got))
	require.Equal(t, want, got)

	rec = doRequest(e, http.MethodGet, "/api/conversations/2/export", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListConversations(t *testing.T) {
	e, _ := newTestServer(t)

	for i := 0; i < 5; i++ {
		body := []byte(fmt.Sprintf(`{"name":"chat-%d","content":{"mapping":{}}}`, i))
		rec := doRequest(e, http.MethodPost, "/chains/", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var list []*ChainResponse
	rec := doRequest(e, http.MethodGet, "/api/conversations/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &list)
	require.Len(t, list, 5)

	// skip drops records in creation order.
	rec = doRequest(e, http.MethodGet, "/api/conversations/?skip=2&limit=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &list)
	require.Len(t, list, 3)
	require.Equal(t, "chat-2", list[0].Name)

	// Malformed pagination is rejected.
	rec = doRequest(e, http.MethodGet, "/api/conversations/?skip=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func requireConversationCount(t *testing.T, e *echo.Echo, want int) {
	rec := doRequest(e, http.MethodGet, "/api/conversations/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*ChainResponse
	decodeJSON(t, rec, &list)
	require.Len(t, list, want)
}
