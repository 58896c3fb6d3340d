package v1

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/chainviz/chainviz/server/internal/errors"
	"github.com/chainviz/chainviz/server/internal/observability"
	"github.com/chainviz/chainviz/store"
)

// UploadConversationResponse is returned after a successful file upload.
type UploadConversationResponse struct {
	Message string `json:"message"`
	ChainID int32  `json:"chain_id"`
}

// ExportConversationResponse is the derived export view of a record.
type ExportConversationResponse struct {
	Title        string          `json:"title"`
	ExportDate   string          `json:"exportDate"`
	Conversation json.RawMessage `json:"conversation"`
}

// UploadConversation stores an uploaded conversation JSON file.
// POST /api/conversations/upload
func (s *APIV1Service) UploadConversation(c echo.Context) error {
	ctx := c.Request().Context()
	logger := observability.NewRequestContext(slog.Default(), c.Request().Method, c.Path())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, apierrors.InvalidArgument("A file is required"))
	}
	if !strings.HasSuffix(fileHeader.Filename, ".json") {
		return writeError(c, apierrors.InvalidArgument("Only JSON files are allowed"))
	}

	if err := s.uploadSemaphore.Acquire(ctx, 1); err != nil {
		return writeError(c, apierrors.Internal("Error processing file", err))
	}
	defer s.uploadSemaphore.Release(1)

	src, err := fileHeader.Open()
	if err != nil {
		return writeError(c, apierrors.Internal("Error processing file", err))
	}
	defer src.Close()
	raw, err := io.ReadAll(src)
	if err != nil {
		return writeError(c, apierrors.Internal("Error processing file", err))
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return writeError(c, apierrors.InvalidArgument("Invalid JSON format"))
	}
	object, ok := payload.(map[string]any)
	if !ok {
		return writeError(c, apierrors.InvalidArgument("Invalid conversation format: missing 'mapping' field"))
	}
	if _, ok := object["mapping"]; !ok {
		return writeError(c, apierrors.InvalidArgument("Invalid conversation format: missing 'mapping' field"))
	}

	chain, err := s.Store.CreateChain(ctx, &store.Chain{
		Name:    strings.TrimSuffix(fileHeader.Filename, ".json"),
		Content: string(raw),
	})
	if err != nil {
		logger.Error("failed to create chain", err)
		return writeError(c, apierrors.Internal("Error processing file", err))
	}

	logger.Info("conversation uploaded",
		slog.Int(observability.LogFieldChainID, int(chain.ID)),
		slog.Int64(observability.LogFieldDuration, logger.DurationMs()),
	)
	return c.JSON(http.StatusOK, UploadConversationResponse{
		Message: "Conversation uploaded successfully",
		ChainID: chain.ID,
	})
}

// GetConversation fetches a single conversation by id.
// GET /api/conversations/:id
func (s *APIV1Service) GetConversation(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseChainID(c)
	if err != nil {
		return writeError(c, err)
	}

	chain, err := s.Store.GetChain(ctx, &store.FindChain{ID: &id})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to get chain", err))
	}
	if chain == nil {
		return writeError(c, apierrors.NotFound("Conversation not found"))
	}
	return c.JSON(http.StatusOK, convertChainToResponse(chain))
}

// ListConversations lists stored conversations with pagination.
// GET /api/conversations/?skip&limit
func (s *APIV1Service) ListConversations(c echo.Context) error {
	ctx := c.Request().Context()
	offset, limit, err := parsePagination(c)
	if err != nil {
		return writeError(c, err)
	}

	chains, err := s.Store.ListChains(ctx, &store.FindChain{Offset: offset, Limit: limit})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to list chains", err))
	}

	list := make([]*ChainResponse, 0, len(chains))
	for _, chain := range chains {
		list = append(list, convertChainToResponse(chain))
	}
	return c.JSON(http.StatusOK, list)
}

// ToggleBookmark flips the favorite flag of a conversation.
// POST /api/conversations/:id/bookmark
func (s *APIV1Service) ToggleBookmark(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseChainID(c)
	if err != nil {
		return writeError(c, err)
	}

	chain, err := s.Store.GetChain(ctx, &store.FindChain{ID: &id})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to get chain", err))
	}
	if chain == nil {
		return writeError(c, apierrors.NotFound("Conversation not found"))
	}

	isFavorite := !chain.IsFavorite
	updated, err := s.Store.UpdateChain(ctx, &store.UpdateChain{ID: id, IsFavorite: &isFavorite})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to update chain", err))
	}
	if updated == nil {
		// Deleted between the read and the update.
		return writeError(c, apierrors.NotFound("Conversation not found"))
	}
	return c.JSON(http.StatusOK, convertChainToResponse(updated))
}

// DeleteConversation removes a conversation.
// DELETE /api/conversations/:id
func (s *APIV1Service) DeleteConversation(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseChainID(c)
	if err != nil {
		return writeError(c, err)
	}

	chain, err := s.Store.GetChain(ctx, &store.FindChain{ID: &id})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to get chain", err))
	}
	if chain == nil {
		return writeError(c, apierrors.NotFound("Conversation not found"))
	}
	if err := s.Store.DeleteChain(ctx, &store.DeleteChain{ID: id}); err != nil {
		return writeError(c, apierrors.Internal("failed to delete chain", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
}

// ExportConversation returns the export view of a conversation.
// GET /api/conversations/:id/export
func (s *APIV1Service) ExportConversation(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseChainID(c)
	if err != nil {
		return writeError(c, err)
	}

	chain, err := s.Store.GetChain(ctx, &store.FindChain{ID: &id})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to get chain", err))
	}
	if chain == nil {
		return writeError(c, apierrors.NotFound("Conversation not found"))
	}

	return c.JSON(http.StatusOK, ExportConversationResponse{
		Title:        chain.Name,
		ExportDate:   time.Unix(chain.CreatedTs, 0).UTC().Format(time.RFC3339),
		Conversation: json.RawMessage(chain.Content),
	})
}
