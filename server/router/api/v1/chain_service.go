package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/chainviz/chainviz/server/internal/errors"
	"github.com/chainviz/chainviz/store"
)

// CreateChainRequest is the direct-creation payload. Content is kept as an
// opaque JSON value, matching the stored record field-for-field.
type CreateChainRequest struct {
	Name       string          `json:"name"`
	Content    json.RawMessage `json:"content"`
	IsFavorite bool            `json:"is_favorite"`
}

// CreateChain creates a record from a structured request body.
// POST /chains/
func (s *APIV1Service) CreateChain(c echo.Context) error {
	ctx := c.Request().Context()

	request := &CreateChainRequest{}
	if err := c.Bind(request); err != nil {
		return writeError(c, apierrors.InvalidArgument("Invalid request body"))
	}
	if request.Name == "" {
		return writeError(c, apierrors.InvalidArgument("name is required"))
	}
	if len(request.Content) == 0 {
		return writeError(c, apierrors.InvalidArgument("content is required"))
	}

	chain, err := s.Store.CreateChain(ctx, &store.Chain{
		Name:       request.Name,
		Content:    string(request.Content),
		IsFavorite: request.IsFavorite,
	})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to create chain", err))
	}
	return c.JSON(http.StatusOK, convertChainToResponse(chain))
}

// ListChains lists records with pagination.
// GET /chains/?skip&limit
func (s *APIV1Service) ListChains(c echo.Context) error {
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

// GetChainByID fetches a record by id.
// GET /chains/:id
func (s *APIV1Service) GetChainByID(c echo.Context) error {
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
		return writeError(c, apierrors.NotFound("Chain not found"))
	}
	return c.JSON(http.StatusOK, convertChainToResponse(chain))
}

// UpdateFavoriteStatus sets the favorite flag to an explicit value.
// PUT /chains/:id/favorite?is_favorite=
func (s *APIV1Service) UpdateFavoriteStatus(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseChainID(c)
	if err != nil {
		return writeError(c, err)
	}

	isFavorite, err := strconv.ParseBool(c.QueryParam("is_favorite"))
	if err != nil {
		return writeError(c, apierrors.InvalidArgument("is_favorite must be a boolean"))
	}

	updated, err := s.Store.UpdateChain(ctx, &store.UpdateChain{ID: id, IsFavorite: &isFavorite})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to update chain", err))
	}
	if updated == nil {
		return writeError(c, apierrors.NotFound("Chain not found"))
	}
	return c.JSON(http.StatusOK, convertChainToResponse(updated))
}

// DeleteChainByID deletes a record and returns it as confirmation.
// DELETE /chains/:id
func (s *APIV1Service) DeleteChainByID(c echo.Context) error {
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
		return writeError(c, apierrors.NotFound("Chain not found"))
	}
	if err := s.Store.DeleteChain(ctx, &store.DeleteChain{ID: id}); err != nil {
		return writeError(c, apierrors.Internal("failed to delete chain", err))
	}
	return c.JSON(http.StatusOK, convertChainToResponse(chain))
}
