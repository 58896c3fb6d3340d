package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/chainviz/chainviz/server/internal/errors"
	"github.com/chainviz/chainviz/store"
)

// ChainResponse is the wire shape of a stored conversation record.
type ChainResponse struct {
	ID         int32           `json:"id"`
	Name       string          `json:"name"`
	Content    json.RawMessage `json:"content"`
	IsFavorite bool            `json:"is_favorite"`
}

func convertChainToResponse(chain *store.Chain) *ChainResponse {
	return &ChainResponse{
		ID:         chain.ID,
		Name:       chain.Name,
		Content:    json.RawMessage(chain.Content),
		IsFavorite: chain.IsFavorite,
	}
}

// writeError renders an error as a JSON body with a "detail" reason.
// Internal causes are never leaked to the caller.
func writeError(c echo.Context, err error) error {
	if apiErr, ok := err.(*apierrors.APIError); ok {
		return c.JSON(apiErr.HTTPStatus(), map[string]string{"detail": apiErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
}

func parseChainID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apierrors.InvalidArgument("Invalid id")
	}
	return int32(id), nil
}

// parsePagination reads skip/limit query parameters. Missing values fall
// back to the store defaults; malformed values are a validation failure.
func parsePagination(c echo.Context) (*int, *int, error) {
	var offset, limit *int
	if v := c.QueryParam("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, nil, apierrors.InvalidArgument("Invalid skip parameter")
		}
		offset = &n
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, nil, apierrors.InvalidArgument("Invalid limit parameter")
		}
		limit = &n
	}
	return offset, limit, nil
}
