package v1

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	apierrors "github.com/chainviz/chainviz/server/internal/errors"
	"github.com/chainviz/chainviz/store"
)

// headCloseMarker is where the conversation payload is spliced into the
// template. The insertion is a literal text splice, not HTML manipulation,
// so the rest of the document is served byte-for-byte.
const headCloseMarker = "</head>"

// RenderVisualizer serves the chat visualizer page for a conversation,
// with the conversation JSON injected into the document head.
// GET /visualizer/:id
func (s *APIV1Service) RenderVisualizer(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseChainID(c)
	if err != nil {
		return writeError(c, err)
	}

	template, err := os.ReadFile(s.Profile.VisualizerTemplate)
	if err != nil {
		if os.IsNotExist(err) {
			return writeError(c, apierrors.NotFound("Visualizer template not found"))
		}
		return writeError(c, apierrors.Internal("failed to read visualizer template", err))
	}

	chain, err := s.Store.GetChain(ctx, &store.FindChain{ID: &id})
	if err != nil {
		return writeError(c, apierrors.Internal("failed to get chain", err))
	}
	if chain == nil {
		return writeError(c, apierrors.NotFound("Conversation not found"))
	}

	injected := "<script>window.CONVERSATION_DATA = " + chain.Content + ";</script>"
	html := strings.Replace(string(template), headCloseMarker, injected+"\n"+headCloseMarker, 1)
	return c.HTML(http.StatusOK, html)
}
