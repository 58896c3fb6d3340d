package v1

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/chainviz/chainviz/internal/profile"
	"github.com/chainviz/chainviz/server/middleware"
	"github.com/chainviz/chainviz/store"
)

// allowedOrigins is the fixed allowlist of local development origins.
var allowedOrigins = []string{
	"http://localhost",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:8001",
	"http://127.0.0.1:8001",
}

// maxUploadBodySize bounds the multipart body accepted by the upload route.
const maxUploadBodySize = "32M"

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	rateLimiter *middleware.RateLimiter
	// uploadSemaphore limits concurrent upload parsing to bound memory usage
	uploadSemaphore *semaphore.Weighted
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:         profile,
		Store:           store,
		rateLimiter:     middleware.NewRateLimiter(10, 20),
		uploadSemaphore: semaphore.NewWeighted(3),
	}
}

// Register registers the conversation routes with the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	// CORS is registered on the instance so preflight requests are answered
	// before route matching.
	echoServer.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	g := echoServer.Group("")

	g.POST("/api/conversations/upload", s.UploadConversation, s.rateLimiter.Middleware(), echomw.BodyLimit(maxUploadBodySize))
	g.GET("/api/conversations/", s.ListConversations)
	g.GET("/api/conversations/:id", s.GetConversation)
	g.POST("/api/conversations/:id/bookmark", s.ToggleBookmark)
	g.DELETE("/api/conversations/:id", s.DeleteConversation)
	g.GET("/api/conversations/:id/export", s.ExportConversation)
	g.GET("/visualizer/:id", s.RenderVisualizer)

	// Legacy chain endpoints, kept for the original frontend.
	g.POST("/chains/", s.CreateChain)
	g.GET("/chains/", s.ListChains)
	g.GET("/chains/:id", s.GetChainByID)
	g.PUT("/chains/:id/favorite", s.UpdateFavoriteStatus)
	g.DELETE("/chains/:id", s.DeleteChainByID)
}
