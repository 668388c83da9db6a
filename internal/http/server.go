// README: HTTP server; registers routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alfredcrmn/hardware-kiosk/internal/http/handlers"
	"github.com/Alfredcrmn/hardware-kiosk/internal/http/middleware"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/assistant"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/session"
)

type ServerDeps struct {
	Assistant *assistant.Service
	Catalog   *catalog.Service
	Sessions  *session.Store
}

type Server struct {
	assistant *assistant.Service
	catalog   *catalog.Service
	sessions  *session.Store
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		assistant: deps.Assistant,
		catalog:   deps.Catalog,
		sessions:  deps.Sessions,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	chatHandler := handlers.NewChatHandler(s.assistant, s.sessions)
	r.POST("/api/kiosk/chat", chatHandler.Chat)
	r.GET("/api/kiosk/sessions/:id/history", chatHandler.History)

	catalogHandler := handlers.NewCatalogHandler(s.catalog)
	r.GET("/api/catalog/search", catalogHandler.Search)
	r.GET("/api/catalog/skus", catalogHandler.Lookup)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
