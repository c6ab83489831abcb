// Package server exposes the explorer and finder over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"explorekit/internal/config"
	"explorekit/internal/finder"
	"explorekit/internal/session"
)

const sessionName = "explorekit"

type Server struct {
	cfg    config.Config
	store  *session.Store
	finder *finder.Service
	logger *slog.Logger
}

func New(cfg config.Config, store *session.Store, finderSvc *finder.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, store: store, finder: finderSvc, logger: logger}
}

// Router builds the gin engine with every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.MaxMultipartMemory = s.cfg.Server.MaxUploadBytes

	// Setup Sessions
	cookies := cookie.NewStore([]byte(s.cfg.Server.SessionSecret))
	cookies.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(s.cfg.Server.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, cookies))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "sessions": s.store.Len()})
	})
	r.POST("/login", s.handleLogin)
	r.GET("/logout", s.handleLogout)

	// Protected Routes
	api := r.Group("/api")
	api.Use(s.authRequired(), s.withState())
	{
		api.POST("/dataset", s.handleUpload)
		api.GET("/dataset", s.handleSummary)
		api.PUT("/dataset/columns/:name/kind", s.handleSetKind)
		api.PUT("/dataset/date-range", s.handleDateRange)
		api.GET("/dataset/rows", s.handleRows)
		api.GET("/dataset/export", s.handleExportDataset)

		api.POST("/visualizations", s.handleAddVisualization)
		api.GET("/visualizations", s.handleListVisualizations)
		api.PUT("/visualizations/:id", s.handleUpdateVisualization)
		api.GET("/visualizations/:id/chart", s.handleChart)
		api.DELETE("/visualizations/:id", s.handleRemoveVisualization)

		api.POST("/finder/search", s.handleSearch)
		api.GET("/finder/places", s.handlePlaces)
		api.POST("/finder/next", s.handleNextPage)
		api.POST("/finder/prev", s.handlePrevPage)
		api.PUT("/finder/view-radius", s.handleViewRadius)
		api.GET("/finder/map", s.handleMap)
		api.GET("/finder/export", s.handleExportRanking)
	}

	return r
}

// Run serves on the configured address until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("server listening", "addr", s.cfg.Server.Addr, "auth", s.cfg.Auth.Enabled(), "provider", s.cfg.Finder.Provider)
	return s.Router().Run(s.cfg.Server.Addr)
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
}
