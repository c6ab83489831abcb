package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"explorekit/internal/finder"
	"explorekit/internal/geo"
	"explorekit/internal/tabular"
)

type searchRequest struct {
	Location string `json:"location" form:"location" binding:"required"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "enter a city, address, or landmark")
		return
	}

	st := state(c)
	err := s.finder.Search(c.Request.Context(), st.Finder, req.Location)

	var perr *finder.ProviderError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true, "listing": st.Finder.Listing()})
	case errors.Is(err, finder.ErrNoCandidates):
		c.JSON(http.StatusOK, gin.H{
			"ok":      false,
			"warning": "No food options found within the search radius. Try a different location.",
			"listing": st.Finder.Listing(),
		})
	case errors.As(err, &perr):
		fail(c, http.StatusBadGateway, perr.Error())
	case errors.Is(err, geo.ErrNotFound):
		fail(c, http.StatusNotFound, "location not found: "+req.Location)
	default:
		s.logger.Error("search failed", "session", st.ID, "query", req.Location, "error", err)
		fail(c, http.StatusBadGateway, "geocoding failed, try again later")
	}
}

func (s *Server) handlePlaces(c *gin.Context) {
	st := state(c).Finder
	if raw := c.Query("page"); raw != "" {
		if k, err := strconv.Atoi(raw); err == nil {
			st.Pager.Goto(k)
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "listing": st.Listing()})
}

func (s *Server) handleNextPage(c *gin.Context) {
	st := state(c).Finder
	st.Pager.Next()
	c.JSON(http.StatusOK, gin.H{"ok": true, "listing": st.Listing()})
}

func (s *Server) handlePrevPage(c *gin.Context) {
	st := state(c).Finder
	st.Pager.Prev()
	c.JSON(http.StatusOK, gin.H{"ok": true, "listing": st.Listing()})
}

type viewRadiusRequest struct {
	Meters float64 `json:"meters" form:"meters" binding:"required"`
}

// handleViewRadius only re-filters the cached candidates.
func (s *Server) handleViewRadius(c *gin.Context) {
	var req viewRadiusRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "meters is required")
		return
	}
	st := state(c).Finder
	st.SetViewRadius(req.Meters)
	s.respondMap(c, st)
}

func (s *Server) handleMap(c *gin.Context) {
	s.respondMap(c, state(c).Finder)
}

func (s *Server) respondMap(c *gin.Context, st *finder.State) {
	view, ok := st.Map()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"ok": false, "radius_m": st.ViewRadius, "error": "search for a location first"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "map": view})
}

func (s *Server) handleExportRanking(c *gin.Context) {
	st := state(c)
	if len(st.Finder.Ranked) == 0 {
		fail(c, http.StatusConflict, "nothing to export, search for a location first")
		return
	}

	var buf bytes.Buffer
	if err := tabular.WriteRanking(&buf, st.Finder.Ranked, "Places"); err != nil {
		s.logger.Error("export ranking", "session", st.ID, "error", err)
		fail(c, http.StatusInternalServerError, "export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="food_options.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
