package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"explorekit/internal/charts"
	"explorekit/internal/dataset"
	"explorekit/internal/explorer"
	"explorekit/internal/filter"
	"explorekit/internal/pager"
	"explorekit/internal/tabular"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// explorerError maps explorer failures to a status code.
func explorerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, explorer.ErrNoDataset):
		fail(c, http.StatusConflict, "upload a file first")
	case errors.Is(err, explorer.ErrUnknownVisualization):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, charts.ErrUnknownType):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		// Chart preconditions (missing numeric columns and so on) are
		// user-facing messages, not server faults.
		fail(c, http.StatusUnprocessableEntity, err.Error())
	}
}

// multipartOverhead leaves room for boundaries and the other form fields.
const multipartOverhead = 64 << 10

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

func (s *Server) handleUpload(c *gin.Context) {
	tooLarge := fmt.Sprintf("file exceeds %d bytes", s.cfg.Server.MaxUploadBytes)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxUploadBytes+multipartOverhead)
	file, err := c.FormFile("input_file")
	if err != nil {
		if isBodyTooLarge(err) {
			fail(c, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		fail(c, http.StatusBadRequest, "choose a CSV or Excel file")
		return
	}
	if file.Size > s.cfg.Server.MaxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, tooLarge)
		return
	}

	f, err := file.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "could not read upload")
		return
	}
	defer f.Close()

	table, err := tabular.Read(f, file.Filename, c.PostForm("sheet"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ds, err := table.Dataset()
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	st := state(c)
	st.Explorer.Load(filepath.Base(file.Filename), ds)
	s.logger.Info("dataset loaded", "session", st.ID, "file", file.Filename, "rows", ds.Len(), "columns", len(ds.Columns()))

	s.handleSummary(c)
}

func (s *Server) handleSummary(c *gin.Context) {
	sum, err := state(c).Explorer.Summary()
	if err != nil {
		explorerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dataset": sum, "kinds": dataset.Kinds()})
}

type kindRequest struct {
	Kind dataset.Kind `json:"kind"`
}

func (s *Server) handleSetKind(c *gin.Context) {
	var req kindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := state(c).Explorer.SetKind(c.Param("name"), req.Kind); err != nil {
		if errors.Is(err, explorer.ErrNoDataset) {
			explorerError(c, err)
			return
		}
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	s.handleSummary(c)
}

type dateRangeRequest struct {
	Column string `json:"column" binding:"required"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func (s *Server) handleDateRange(c *gin.Context) {
	var req dateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var start, end time.Time
	for _, p := range []struct {
		raw string
		dst *time.Time
	}{{req.Start, &start}, {req.End, &end}} {
		if p.raw == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, p.raw)
		if err != nil {
			fail(c, http.StatusBadRequest, fmt.Sprintf("dates must look like 2006-01-02, got %q", p.raw))
			return
		}
		*p.dst = t
	}

	if err := state(c).Explorer.SetDateRange(req.Column, start, end); err != nil {
		if errors.Is(err, explorer.ErrNoDataset) {
			explorerError(c, err)
			return
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.handleSummary(c)
}

func (s *Server) handleRows(c *gin.Context) {
	view, err := state(c).Explorer.View()
	if err != nil {
		explorerError(c, err)
		return
	}

	p := pager.New(view.Len())
	if k, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		p.Goto(k)
	}
	start, end := p.Bounds()
	rows := make([]map[string]any, 0, end-start)
	for r := start; r < end; r++ {
		rows = append(rows, view.Row(r))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "columns": view.Names(), "rows": rows, "page": p.Info()})
}

func (s *Server) handleExportDataset(c *gin.Context) {
	st := state(c)
	view, err := st.Explorer.View()
	if err != nil {
		explorerError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := tabular.WriteDataset(&buf, view, "Data"); err != nil {
		s.logger.Error("export dataset", "session", st.ID, "error", err)
		fail(c, http.StatusInternalServerError, "export failed")
		return
	}
	name := strings.TrimSuffix(st.Explorer.Source, filepath.Ext(st.Explorer.Source)) + "_filtered.xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleAddVisualization(c *gin.Context) {
	v := state(c).Explorer.AddVisualization()
	c.JSON(http.StatusCreated, gin.H{"ok": true, "visualization": v})
}

func (s *Server) handleListVisualizations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"visualizations": state(c).Explorer.Visualizations(),
		"chart_types":    charts.Types(),
		"operators":      filter.Operators(),
	})
}

type visualizationRequest struct {
	Filter filter.Spec   `json:"filter"`
	Chart  charts.Config `json:"chart"`
}

func (s *Server) handleUpdateVisualization(c *gin.Context) {
	var req visualizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	v, err := state(c).Explorer.UpdateVisualization(c.Param("id"), req.Filter, req.Chart)
	if err != nil {
		explorerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "visualization": v})
}

func (s *Server) handleChart(c *gin.Context) {
	chart, err := state(c).Explorer.Render(c.Param("id"))
	if err != nil {
		explorerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chart": chart})
}

func (s *Server) handleRemoveVisualization(c *gin.Context) {
	if err := state(c).Explorer.RemoveVisualization(c.Param("id")); err != nil {
		explorerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
