package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sheetmerge/core"
)

// Server exposes the merge operation over HTTP.
type Server struct {
	router       *gin.Engine
	templatePath string
	sheet        string
}

// New creates a server that merges into the template at templatePath.
// sheet is the default target sheet when a request does not name one.
// The gin mode is left to the caller.
func New(templatePath, sheet string) *Server {
	s := &Server{
		router:       gin.New(),
		templatePath: templatePath,
		sheet:        sheet,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/merge", s.Merge)
		api.POST("/resolve", s.Resolve)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr.
func (s *Server) Run(addr string) error {
	slog.Info("Starting HTTP server", "addr", addr, "template", s.templatePath)
	return s.router.Run(addr)
}

type mergeRequest struct {
	Sheet string           `json:"sheet"`
	Cells []core.LabelCell `json:"cells"`
	Items []core.ValueItem `json:"items"`
}

type resolveRequest struct {
	Cells []core.LabelCell `json:"cells"`
	Items []core.ValueItem `json:"items"`
}

// Merge writes the posted values into a fresh copy of the template and
// returns the workbook.
func (s *Server) Merge(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sheet := req.Sheet
	if sheet == "" {
		sheet = s.sheet
	}

	f, err := core.OpenExcelFile(s.templatePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	sink := &core.BufferSink{}
	res, err := core.NewMerger(sink).Merge(&core.MergePayload{
		Workbook: f,
		Sheet:    sheet,
		Cells:    req.Cells,
		Items:    req.Items,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Merge-Run", res.RunID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "merged-"+res.RunID+".xlsx"))
	c.Data(http.StatusOK, core.XLSXContentType, sink.Bytes())
}

// Resolve runs the pure address resolution and returns the target cells.
func (s *Server) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	targets, err := core.Resolve(req.Cells, req.Items)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAnchorNotFound), errors.Is(err, core.ErrAnchorAmbiguous):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
