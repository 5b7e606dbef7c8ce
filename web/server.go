// Package web exposes the analysis pipeline over HTTP: one multipart
// upload in, one JSON analysis out. The handlers hold no state across
// requests; concurrent uploads each get their own batch.
package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradepnl"
)

// Server wraps the HTTP front of the analyzer.
type Server struct {
	cfg    Config
	logger *zap.Logger
	http   *http.Server
}

// NewServer builds the gin router and the underlying http.Server.
func NewServer(cfg Config, logger *zap.Logger) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{cfg: cfg, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", s.handleHealth)
	r.POST("/api/analyze", s.handleAnalyze)

	s.http = &http.Server{
		Addr:         cfg.Listen,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Listen))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze accepts multipart CSV uploads under the "files" field plus
// an optional "threshold_hours" form value, runs the pipeline, and maps
// input errors to 400 and computation failures to 500.
func (s *Server) handleAnalyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files part in the request"})
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no selected files"})
		return
	}

	var tables []*tradepnl.Table
	for _, upload := range uploads {
		if !strings.HasSuffix(strings.ToLower(upload.Filename), ".csv") {
			continue
		}
		f, err := upload.Open()
		if err != nil {
			s.logger.Warn("cannot open upload", zap.String("file", upload.Filename), zap.Error(err))
			continue
		}
		table, err := tradepnl.ReadTable(upload.Filename, f)
		f.Close()
		if err != nil {
			// An unreadable file is skipped, not fatal to the batch.
			s.logger.Warn("cannot parse upload", zap.String("file", upload.Filename), zap.Error(err))
			continue
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no CSV files found"})
		return
	}

	opts := tradepnl.Options{
		ThresholdHours: s.cfg.ThresholdHours,
		Language:       s.cfg.Language,
	}
	if v := c.PostForm("threshold_hours"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			opts.ThresholdHours = hours
		}
	}
	if v := c.PostForm("lang"); v != "" {
		opts.Language = v
	}

	started := time.Now()
	analysis, err := tradepnl.Analyze(tables, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if tradepnl.IsInputError(err) {
			status = http.StatusBadRequest
		}
		s.logger.Info("analysis rejected",
			zap.Int("files", len(tables)),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("analysis complete",
		zap.Int("files", len(tables)),
		zap.String("instrument", analysis.Instrument.String()),
		zap.Int("trades", len(analysis.Trades)),
		zap.Duration("took", time.Since(started)),
	)
	c.JSON(http.StatusOK, analysis)
}
