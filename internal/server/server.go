// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/usecase-scout/internal/pipeline"
	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/internal/store"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// SessionReader looks up saved sessions. *store.Store implements it.
type SessionReader interface {
	GetSession(ctx context.Context, id string) (types.Session, error)
	ListSessions(ctx context.Context, limit int) ([]types.Session, error)
	Datasets(ctx context.Context, sessionID string) (search.Output, error)
}

// New builds the router. st may be nil, in which case the session routes
// answer 503.
func New(p *pipeline.Pipeline, st SessionReader, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/use-cases", useCasesHandler(p))
		api.POST("/datasets", datasetsHandler(p, st))
		api.GET("/sessions", listSessionsHandler(st))
		api.GET("/sessions/:id", getSessionHandler(st))
	}
	return r
}

// requestLogger logs one line per request at info level, or warn for 5xx.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

var errNoStore = errors.New("session storage is disabled")

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type useCasesRequest struct {
	Industry string `json:"industry" binding:"max=500"`
	Trends   string `json:"trends" binding:"max=2000"`
}

// POST /api/use-cases
func useCasesHandler(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req useCasesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}

		sess, err := p.GenerateUseCases(c.Request.Context(), req.Industry, req.Trends)
		switch {
		case errors.Is(err, pipeline.ErrEmptyQuery):
			abortWithError(c, http.StatusBadRequest, err)
			return
		case err != nil:
			abortWithError(c, http.StatusBadGateway, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

type datasetsRequest struct {
	SessionID string   `json:"session_id"`
	UseCases  []string `json:"use_cases" binding:"max=10,dive,max=1000"`
}

// POST /api/datasets
func datasetsHandler(p *pipeline.Pipeline, st SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datasetsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}

		var sess types.Session
		switch {
		case req.SessionID != "":
			if st == nil {
				abortWithError(c, http.StatusServiceUnavailable, errNoStore)
				return
			}
			s, err := st.GetSession(c.Request.Context(), req.SessionID)
			if err != nil {
				abortWithError(c, lookupStatus(err), err)
				return
			}
			sess = s
		case len(req.UseCases) > 0:
			sess = pipeline.AdHocSession(req.UseCases)
		default:
			abortWithError(c, http.StatusBadRequest, errors.New("session_id or use_cases is required"))
			return
		}

		out, err := p.FetchDatasets(c.Request.Context(), sess)
		switch {
		case errors.Is(err, pipeline.ErrNoUseCases):
			abortWithError(c, http.StatusUnprocessableEntity, err)
			return
		case err != nil:
			abortWithError(c, http.StatusBadGateway, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type listQuery struct {
	Limit int `form:"limit" binding:"gte=0,lte=1000"`
}

// GET /api/sessions
func listSessionsHandler(st SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			abortWithError(c, http.StatusServiceUnavailable, errNoStore)
			return
		}
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		sessions, err := st.ListSessions(c.Request.Context(), q.Limit)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}

type sessionResponse struct {
	types.Session
	Datasets *search.Output `json:"datasets,omitempty"`
}

// GET /api/sessions/:id
func getSessionHandler(st SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			abortWithError(c, http.StatusServiceUnavailable, errNoStore)
			return
		}
		ctx := c.Request.Context()
		sess, err := st.GetSession(ctx, c.Param("id"))
		if err != nil {
			abortWithError(c, lookupStatus(err), err)
			return
		}

		resp := sessionResponse{Session: sess}
		out, err := st.Datasets(ctx, sess.ID)
		switch {
		case err == nil:
			resp.Datasets = &out
		case !errors.Is(err, store.ErrNotFound):
			abortWithError(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func lookupStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
