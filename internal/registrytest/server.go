// Package registrytest provides an in-process template registry for tests.
//
// The fake registry implements the validator, publish, lookup, tag and removal
// endpoints for both job and pipeline templates, records every request it
// receives, and lets tests override the response of any single endpoint.
package registrytest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/logging"
)

// APIPrefix is the path prefix the fake registry serves under.
const APIPrefix = "/v4/"

// Request is a request observed by the fake registry.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          []byte
}

// Response is a canned response registered with Server.Respond.
type Response struct {
	Status int
	Body   interface{}
}

// Server is a fake template registry backed by in-memory maps.
type Server struct {
	// Server is the underlying test server; URL is the registry host.
	*httptest.Server

	// Token is the bearer token the registry accepts. Empty accepts any token.
	Token string

	logger *zap.Logger

	mu        sync.Mutex
	templates map[string]*storedTemplate
	requests  []Request
	overrides map[string][]Response
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires requests to carry the given bearer token.
func WithToken(token string) Option {
	return func(s *Server) {
		s.Token = token
	}
}

// WithLogger sets the logger used for request logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer starts a fake registry and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		logger:    zap.NewNop(),
		templates: make(map[string]*storedTemplate),
		overrides: make(map[string][]Response),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Server.Close)

	return s
}

// BaseURL returns the API root clients should be configured with.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// Respond queues a canned response for the next request matching method and
// escaped path (relative to the API root, e.g. "templates/template%2Ftest").
// Queued responses are used once each, in order.
func (s *Server) Respond(method, path string, status int, body interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := method + " " + APIPrefix + path
	s.overrides[key] = append(s.overrides[key], Response{Status: status, Body: body})
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// router builds the gin engine serving the registry API.
func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	// Template names may contain "/" and arrive as %2F
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(s.recordRequest())
	router.Use(s.authenticate())
	router.Use(s.cannedResponses())

	api := router.Group(APIPrefix)

	api.POST("/validator/template", s.handleValidate(kindJob))
	api.POST("/validator/pipelineTemplate", s.handleValidate(kindPipeline))
	api.POST("/templates", s.handlePublish(kindJob))
	api.POST("/pipelineTemplates", s.handlePublish(kindPipeline))

	jobs := api.Group("/templates/:name")
	jobs.GET("", s.handleListVersions(kindJob))
	jobs.GET("/:tag", s.handleResolveTag(kindJob))
	jobs.DELETE("", s.handleRemoveTemplate(kindJob))
	jobs.DELETE("/versions/:version", s.handleRemoveVersion(kindJob))
	jobs.PUT("/tags/:tag", s.handleTag(kindJob))
	jobs.DELETE("/tags/:tag", s.handleRemoveTag(kindJob))

	pipelines := api.Group("/pipeline/template/:namespace/:name")
	pipelines.GET("/versions", s.handleListVersions(kindPipeline))
	pipelines.GET("/:tag", s.handleResolveTag(kindPipeline))
	pipelines.DELETE("", s.handleRemoveTemplate(kindPipeline))
	pipelines.DELETE("/versions/:version", s.handleRemoveVersion(kindPipeline))
	pipelines.PUT("/tags/:tag", s.handleTag(kindPipeline))
	pipelines.DELETE("/tags/:tag", s.handleRemoveTag(kindPipeline))

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route not found")
	})

	return router
}

// requestLogger logs every request with the client's request ID.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()

		s.logger.Debug("registry request",
			zap.String(logging.FieldRequestID, requestID),
			zap.String(logging.FieldMethod, c.Request.Method),
			zap.String(logging.FieldPath, c.Request.URL.EscapedPath()),
			zap.Int(logging.FieldStatusCode, c.Writer.Status()),
			zap.Int64(logging.FieldDuration, time.Since(start).Milliseconds()))
	}
}

// recordRequest stores the request and restores its body for handlers.
func (s *Server) recordRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        c.Request.Method,
			Path:          c.Request.URL.EscapedPath(),
			Authorization: c.GetHeader("Authorization"),
			RequestID:     c.GetHeader("X-Request-ID"),
			Body:          body,
		})
		s.mu.Unlock()

		c.Next()
	}
}

// authenticate rejects requests whose bearer token does not match Token.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Token != "" && c.GetHeader("Authorization") != "Bearer "+s.Token {
			respondError(c, http.StatusUnauthorized, "Missing authentication")
			c.Abort()
			return
		}
		c.Next()
	}
}

// cannedResponses serves responses queued with Respond.
func (s *Server) cannedResponses() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.Request.URL.EscapedPath()

		s.mu.Lock()
		queue := s.overrides[key]
		var canned *Response
		if len(queue) > 0 {
			canned = &queue[0]
			s.overrides[key] = queue[1:]
		}
		s.mu.Unlock()

		if canned == nil {
			c.Next()
			return
		}

		if canned.Body == nil {
			c.Status(canned.Status)
		} else {
			c.JSON(canned.Status, canned.Body)
		}
		c.Abort()
	}
}
