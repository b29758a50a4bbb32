// Package api serves zone queries over HTTP.
package api

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngrash/go-zdump/internal/logging"
	"github.com/ngrash/go-zdump/zdump"
)

// QueryIDHeader carries the query identifier of a response.
const QueryIDHeader = "X-Query-ID"

// ZoneSource answers zone queries. *zoneinfo.Source implements it.
type ZoneSource interface {
	Query(ctx context.Context, name string, start, end int64) ([]zdump.Entry, error)
	Zones(ctx context.Context) ([]string, error)
}

// Server holds the zone source the handlers query. The source may be
// replaced while serving.
type Server struct {
	mu   sync.RWMutex
	src  ZoneSource
	opts []zdump.Option
}

// New returns a server querying src. opts apply to rule queries.
func New(src ZoneSource, opts ...zdump.Option) *Server {
	return &Server{src: src, opts: opts}
}

// SetSource replaces the zone source and the rule query options.
func (s *Server) SetSource(src ZoneSource, opts ...zdump.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src, s.opts = src, opts
}

func (s *Server) source() (ZoneSource, []zdump.Option) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src, s.opts
}

// Router returns the HTTP handler.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), queryID(), requestLog())

	v1 := r.Group("/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/zones", s.listZones)
		v1.GET("/zones/*name", s.queryZone) // ?start=&end=
		v1.GET("/rule", s.queryRule)        // ?tz=&start=&end=
	}
	return r
}

// queryID assigns every request an identifier, taken from the request
// header when present.
func queryID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(QueryIDHeader)
		if id == "" {
			id = logging.NewQueryID()
		}
		c.Header(QueryIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithQueryID(c.Request.Context(), id))
		c.Next()
	}
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.FromContext(c.Request.Context()).Info("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
