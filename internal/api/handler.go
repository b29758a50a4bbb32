package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngrash/go-zdump/internal/logging"
	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/zdump"
)

// QueryResponse is the body of zone and rule queries.
type QueryResponse struct {
	QueryID string        `json:"query_id"`
	Zone    string        `json:"zone,omitempty"`
	Rule    string        `json:"rule,omitempty"`
	Entries []zdump.Entry `json:"entries"`
	// Error is set when the query failed. Entries may still hold a
	// partial result when the rule string of the zone is malformed.
	Error string `json:"error,omitempty"`
	Code  int    `json:"code"`
}

// ZonesResponse is the body of the zone list.
type ZonesResponse struct {
	Zones []string `json:"zones"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listZones(c *gin.Context) {
	src, _ := s.source()
	zones, err := src.Zones(c.Request.Context())
	if err != nil {
		c.JSON(status(err), gin.H{"error": err.Error(), "code": zdump.Code(err)})
		return
	}
	if zones == nil {
		zones = []string{}
	}
	c.JSON(http.StatusOK, ZonesResponse{Zones: zones})
}

func (s *Server) queryZone(c *gin.Context) {
	ctx := c.Request.Context()
	resp := QueryResponse{
		QueryID: logging.QueryID(ctx),
		Zone:    strings.TrimPrefix(c.Param("name"), "/"),
	}
	start, end, err := interval(c)
	if err != nil {
		s.fail(c, resp, err)
		return
	}
	src, _ := s.source()
	resp.Entries, err = src.Query(ctx, resp.Zone, start, end)
	s.respond(c, resp, err)
}

func (s *Server) queryRule(c *gin.Context) {
	ctx := c.Request.Context()
	resp := QueryResponse{
		QueryID: logging.QueryID(ctx),
		Rule:    c.Query("tz"),
	}
	start, end, err := interval(c)
	if err != nil {
		s.fail(c, resp, err)
		return
	}
	rule, err := posixtz.Parse(resp.Rule)
	if err != nil {
		s.fail(c, resp, err)
		return
	}
	_, opts := s.source()
	resp.Entries, err = zdump.QueryRule(rule, start, end, opts...)
	s.respond(c, resp, err)
}

func (s *Server) respond(c *gin.Context, resp QueryResponse, err error) {
	var re *posixtz.RuleError
	if err != nil && (len(resp.Entries) == 0 || !errors.As(err, &re)) {
		s.fail(c, resp, err)
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("partial result", "zone", resp.Zone, "error", err)
		resp.Error = err.Error()
		resp.Code = zdump.Code(err)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) fail(c *gin.Context, resp QueryResponse, err error) {
	resp.Entries = []zdump.Entry{}
	resp.Error = err.Error()
	resp.Code = zdump.Code(err)
	c.JSON(status(err), resp)
}

// status maps an error to an HTTP status code.
func status(err error) int {
	var ie *intervalError
	if errors.As(err, &ie) {
		return http.StatusBadRequest
	}
	switch zdump.Code(err) {
	case zdump.CodeBadValues, zdump.CodeRule:
		return http.StatusBadRequest
	case zdump.CodeOpen:
		return http.StatusNotFound
	case zdump.CodeHeader, zdump.CodeAlloc:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type intervalError struct {
	param string
	err   error
}

func (e *intervalError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.param, e.err)
}

func (e *intervalError) Unwrap() error { return e.err }

// interval reads the start and end query parameters. Instants are given
// in seconds since the epoch or as RFC 3339 timestamps.
func interval(c *gin.Context) (start, end int64, err error) {
	if start, err = instant(c, "start"); err != nil {
		return 0, 0, err
	}
	if end, err = instant(c, "end"); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func instant(c *gin.Context, param string) (int64, error) {
	v, ok := c.GetQuery(param)
	if !ok || v == "" {
		return 0, &intervalError{param, errors.New("missing")}
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return 0, &intervalError{param, fmt.Errorf("%q is neither seconds nor RFC 3339", v)}
	}
	return t.Unix(), nil
}
