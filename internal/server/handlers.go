package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/lightbox"
	"go.seanlatimer.dev/folio/internal/querystate"
	"go.seanlatimer.dev/folio/internal/records"
	"go.seanlatimer.dev/folio/internal/search"
)

type Highlights struct {
	Title       []search.Segment `json:"title"`
	Description []search.Segment `json:"description"`
}

type SearchHit struct {
	Record     records.Record `json:"record"`
	Score      float64        `json:"score"`
	Highlights Highlights     `json:"highlights"`
}

type SearchResponse struct {
	Query   string      `json:"query"`
	Tags    []string    `json:"tags"`
	URL     string      `json:"url"`
	Results []SearchHit `json:"results"`
	Total   int         `json:"total"`
}

func (s *Server) kind(c *gin.Context) (content.Kind, bool) {
	kind, err := content.ParseKind(c.Query("kind"))
	if err != nil {
		badRequest(c, err.Error())
		return "", false
	}
	return kind, true
}

func (s *Server) listRecords(c *gin.Context) {
	kind, ok := s.kind(c)
	if !ok {
		return
	}
	recs := s.lib.Records(kind)
	c.JSON(http.StatusOK, gin.H{"records": recs, "total": len(recs)})
}

func (s *Server) getRecord(c *gin.Context) {
	rec, ok := s.lib.Lookup(c.Param("id"))
	if !ok {
		notFound(c, fmt.Sprintf("record %q not found", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) search(c *gin.Context) {
	kind, ok := s.kind(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	state := querystate.Decode(c.Request.URL.Query())
	results := s.opts.Engine.Search(s.lib.Records(kind), state.Query, state.Tags)
	total := len(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:   state.Query,
		Tags:    state.Tags,
		URL:     querystate.Encode(s.opts.BasePath, state),
		Results: Hits(results, state.Query),
		Total:   total,
	})
}

// Hits attaches highlight segments to each result.
func Hits(results []search.Result, query string) []SearchHit {
	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, SearchHit{
			Record: r.Record,
			Score:  r.Score,
			Highlights: Highlights{
				Title:       search.Highlight(r.Record.Title, query),
				Description: search.Highlight(r.Record.Description, query),
			},
		})
	}
	return hits
}

func (s *Server) listTags(c *gin.Context) {
	kind, ok := s.kind(c)
	if !ok {
		return
	}
	idx := search.BuildTagIndex(s.lib.Records(kind)).Restrict(s.lib.Allowed(kind))
	c.JSON(http.StatusOK, gin.H{"tags": idx.List()})
}

func (s *Server) listGallery(c *gin.Context) {
	images := s.gallery.Images()
	c.JSON(http.StatusOK, gin.H{"images": images, "total": len(images)})
}

func (s *Server) getGalleryImage(c *gin.Context) {
	h, err := lightbox.ParseHandle(c.Param("handle"))
	if err != nil {
		notFound(c, err.Error())
		return
	}
	view, err := s.gallery.Lookup(h)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}
