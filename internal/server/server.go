// Package server exposes portfolio search over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/lightbox"
	"go.seanlatimer.dev/folio/internal/search"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	// BasePath is the page path used when encoding search URLs.
	BasePath string
	Engine   search.Engine
	// AllowedTags overrides the per-kind tag allow-lists when set.
	AllowedTags []string
}

type Server struct {
	lib     content.Library
	opts    Options
	gallery *lightbox.Arena
}

// New registers the library's images in a fresh gallery.
func New(lib content.Library, opts Options) *Server {
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if opts.Engine.Threshold == 0 {
		opts.Engine = search.NewEngine(search.DefaultThreshold)
	}
	if len(opts.AllowedTags) > 0 {
		lib.TagOverride = opts.AllowedTags
	}
	gallery := lightbox.New()
	for _, img := range lib.Images() {
		gallery.Register(lightbox.Image{Src: img.Src, Alt: img.Alt})
	}
	return &Server{lib: lib, opts: opts, gallery: gallery}
}

func (s *Server) Gallery() *lightbox.Arena {
	return s.gallery
}

// Handler builds the gin engine with every route.
func (s *Server) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	{
		api.GET("/records", s.listRecords)
		api.GET("/records/:id", s.getRecord)
		api.GET("/search", s.search)
		api.GET("/tags", s.listTags)

		gallery := api.Group("/gallery")
		{
			gallery.GET("", s.listGallery)
			gallery.GET("/:handle", s.getGalleryImage)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an ID, echoing a client-supplied
// one, and logs it once the handler returns.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
		log.WithFields(log.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
		}).Debug("request")
	}
}
