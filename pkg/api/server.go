// Package api serves SMF decoding over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Garik-/smf/pkg/midi"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultMaxBodySize = 16 << 20

type Server struct {
	engine  *gin.Engine
	log     *zap.Logger
	maxBody int64
}

func NewServer(log *zap.Logger) *Server {
	s := &Server{
		engine:  gin.New(),
		log:     log.Named("api"),
		maxBody: defaultMaxBodySize,
	}

	s.engine.Use(gin.Recovery(), s.logRequests())

	s.engine.GET("/health", healthCheck)

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/decode", s.handleDecode)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	return io.ReadAll(c.Request.Body)
}

func (s *Server) handleDecode(c *gin.Context) {
	buf, err := s.readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(buf) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty body"})
		return
	}

	f, err := midi.Parse(buf, midi.WithLogger(s.log))
	if err != nil {
		var e *midi.Error
		if errors.As(err, &e) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  e.Error(),
				"kind":   e.Kind.Error(),
				"offset": e.Offset,
				"track":  e.Track,
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, NewFileView(f, c.Query("events") == "true"))
}
