package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/career"
)

const formFileField = "file"

type errorResponse struct {
	Error string `json:"error"`
}

type recommendationsResponse struct {
	Recommendations career.Set `json:"recommendations"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) parse(c *gin.Context) {
	name, content, ok := s.readUpload(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.pipeline.ParseDocument(c.Request.Context(), name, content))
}

func (s *Server) recommend(c *gin.Context) {
	name, content, ok := s.readUpload(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.pipeline.Analyze(c.Request.Context(), name, content))
}

func (s *Server) analyze(c *gin.Context) {
	name, content, ok := s.readUpload(c)
	if !ok {
		return
	}

	analysis := s.pipeline.Analyze(c.Request.Context(), name, content)
	c.JSON(http.StatusOK, recommendationsResponse{Recommendations: analysis.Recommendations})
}

// readUpload reads the multipart "file" field. On failure it writes the error
// response and returns ok=false.
func (s *Server) readUpload(c *gin.Context) (name string, content []byte, ok bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	header, err := c.FormFile(formFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "file is too large")
			return "", nil, false
		}
		respondError(c, http.StatusBadRequest, "file is required")
		return "", nil, false
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read file")
		return "", nil, false
	}
	defer file.Close()

	content, err = io.ReadAll(file)
	if err != nil {
		s.logger.Warn("reading upload failed",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		respondError(c, http.StatusBadRequest, "unable to read file")
		return "", nil, false
	}

	return header.Filename, content, true
}
