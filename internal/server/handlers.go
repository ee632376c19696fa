package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizsmith/quizsmith/internal/completion"
	"github.com/quizsmith/quizsmith/internal/mathseg"
)

const unknownErrorMessage = "An unknown error occurred"

type errorBody struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, errorBody{Error: msg})
}

// completionHandler serves one completion task. Every failure answers 500
// with a public message; details stay in the log.
func (s *Server) completionHandler(task *completion.Task) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, "request body is too large")
				return
			}
			respondError(c, "could not read request body")
			return
		}

		result, err := s.runner.Run(c.Request.Context(), task, body)
		if err != nil {
			respondError(c, completion.PublicMessage(err))
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

type renderRequest struct {
	Text       *string `json:"text" binding:"required"`
	ErrorColor string  `json:"errorColor"`
}

type renderResponse struct {
	Fragments []mathseg.Fragment `json:"fragments"`
	HTML      string             `json:"html"`
}

func (s *Server) renderLatex(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "invalid request: text is required")
		return
	}
	color := req.ErrorColor
	if color == "" {
		color = s.cfg.ErrorColor
	}
	frags := mathseg.Render(*req.Text, s.renderer, color)
	c.JSON(http.StatusOK, renderResponse{
		Fragments: frags,
		HTML:      mathseg.HTML(frags, color),
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.cfg.Version})
}
