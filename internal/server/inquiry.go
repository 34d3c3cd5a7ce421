package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOutcome renders a rejection outcome page. Slugs are fixed and opaque;
// anything unknown is a plain 404.
func (s *Server) GetOutcome(c *gin.Context) {
	outcome, err := s.registry.ContextFor(c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":    c.Param("slug"),
		"message": outcome.Message,
	})
}

// GetSubmitted is the post-signup landing page. Requires a logged-in client;
// a confirmed client has finished onboarding and belongs on the homepage.
func (s *Server) GetSubmitted(c *gin.Context) {
	client := s.currentClient(c)
	if client == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if client.User != nil && client.User.EmailConfirmed {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	summary, err := s.inquirysvc.Summarize(c.Request.Context(), client.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friendly_id": client.FriendlyID,
		"tracking":    summary,
	})
}
