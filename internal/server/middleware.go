package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"go.uber.org/zap"
)

const (
	wizardCookieName = "_wiz"
	wizardCookieAge  = 24 * 60 * 60

	contextClientKey    = "client"
	contextRequestIDKey = "request_id"
)

// RequestID tags every request with an id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("request_id", c.GetString(contextRequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// WizardSession ensures every visitor has a wizard session cookie. The id is
// opaque; all state lives server-side keyed on it.
func (s *Server) WizardSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(wizardCookieName)
		if err != nil || strings.TrimSpace(sid) == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(wizardCookieName, sid, wizardCookieAge, "/", "", s.cfg.AuthCookieSecure, true)
		}
		c.Set("wizard_session_id", sid)
		c.Next()
	}
}

func wizardSessionID(c *gin.Context) string {
	return c.GetString("wizard_session_id")
}

// AuthRequired gates routes on a valid login session cookie.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		client, err := s.clientsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextClientKey, client)
		c.Next()
	}
}

// currentClient returns the authenticated client set by AuthRequired, or nil
// on public routes.
func (s *Server) currentClient(c *gin.Context) *clientdomain.Client {
	value, ok := c.Get(contextClientKey)
	if !ok {
		return nil
	}
	client, _ := value.(*clientdomain.Client)
	return client
}

// optionalClient resolves the login cookie without requiring it.
func (s *Server) optionalClient(c *gin.Context) *clientdomain.Client {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		return nil
	}
	client, err := s.clientsvc.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return client
}
