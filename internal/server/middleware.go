package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"explorekit/internal/session"
)

const (
	userKey  = "user"
	stateKey = "sid"
	ctxState = "explorekit.state"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// authRequired rejects requests without a logged-in session when a login
// is configured.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.cfg.Auth.Enabled() {
			c.Next()
			return
		}
		if sessions.Default(c).Get(userKey) == nil {
			fail(c, http.StatusUnauthorized, "login required")
			return
		}
		c.Next()
	}
}

// withState attaches the caller's session state and holds its lock for the
// rest of the request.
func (s *Server) withState() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(stateKey).(string)

		st, created := s.store.Obtain(id)
		if created {
			sess.Set(stateKey, st.ID)
			if err := sess.Save(); err != nil {
				s.logger.Error("save session", "error", err)
				fail(c, http.StatusInternalServerError, "could not start session")
				return
			}
		}

		st.Mu.Lock()
		defer st.Mu.Unlock()
		c.Set(ctxState, st)
		c.Next()
	}
}

func state(c *gin.Context) *session.State {
	return c.MustGet(ctxState).(*session.State)
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	if !s.cfg.Auth.Enabled() {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid login request")
		return
	}

	if req.Username != s.cfg.Auth.Username ||
		bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("failed login", "username", req.Username, "ip", c.ClientIP())
		fail(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	sess := sessions.Default(c)
	sess.Set(userKey, req.Username)
	if err := sess.Save(); err != nil {
		fail(c, http.StatusInternalServerError, "could not save session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleLogout(c *gin.Context) {
	sess := sessions.Default(c)
	if id, ok := sess.Get(stateKey).(string); ok {
		s.store.Delete(id)
	}
	sess.Clear()
	if err := sess.Save(); err != nil {
		fail(c, http.StatusInternalServerError, "could not save session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
