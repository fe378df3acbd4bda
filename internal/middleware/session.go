package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/models"
)

// Session keys.
const (
	sessionAuthKey  = "auth"
	sessionFlashKey = "flash"
)

// ContextAuthKey is the gin context key carrying the resolved AuthContext.
const ContextAuthKey = "authContext"

// LoginPath and ViewerPath are the redirect targets for the auth guards.
const (
	LoginPath  = "/login"
	ViewerPath = "/viewer"
)

// SetAuth stores the identity in the session after login.
func SetAuth(c *gin.Context, auth models.AuthContext) error {
	payload, err := json.Marshal(auth)
	if err != nil {
		return err
	}
	session := sessions.Default(c)
	session.Set(sessionAuthKey, string(payload))
	return session.Save()
}

// ClearAuth drops the session identity on logout.
func ClearAuth(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// AuthFromSession decodes the stored identity, if any.
func AuthFromSession(c *gin.Context) *models.AuthContext {
	session := sessions.Default(c)
	raw, ok := session.Get(sessionAuthKey).(string)
	if !ok || raw == "" {
		return nil
	}
	var auth models.AuthContext
	if err := json.Unmarshal([]byte(raw), &auth); err != nil {
		return nil
	}
	return &auth
}

// AddFlash queues a one-shot message for the next page load.
func AddFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, sessionFlashKey)
	_ = session.Save()
}

// Flashes pops and returns queued messages.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes(sessionFlashKey)
	if len(raw) > 0 {
		_ = session.Save()
	}
	messages := make([]string, 0, len(raw))
	for _, item := range raw {
		if msg, ok := item.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// SessionRequired guards authenticated routes. Anonymous requests get a
// flash and a redirect to the login page.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := AuthFromSession(c)
		if auth == nil {
			AddFlash(c, "Please log in to continue")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(ContextAuthKey, auth)
		c.Next()
	}
}

// AdminRequired guards staff routes. General users are sent to the public
// viewer instead.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextAuthKey)
		auth, ok := value.(*models.AuthContext)
		if !exists || !ok {
			AddFlash(c, "Please log in to continue")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if !auth.Role.Admin() {
			AddFlash(c, "That page is for staff accounts")
			c.Redirect(http.StatusFound, ViewerPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
