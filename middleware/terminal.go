package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TerminalHeader = "X-Terminal-ID"
	TerminalCookie = "terminal_id"
	terminalKey    = "terminalID"

	terminalCookieMaxAge = 365 * 24 * 60 * 60
	maxTerminalIDLength  = 64
)

// Terminal identifies the front-desk terminal of a request. The header wins over the cookie;
// a terminal with neither gets a fresh id in a cookie.
func Terminal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cleanTerminalID(c.GetHeader(TerminalHeader))
		if id == "" {
			if v, err := c.Cookie(TerminalCookie); err == nil {
				id = cleanTerminalID(v)
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(TerminalCookie, id, terminalCookieMaxAge, "/", "", false, true)
		}
		c.Set(terminalKey, id)
		c.Header(TerminalHeader, id)
		c.Next()
	}
}

// TerminalID is the id stored by Terminal.
func TerminalID(c *gin.Context) string {
	return c.GetString(terminalKey)
}

func cleanTerminalID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxTerminalIDLength {
		return ""
	}
	for _, r := range id {
		ok := r == '-' || r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return ""
		}
	}
	return id
}
