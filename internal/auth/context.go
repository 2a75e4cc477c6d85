package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// SessionUID extracts the authenticated Firebase UID from the Gin context.
// This is set by RequireAuth; empty means anonymous.
func SessionUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// SessionEmail extracts the authenticated user's email, if the token carried
// one.
func SessionEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}
