package middleware

import "github.com/gin-gonic/gin"

// userIDKey and companyIDKey hold the authenticated user's ID and company
// scope in the request context. Every scoped handler reads both.
const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(userIDKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok
}

// GetCompanyIDFromContext retrieves the authenticated user's company ID from
// the Gin context. It returns the company ID and a boolean indicating if it
// was found.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(companyIDKey)
	if val == nil {
		return "", false
	}
	companyID, ok := val.(string)
	return companyID, ok
}
