package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// isAdminKey stores the authenticated user's privilege flag.
const isAdminKey = contextKey("isAdmin")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return 0, false
	}

	userID, ok := userIDVal.(int64)
	if !ok {
		// This should not happen if the auth middleware sets it correctly.
		return 0, false
	}

	return userID, true
}

// GetIsAdminFromContext reports whether the authenticated caller is privileged.
// Absent value means not privileged.
func GetIsAdminFromContext(c *gin.Context) bool {
	isAdmin, ok := c.Request.Context().Value(isAdminKey).(bool)
	return ok && isAdmin
}
