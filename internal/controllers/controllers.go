package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user's id out of the gin context (set
// by the auth middleware). Aborts with 401 when missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		c.Abort()
		return "", false
	}
	return userID.(string), true
}
