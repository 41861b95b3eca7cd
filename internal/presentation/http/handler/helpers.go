package handler

import (
	"github.com/gin-gonic/gin"
)

// GetUsername extracts the authenticated username from the Gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	return username.(string)
}

// GetRole extracts the authenticated role from the Gin context
func GetRole(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the authenticated account has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == "admin"
}
