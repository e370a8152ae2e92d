package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Root GET /
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Boatrace API へようこそ"})
}

// Health GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
