package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version reported by the welcome endpoint.
const Version = "1.0.0"

// Welcome is the unauthenticated liveness endpoint.
func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Selamat datang ke 'Biar Kami Masak API'!",
		"version":     Version,
		"client_host": c.ClientIP(),
	})
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
