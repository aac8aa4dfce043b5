package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceVersion = "0.1.0"

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, db *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		database := "up"
		if db == nil || db.PingContext(c.Request.Context()) != nil {
			database = "down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"service":  "analytics-gate",
			"version":  serviceVersion,
			"database": database,
		})
	})
}
