package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether the database answers a ping within two seconds.
func HealthCheck(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Printf("health check: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"database":  "disconnected",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().UTC(),
	})
}
