package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the process and its two backing stores.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		redisStatus := "up"

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "down"
			status = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "down"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"redis":    redisStatus,
		})
	}
}
