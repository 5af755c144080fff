package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrey1104/train-station-api-service/internal/middleware"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

func GetProfile(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	db, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.Preload("Role").Where("id = ?", principal.UserID).First(&user).Error; err != nil {
		respondStoreError(c, err, "retrieve user")
		return
	}

	var orders int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orders).Error; err != nil {
		respondStoreError(c, err, "count orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"is_staff":    user.IsAdmin(),
		"date_joined": user.CreatedAt.UTC(),
		"order_count": orders,
	})
}
