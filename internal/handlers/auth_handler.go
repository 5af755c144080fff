package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db, ok := getDB(c)
	if !ok {
		return
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
		respondStoreError(c, err, "load user role")
		return
	}

	taken, err := exists(db, &models.User{}, 0, "email = ?", req.Email)
	if err != nil {
		respondStoreError(c, err, "check email")
		return
	}
	if taken {
		helpers.RespondWithValidationError(c, map[string]string{"email": "user with this email already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    role.ID,
	}

	if err := db.Omit("Role").Create(&user).Error; err != nil {
		respondStoreError(c, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a signed access token.
func Login(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		db, ok := getDB(c)
		if !ok {
			return
		}

		var user models.User
		err := db.Preload("Role").Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		if err != nil {
			respondStoreError(c, err, "load user")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}

		token, err := helpers.GenerateToken(secret, user.ID, user.Role.Name, ttl)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"role":  user.Role.Name,
			},
		})
	}
}
