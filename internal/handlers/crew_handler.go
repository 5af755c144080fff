package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type CrewRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
}

func CreateCrew(c *gin.Context) {
	var req CrewRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	crew := models.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := db.Create(&crew).Error; err != nil {
		respondStoreError(c, err, "create crew member")
		return
	}

	c.JSON(http.StatusCreated, crew)
}

func ListCrews(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	crews := []models.Crew{}
	if err := db.Order("first_name").Find(&crews).Error; err != nil {
		respondStoreError(c, err, "retrieve crew")
		return
	}

	c.JSON(http.StatusOK, crews)
}

func GetCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var crew models.Crew
	if err := db.First(&crew, id).Error; err != nil {
		respondStoreError(c, err, "retrieve crew member")
		return
	}

	c.JSON(http.StatusOK, crew)
}

func UpdateCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CrewRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var crew models.Crew
	if err := db.First(&crew, id).Error; err != nil {
		respondStoreError(c, err, "find crew member")
		return
	}

	crew.FirstName = req.FirstName
	crew.LastName = req.LastName

	if err := db.Save(&crew).Error; err != nil {
		respondStoreError(c, err, "update crew member")
		return
	}

	c.JSON(http.StatusOK, crew)
}

func DeleteCrew(c *gin.Context) {
	deleteByID(c, &models.Crew{}, "crew member")
}
