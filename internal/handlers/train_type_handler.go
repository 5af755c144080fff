package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type TrainTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func checkTrainTypeName(c *gin.Context, req *TrainTypeRequest, id uint) bool {
	db, ok := getDB(c)
	if !ok {
		return false
	}

	taken, err := exists(db, &models.TrainType{}, id, "name = ?", req.Name)
	if err != nil {
		respondStoreError(c, err, "check train type")
		return false
	}
	if taken {
		helpers.RespondWithValidationError(c, map[string]string{"name": "train type with this name already exists."})
		return false
	}
	return true
}

func CreateTrainType(c *gin.Context) {
	var req TrainTypeRequest
	if !bindJSON(c, &req) || !checkTrainTypeName(c, &req, 0) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	trainType := models.TrainType{Name: req.Name}
	if err := db.Create(&trainType).Error; err != nil {
		respondStoreError(c, err, "create train type")
		return
	}

	c.JSON(http.StatusCreated, trainType)
}

func ListTrainTypes(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	trainTypes := []models.TrainType{}
	if err := db.Order("name").Find(&trainTypes).Error; err != nil {
		respondStoreError(c, err, "retrieve train types")
		return
	}

	c.JSON(http.StatusOK, trainTypes)
}

func GetTrainType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var trainType models.TrainType
	if err := db.First(&trainType, id).Error; err != nil {
		respondStoreError(c, err, "retrieve train type")
		return
	}

	c.JSON(http.StatusOK, trainType)
}

func UpdateTrainType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TrainTypeRequest
	if !bindJSON(c, &req) || !checkTrainTypeName(c, &req, id) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var trainType models.TrainType
	if err := db.First(&trainType, id).Error; err != nil {
		respondStoreError(c, err, "find train type")
		return
	}

	trainType.Name = req.Name

	if err := db.Save(&trainType).Error; err != nil {
		respondStoreError(c, err, "update train type")
		return
	}

	c.JSON(http.StatusOK, trainType)
}

func DeleteTrainType(c *gin.Context) {
	deleteByID(c, &models.TrainType{}, "train type")
}
