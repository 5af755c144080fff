package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type TrainRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	CargoNum      int    `json:"cargo_num" binding:"required,gt=0"`
	PlacesInCargo int    `json:"places_in_cargo" binding:"required,gt=0"`
	TrainType     uint   `json:"train_type" binding:"required"`
}

type TrainResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	CargoNum      int     `json:"cargo_num"`
	PlacesInCargo int     `json:"places_in_cargo"`
	TrainType     string  `json:"train_type"`
	Image         *string `json:"image"`
}

func newTrainResponse(train *models.Train) TrainResponse {
	return TrainResponse{
		ID:            train.ID,
		Name:          train.Name,
		CargoNum:      train.CargoNum,
		PlacesInCargo: train.PlacesInCargo,
		TrainType:     train.TrainType.Name,
		Image:         train.ImagePath,
	}
}

func validateTrainRequest(db *gorm.DB, req *TrainRequest, id uint) (map[string]string, error) {
	fields := map[string]string{}

	taken, err := exists(db, &models.Train{}, id, "name = ?", req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		fields["name"] = "train with this name already exists."
	}

	taken, err = exists(db, &models.Train{}, id, "cargo_num = ? AND places_in_cargo = ?", req.CargoNum, req.PlacesInCargo)
	if err != nil {
		return nil, err
	}
	if taken {
		fields["non_field_errors"] = "The fields cargo_num, places_in_cargo must make a unique set."
	}

	known, err := exists(db, &models.TrainType{}, 0, "id = ?", req.TrainType)
	if err != nil {
		return nil, err
	}
	if !known {
		fields["train_type"] = "Invalid pk - object does not exist."
	}

	return fields, nil
}

func CreateTrain(c *gin.Context) {
	var req TrainRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	fields, err := validateTrainRequest(db, &req, 0)
	if err != nil {
		respondStoreError(c, err, "validate train")
		return
	}
	if len(fields) > 0 {
		helpers.RespondWithValidationError(c, fields)
		return
	}

	train := models.Train{
		Name:          req.Name,
		CargoNum:      req.CargoNum,
		PlacesInCargo: req.PlacesInCargo,
		TrainTypeID:   req.TrainType,
	}
	if err := db.Create(&train).Error; err != nil {
		respondStoreError(c, err, "create train")
		return
	}

	if err := db.Preload("TrainType").First(&train, train.ID).Error; err != nil {
		respondStoreError(c, err, "retrieve train")
		return
	}

	c.JSON(http.StatusCreated, newTrainResponse(&train))
}

func ListTrains(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	var trains []models.Train
	if err := db.Preload("TrainType").Order("name").Find(&trains).Error; err != nil {
		respondStoreError(c, err, "retrieve trains")
		return
	}

	response := make([]TrainResponse, 0, len(trains))
	for i := range trains {
		response = append(response, newTrainResponse(&trains[i]))
	}

	c.JSON(http.StatusOK, response)
}

func GetTrain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var train models.Train
	if err := db.Preload("TrainType").First(&train, id).Error; err != nil {
		respondStoreError(c, err, "retrieve train")
		return
	}

	c.JSON(http.StatusOK, newTrainResponse(&train))
}

func UpdateTrain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TrainRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var train models.Train
	if err := db.First(&train, id).Error; err != nil {
		respondStoreError(c, err, "find train")
		return
	}

	fields, err := validateTrainRequest(db, &req, id)
	if err != nil {
		respondStoreError(c, err, "validate train")
		return
	}
	if len(fields) > 0 {
		helpers.RespondWithValidationError(c, fields)
		return
	}

	train.Name = req.Name
	train.CargoNum = req.CargoNum
	train.PlacesInCargo = req.PlacesInCargo
	train.TrainTypeID = req.TrainType

	if err := db.Omit("TrainType").Save(&train).Error; err != nil {
		respondStoreError(c, err, "update train")
		return
	}

	if err := db.Preload("TrainType").First(&train, train.ID).Error; err != nil {
		respondStoreError(c, err, "retrieve train")
		return
	}

	c.JSON(http.StatusOK, newTrainResponse(&train))
}

func DeleteTrain(c *gin.Context) {
	deleteByID(c, &models.Train{}, "train")
}

// UploadTrainImage stores a multipart "image" file and points the train at it.
func UploadTrainImage(config helpers.UploadConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		db, ok := getDB(c)
		if !ok {
			return
		}

		var train models.Train
		if err := db.First(&train, id).Error; err != nil {
			respondStoreError(c, err, "find train")
			return
		}

		imageFile, err := c.FormFile("image")
		if err != nil {
			helpers.RespondWithValidationError(c, map[string]string{"image": "No file was submitted."})
			return
		}

		imagePath, err := helpers.UploadFile(c, imageFile, "train_images", config)
		if err != nil {
			helpers.RespondWithValidationError(c, map[string]string{"image": err.Error()})
			return
		}

		var previous string
		if train.ImagePath != nil {
			previous = *train.ImagePath
		}
		if err := db.Model(&train).Update("image_path", imagePath).Error; err != nil {
			if delErr := helpers.DeleteFile(config, imagePath); delErr != nil {
				log.Printf("Error deleting orphaned image: %v", delErr)
			}
			respondStoreError(c, err, "update train image")
			return
		}

		if previous != "" {
			if err := helpers.DeleteFile(config, previous); err != nil {
				log.Printf("Error deleting old train image: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"id":    train.ID,
			"image": imagePath,
		})
	}
}
