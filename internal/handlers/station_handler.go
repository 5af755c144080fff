package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type StationRequest struct {
	Name      string   `json:"name" binding:"required,max=255"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

func checkStationName(c *gin.Context, req *StationRequest, id uint) bool {
	db, ok := getDB(c)
	if !ok {
		return false
	}

	taken, err := exists(db, &models.Station{}, id, "name = ?", req.Name)
	if err != nil {
		respondStoreError(c, err, "check station")
		return false
	}
	if taken {
		helpers.RespondWithValidationError(c, map[string]string{"name": "station with this name already exists."})
		return false
	}
	return true
}

func CreateStation(c *gin.Context) {
	var req StationRequest
	if !bindJSON(c, &req) || !checkStationName(c, &req, 0) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	station := models.Station{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
	if err := db.Create(&station).Error; err != nil {
		respondStoreError(c, err, "create station")
		return
	}

	c.JSON(http.StatusCreated, station)
}

func ListStations(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	stations := []models.Station{}
	if err := db.Order("name").Find(&stations).Error; err != nil {
		respondStoreError(c, err, "retrieve stations")
		return
	}

	c.JSON(http.StatusOK, stations)
}

func GetStation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var station models.Station
	if err := db.First(&station, id).Error; err != nil {
		respondStoreError(c, err, "retrieve station")
		return
	}

	c.JSON(http.StatusOK, station)
}

func UpdateStation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req StationRequest
	if !bindJSON(c, &req) || !checkStationName(c, &req, id) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var station models.Station
	if err := db.First(&station, id).Error; err != nil {
		respondStoreError(c, err, "find station")
		return
	}

	station.Name = req.Name
	station.Latitude = *req.Latitude
	station.Longitude = *req.Longitude

	if err := db.Save(&station).Error; err != nil {
		respondStoreError(c, err, "update station")
		return
	}

	c.JSON(http.StatusOK, station)
}

func DeleteStation(c *gin.Context) {
	deleteByID(c, &models.Station{}, "station")
}
