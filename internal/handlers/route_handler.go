package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type RouteRequest struct {
	Source      uint `json:"source" binding:"required"`
	Destination uint `json:"destination" binding:"required"`
}

// RouteListResponse names the stations; RouteResponse nests them.
type RouteListResponse struct {
	ID          uint   `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type RouteResponse struct {
	ID          uint           `json:"id"`
	Source      models.Station `json:"source"`
	Destination models.Station `json:"destination"`
	Distance    int            `json:"distance"`
}

func newRouteListResponse(route *models.Route) RouteListResponse {
	return RouteListResponse{
		ID:          route.ID,
		Source:      route.Source.Name,
		Destination: route.Destination.Name,
		Distance:    route.Distance(),
	}
}

func newRouteResponse(route *models.Route) RouteResponse {
	return RouteResponse{
		ID:          route.ID,
		Source:      route.Source,
		Destination: route.Destination,
		Distance:    route.Distance(),
	}
}

func withStations(db *gorm.DB) *gorm.DB {
	return db.Preload("Source").Preload("Destination")
}

func validateRouteRequest(db *gorm.DB, req *RouteRequest) (map[string]string, error) {
	fields := map[string]string{}
	for field, id := range map[string]uint{"source": req.Source, "destination": req.Destination} {
		known, err := exists(db, &models.Station{}, 0, "id = ?", id)
		if err != nil {
			return nil, err
		}
		if !known {
			fields[field] = "Invalid pk - object does not exist."
		}
	}
	return fields, nil
}

func CreateRoute(c *gin.Context) {
	var req RouteRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	fields, err := validateRouteRequest(db, &req)
	if err != nil {
		respondStoreError(c, err, "validate route")
		return
	}
	if len(fields) > 0 {
		helpers.RespondWithValidationError(c, fields)
		return
	}

	route := models.Route{SourceID: req.Source, DestinationID: req.Destination}
	if err := db.Create(&route).Error; err != nil {
		respondStoreError(c, err, "create route")
		return
	}

	if err := withStations(db).First(&route, route.ID).Error; err != nil {
		respondStoreError(c, err, "retrieve route")
		return
	}

	c.JSON(http.StatusCreated, newRouteResponse(&route))
}

func ListRoutes(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	var routes []models.Route
	if err := withStations(db).Order("id").Find(&routes).Error; err != nil {
		respondStoreError(c, err, "retrieve routes")
		return
	}

	response := make([]RouteListResponse, 0, len(routes))
	for i := range routes {
		response = append(response, newRouteListResponse(&routes[i]))
	}

	c.JSON(http.StatusOK, response)
}

func GetRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var route models.Route
	if err := withStations(db).First(&route, id).Error; err != nil {
		respondStoreError(c, err, "retrieve route")
		return
	}

	c.JSON(http.StatusOK, newRouteResponse(&route))
}

func UpdateRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RouteRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var route models.Route
	if err := db.First(&route, id).Error; err != nil {
		respondStoreError(c, err, "find route")
		return
	}

	fields, err := validateRouteRequest(db, &req)
	if err != nil {
		respondStoreError(c, err, "validate route")
		return
	}
	if len(fields) > 0 {
		helpers.RespondWithValidationError(c, fields)
		return
	}

	err = db.Model(&route).Updates(map[string]interface{}{
		"source_id":      req.Source,
		"destination_id": req.Destination,
	}).Error
	if err != nil {
		respondStoreError(c, err, "update route")
		return
	}

	if err := withStations(db).First(&route, route.ID).Error; err != nil {
		respondStoreError(c, err, "retrieve route")
		return
	}

	c.JSON(http.StatusOK, newRouteResponse(&route))
}

func DeleteRoute(c *gin.Context) {
	deleteByID(c, &models.Route{}, "route")
}
