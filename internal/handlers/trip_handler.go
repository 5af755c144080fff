package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/booking"
	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type TripRequest struct {
	Route         uint      `json:"route" binding:"required"`
	Train         uint      `json:"train" binding:"required"`
	Crew          []uint    `json:"crew"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}

type TripListResponse struct {
	ID               uint      `json:"id"`
	Train            string    `json:"train"`
	Route            string    `json:"route"`
	Distance         int       `json:"distance"`
	TicketsAvailable int       `json:"tickets_available"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
}

type Seat struct {
	Cargo int `json:"cargo"`
	Seat  int `json:"seat"`
}

type TripResponse struct {
	ID            uint              `json:"id"`
	Train         TrainResponse     `json:"train"`
	Route         RouteListResponse `json:"route"`
	Crew          []models.Crew     `json:"crew"`
	TakenPlaces   []Seat            `json:"taken_places"`
	DepartureTime time.Time         `json:"departure_time"`
	ArrivalTime   time.Time         `json:"arrival_time"`
}

func newTripListResponse(item *booking.TripAvailability) TripListResponse {
	return TripListResponse{
		ID:               item.Trip.ID,
		Train:            item.Trip.Train.Name,
		Route:            item.Trip.Route.String(),
		Distance:         item.Trip.Route.Distance(),
		TicketsAvailable: item.TicketsAvailable,
		DepartureTime:    item.Trip.DepartureTime.UTC(),
		ArrivalTime:      item.Trip.ArrivalTime.UTC(),
	}
}

func newTripResponse(trip *models.Trip) TripResponse {
	crew := trip.Crews
	if crew == nil {
		crew = []models.Crew{}
	}

	taken := make([]Seat, 0, len(trip.Tickets))
	for _, ticket := range trip.Tickets {
		taken = append(taken, Seat{Cargo: ticket.Cargo, Seat: ticket.Seat})
	}

	return TripResponse{
		ID:            trip.ID,
		Train:         newTrainResponse(&trip.Train),
		Route:         newRouteListResponse(&trip.Route),
		Crew:          crew,
		TakenPlaces:   taken,
		DepartureTime: trip.DepartureTime.UTC(),
		ArrivalTime:   trip.ArrivalTime.UTC(),
	}
}

func loadTripDetail(db *gorm.DB, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := db.
		Preload("Train.TrainType").
		Preload("Route.Source").
		Preload("Route.Destination").
		Preload("Crews", func(db *gorm.DB) *gorm.DB {
			return db.Order("crews.first_name")
		}).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("tickets.cargo, tickets.seat")
		}).
		First(&trip, id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// validateTripRequest checks the references and returns the crew to attach.
func validateTripRequest(db *gorm.DB, req *TripRequest) ([]models.Crew, map[string]string, error) {
	fields := map[string]string{}

	known, err := exists(db, &models.Route{}, 0, "id = ?", req.Route)
	if err != nil {
		return nil, nil, err
	}
	if !known {
		fields["route"] = "Invalid pk - object does not exist."
	}

	known, err = exists(db, &models.Train{}, 0, "id = ?", req.Train)
	if err != nil {
		return nil, nil, err
	}
	if !known {
		fields["train"] = "Invalid pk - object does not exist."
	}

	var crews []models.Crew
	if len(req.Crew) > 0 {
		if err := db.Where("id IN ?", req.Crew).Find(&crews).Error; err != nil {
			return nil, nil, err
		}
		found := make(map[uint]bool, len(crews))
		for _, crew := range crews {
			found[crew.ID] = true
		}
		for _, id := range req.Crew {
			if !found[id] {
				fields["crew"] = "Invalid pk - object does not exist."
				break
			}
		}
	}

	return crews, fields, nil
}

func CreateTrip(c *gin.Context) {
	var req TripRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	crews, fields, err := validateTripRequest(db, &req)
	if err != nil {
		respondStoreError(c, err, "validate trip")
		return
	}
	if len(fields) > 0 {
		helpers.RespondWithValidationError(c, fields)
		return
	}

	trip := models.Trip{
		RouteID:       req.Route,
		TrainID:       req.Train,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		Crews:         crews,
	}
	if err := db.Omit("Route", "Train").Create(&trip).Error; err != nil {
		respondStoreError(c, err, "create trip")
		return
	}

	created, err := loadTripDetail(db, trip.ID)
	if err != nil {
		respondStoreError(c, err, "retrieve trip")
		return
	}

	c.JSON(http.StatusCreated, newTripResponse(created))
}

// ListTrips accepts the optional "date" (YYYY-MM-DD) and "route" filters.
func ListTrips(c *gin.Context) {
	filter, err := booking.ParseTripFilter(c.Query("date"), c.Query("route"))
	if err != nil {
		respondStoreError(c, err, "parse trip filter")
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	trips, err := booking.ListTrips(db, filter)
	if err != nil {
		respondStoreError(c, err, "retrieve trips")
		return
	}

	response := make([]TripListResponse, 0, len(trips))
	for i := range trips {
		response = append(response, newTripListResponse(&trips[i]))
	}

	c.JSON(http.StatusOK, response)
}

func GetTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	trip, err := loadTripDetail(db, id)
	if err != nil {
		respondStoreError(c, err, "retrieve trip")
		return
	}

	c.JSON(http.StatusOK, newTripResponse(trip))
}

func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TripRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := db.First(&trip, id).Error; err != nil {
		respondStoreError(c, err, "find trip")
		return
	}

	crews, fields, err := validateTripRequest(db, &req)
	if err != nil {
		respondStoreError(c, err, "validate trip")
		return
	}
	if len(fields) > 0 {
		helpers.RespondWithValidationError(c, fields)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&trip).Updates(map[string]interface{}{
			"route_id":       req.Route,
			"train_id":       req.Train,
			"departure_time": req.DepartureTime.UTC(),
			"arrival_time":   req.ArrivalTime.UTC(),
		}).Error
		if err != nil {
			return err
		}

		crewAssoc := tx.Model(&trip).Association("Crews")
		if len(crews) == 0 {
			return crewAssoc.Clear()
		}
		return crewAssoc.Replace(crews)
	})
	if err != nil {
		respondStoreError(c, err, "update trip")
		return
	}

	updated, err := loadTripDetail(db, trip.ID)
	if err != nil {
		respondStoreError(c, err, "retrieve trip")
		return
	}

	c.JSON(http.StatusOK, newTripResponse(updated))
}

func DeleteTrip(c *gin.Context) {
	deleteByID(c, &models.Trip{}, "trip")
}
