package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/booking"
	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/middleware"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

type CreateOrderRequest struct {
	Tickets []booking.TicketSpec `json:"tickets" binding:"dive"`
}

type TicketResponse struct {
	ID    uint `json:"id"`
	Cargo int  `json:"cargo"`
	Seat  int  `json:"seat"`
	Trip  uint `json:"trip"`
}

type OrderResponse struct {
	ID        uint             `json:"id"`
	Tickets   []TicketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

// OrderTripResponse describes the trip a listed ticket belongs to.
type OrderTripResponse struct {
	ID            uint              `json:"id"`
	Train         TrainResponse     `json:"train"`
	Route         RouteListResponse `json:"route"`
	DepartureTime time.Time         `json:"departure_time"`
	ArrivalTime   time.Time         `json:"arrival_time"`
}

type OrderTicketResponse struct {
	ID    uint              `json:"id"`
	Cargo int               `json:"cargo"`
	Seat  int               `json:"seat"`
	Trip  OrderTripResponse `json:"trip"`
}

type OrderListItem struct {
	ID        uint                  `json:"id"`
	Tickets   []OrderTicketResponse `json:"tickets"`
	CreatedAt time.Time             `json:"created_at"`
}

func newOrderResponse(order *models.Order) OrderResponse {
	tickets := make([]TicketResponse, 0, len(order.Tickets))
	for _, ticket := range order.Tickets {
		tickets = append(tickets, TicketResponse{
			ID:    ticket.ID,
			Cargo: ticket.Cargo,
			Seat:  ticket.Seat,
			Trip:  ticket.TripID,
		})
	}
	return OrderResponse{ID: order.ID, Tickets: tickets, CreatedAt: order.CreatedAt.UTC()}
}

func newOrderListItem(order *models.Order) OrderListItem {
	tickets := make([]OrderTicketResponse, 0, len(order.Tickets))
	for i := range order.Tickets {
		ticket := &order.Tickets[i]
		tickets = append(tickets, OrderTicketResponse{
			ID:    ticket.ID,
			Cargo: ticket.Cargo,
			Seat:  ticket.Seat,
			Trip: OrderTripResponse{
				ID:            ticket.Trip.ID,
				Train:         newTrainResponse(&ticket.Trip.Train),
				Route:         newRouteListResponse(&ticket.Trip.Route),
				DepartureTime: ticket.Trip.DepartureTime.UTC(),
				ArrivalTime:   ticket.Trip.ArrivalTime.UTC(),
			},
		})
	}
	return OrderListItem{ID: order.ID, Tickets: tickets, CreatedAt: order.CreatedAt.UTC()}
}

func withOrderTickets(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("tickets.cargo, tickets.seat")
		}).
		Preload("Tickets.Trip.Train.TrainType").
		Preload("Tickets.Trip.Route.Source").
		Preload("Tickets.Trip.Route.Destination")
}

// CreateOrder books every requested seat for the caller or none of them.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(c)
	order, err := booking.CreateOrder(db, principal.UserID, req.Tickets)
	if err != nil {
		respondStoreError(c, err, "create order")
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(order))
}

// ListOrders returns the caller's orders, newest first, one page at a time.
func ListOrders(c *gin.Context) {
	db, ok := getDB(c)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(c)
	pagination := helpers.GetPagination(c.Query("page"), c.Query("page_size"))

	var total int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", principal.UserID).Count(&total).Error; err != nil {
		respondStoreError(c, err, "count orders")
		return
	}

	var orders []models.Order
	err := withOrderTickets(db).
		Where("user_id = ?", principal.UserID).
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset).
		Limit(pagination.PageSize).
		Find(&orders).Error
	if err != nil {
		respondStoreError(c, err, "retrieve orders")
		return
	}

	items := make([]OrderListItem, 0, len(orders))
	for i := range orders {
		items = append(items, newOrderListItem(&orders[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      items,
		"total":       total,
		"page":        pagination.Page,
		"page_size":   pagination.PageSize,
		"total_pages": pagination.TotalPages(total),
	})
}

// GetOrder answers 404 for orders that belong to someone else.
func GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(c)

	var order models.Order
	err := withOrderTickets(db).
		Where("user_id = ?", principal.UserID).
		First(&order, id).Error
	if err != nil {
		respondStoreError(c, err, "retrieve order")
		return
	}

	c.JSON(http.StatusOK, newOrderListItem(&order))
}

// DeleteOrder cancels one of the caller's orders together with its tickets.
func DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(c)
	result := db.Where("user_id = ?", principal.UserID).Delete(&models.Order{}, id)
	if result.Error != nil {
		respondStoreError(c, result.Error, "delete order")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
		return
	}

	c.Status(http.StatusNoContent)
}
