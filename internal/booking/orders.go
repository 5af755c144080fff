package booking

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Andrey1104/train-station-api-service/internal/models"
)

// TicketSpec is one requested seat inside an order payload.
type TicketSpec struct {
	Trip  uint `json:"trip" binding:"required"`
	Cargo int  `json:"cargo"`
	Seat  int  `json:"seat"`
}

// CreateOrder creates an order and its tickets in one transaction.
// Nothing is persisted unless every ticket is valid and its seat is free.
func CreateOrder(db *gorm.DB, userID uuid.UUID, specs []TicketSpec) (*models.Order, error) {
	if len(specs) == 0 {
		return nil, NewValidationError("tickets", "This list may not be empty.")
	}

	if err := validateSpecs(db, specs); err != nil {
		return nil, err
	}

	order := models.Order{UserID: userID}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, spec := range specs {
			ticket := models.Ticket{
				TripID:  spec.Trip,
				Cargo:   spec.Cargo,
				Seat:    spec.Seat,
				OrderID: order.ID,
			}
			if err := CreateTicket(tx, &ticket); err != nil {
				return err
			}
			order.Tickets = append(order.Tickets, ticket)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func validateSpecs(db *gorm.DB, specs []TicketSpec) error {
	ids := make([]uint, 0, len(specs))
	for _, spec := range specs {
		ids = append(ids, spec.Trip)
	}

	var trips []models.Trip
	if err := db.Preload("Train").Where("id IN ?", ids).Find(&trips).Error; err != nil {
		return fmt.Errorf("load trips: %w", err)
	}

	byID := make(map[uint]*models.Trip, len(trips))
	for i := range trips {
		byID[trips[i].ID] = &trips[i]
	}

	for _, spec := range specs {
		trip, ok := byID[spec.Trip]
		if !ok {
			return tripNotFound(spec.Trip)
		}
		if err := ValidateTicket(spec.Cargo, spec.Seat, &trip.Train); err != nil {
			return err
		}
	}
	return nil
}
