package booking

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Andrey1104/train-station-api-service/internal/models"
)

// ValidateTicket checks that cargo and seat fall inside the train layout.
// The returned *ValidationError is keyed by "cargo" or "seat".
func ValidateTicket(cargo, seat int, train *models.Train) error {
	checks := []struct {
		value     int
		field     string
		trainAttr string
		limit     int
	}{
		{cargo, "cargo", "cargo_num", train.CargoNum},
		{seat, "seat", "places_in_cargo", train.PlacesInCargo},
	}

	for _, check := range checks {
		if check.value < 1 || check.value > check.limit {
			return NewValidationError(check.field, fmt.Sprintf(
				"%s number must be in available range: (1, %s): (1, %d)",
				check.field, check.trainAttr, check.limit,
			))
		}
	}
	return nil
}

func tripNotFound(tripID uint) *ValidationError {
	return NewValidationError("trip", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", tripID))
}

func seatTaken() *ValidationError {
	return NewValidationError(NonFieldErrors, "The fields trip, cargo, seat must make a unique set.")
}

// CreateTicket persists a ticket after validating it against its trip's train.
// Pass the transaction handle when the ticket is part of a larger unit of work.
func CreateTicket(tx *gorm.DB, ticket *models.Ticket) error {
	var trip models.Trip
	if err := tx.Preload("Train").First(&trip, ticket.TripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tripNotFound(ticket.TripID)
		}
		return fmt.Errorf("load trip %d: %w", ticket.TripID, err)
	}

	if err := ValidateTicket(ticket.Cargo, ticket.Seat, &trip.Train); err != nil {
		return err
	}

	var taken int64
	err := tx.Model(&models.Ticket{}).
		Where("trip_id = ? AND cargo = ? AND seat = ?", ticket.TripID, ticket.Cargo, ticket.Seat).
		Count(&taken).Error
	if err != nil {
		return fmt.Errorf("check seat: %w", err)
	}
	if taken > 0 {
		return seatTaken()
	}

	return insertTicket(tx, ticket)
}

// insertTicket writes the row and lets the unique index decide races
// between concurrent orders for the same seat.
func insertTicket(tx *gorm.DB, ticket *models.Ticket) error {
	if err := tx.Omit(clause.Associations).Create(ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return seatTaken()
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}
