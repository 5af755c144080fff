package booking

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/models"
)

const dateLayout = "2006-01-02"

// TripFilter narrows a trip listing. Nil fields impose no constraint.
type TripFilter struct {
	Date    *time.Time
	RouteID *uint
}

// ParseTripFilter reads the raw "date" (YYYY-MM-DD) and "route" query values.
func ParseTripFilter(date, route string) (TripFilter, error) {
	var filter TripFilter

	if date != "" {
		day, err := time.ParseInLocation(dateLayout, date, time.UTC)
		if err != nil {
			return filter, NewValidationError("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		filter.Date = &day
	}

	if route != "" {
		id, err := strconv.ParseUint(route, 10, 64)
		if err != nil {
			return filter, NewValidationError("route", "A valid integer is required.")
		}
		routeID := uint(id)
		filter.RouteID = &routeID
	}

	return filter, nil
}

// Apply adds the filter conditions to a query over trips.
func (f TripFilter) Apply(query *gorm.DB) *gorm.DB {
	if f.Date != nil {
		query = query.Where("trips.departure_time >= ? AND trips.departure_time < ?", *f.Date, f.Date.AddDate(0, 0, 1))
	}
	if f.RouteID != nil {
		query = query.Where("trips.route_id = ?", *f.RouteID)
	}
	return query
}

// TripAvailability is a trip together with its unsold seat count.
type TripAvailability struct {
	Trip             models.Trip
	TicketsAvailable int
}

// ListTrips returns the filtered trips with train, route and stations loaded,
// each annotated with the seats still available at the time of the read.
func ListTrips(db *gorm.DB, filter TripFilter) ([]TripAvailability, error) {
	var trips []models.Trip
	err := filter.Apply(db.Model(&models.Trip{})).
		Preload("Train").
		Preload("Route.Source").
		Preload("Route.Destination").
		Order("trips.id").
		Find(&trips).Error
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	ids := make([]uint, 0, len(trips))
	for _, trip := range trips {
		ids = append(ids, trip.ID)
	}

	sold, err := TicketCounts(db, ids)
	if err != nil {
		return nil, err
	}

	result := make([]TripAvailability, 0, len(trips))
	for _, trip := range trips {
		result = append(result, TripAvailability{
			Trip:             trip,
			TicketsAvailable: TicketsAvailable(&trip.Train, sold[trip.ID]),
		})
	}
	return result, nil
}

// TicketCounts returns the number of tickets sold per trip id.
// Trips without tickets are absent from the map.
func TicketCounts(db *gorm.DB, tripIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(tripIDs))
	if len(tripIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TripID uint
		Sold   int
	}
	err := db.Model(&models.Ticket{}).
		Select("trip_id, COUNT(*) AS sold").
		Where("trip_id IN ?", tripIDs).
		Group("trip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	for _, row := range rows {
		counts[row.TripID] = row.Sold
	}
	return counts, nil
}

func TicketsAvailable(train *models.Train, sold int) int {
	return train.Capacity() - sold
}
