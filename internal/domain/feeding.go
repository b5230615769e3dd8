package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedType is the kind of feed offered.
type FeedType string

const (
	FeedHay      FeedType = "Hay"
	FeedGrain    FeedType = "Grain"
	FeedPellets  FeedType = "Pellets"
	FeedGrass    FeedType = "Fresh Grass"
	FeedBrowse   FeedType = "Browse"
	FeedSilage   FeedType = "Silage"
	FeedMinerals FeedType = "Minerals"
)

// Valid reports whether f is a known feed type.
func (f FeedType) Valid() bool {
	switch f {
	case FeedHay, FeedGrain, FeedPellets, FeedGrass, FeedBrowse, FeedSilage, FeedMinerals:
		return true
	}
	return false
}

// FeedingSchedule is a planned feeding. GoatID is nil for group feedings.
type FeedingSchedule struct {
	ID             uuid.UUID  `json:"id"`
	GoatID         *uuid.UUID `json:"goat_id,omitempty"`
	FeedType       FeedType   `json:"feed_type"`
	Quantity       float64    `json:"quantity"` // kg
	FeedingTime    time.Time  `json:"feeding_time"`
	Supplements    []string   `json:"supplements"`
	Notes          string     `json:"notes"`
	IsGroupFeeding bool       `json:"is_group_feeding"`
	DateCreated    time.Time  `json:"date_created"`
}

// FeedConsumption records how much of a planned ration a goat actually ate.
type FeedConsumption struct {
	ID              uuid.UUID `json:"id"`
	GoatID          uuid.UUID `json:"goat_id"`
	Date            time.Time `json:"date"`
	FeedType        FeedType  `json:"feed_type"`
	PlannedQuantity float64   `json:"planned_quantity"`
	ActualQuantity  float64   `json:"actual_quantity"`
	ConsumptionRate float64   `json:"consumption_rate"` // percent
	Notes           string    `json:"notes"`
}

// ConsumptionRate returns actual as a percentage of planned, or 0 when
// nothing was planned.
func ConsumptionRate(planned, actual float64) float64 {
	if planned <= 0 {
		return 0
	}
	return actual / planned * 100
}

// AverageConsumptionRate returns the mean consumption rate over records,
// or 0 for an empty slice.
func AverageConsumptionRate(records []FeedConsumption) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += r.ConsumptionRate
	}
	return total / float64(len(records))
}
