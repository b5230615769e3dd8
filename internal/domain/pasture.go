package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRestPeriodDays is the rest period assigned to a pasture created
// without one.
const DefaultRestPeriodDays = 30

// GrassType is the dominant forage in a pasture.
type GrassType string

const (
	GrassMixed   GrassType = "Mixed Grass"
	GrassBermuda GrassType = "Bermuda"
	GrassFescue  GrassType = "Fescue"
	GrassClover  GrassType = "Clover"
	GrassAlfalfa GrassType = "Alfalfa"
	GrassOrchard GrassType = "Orchard Grass"
	GrassTimothy GrassType = "Timothy"
	GrassOther   GrassType = "Other"
)

// Valid reports whether g is a known grass type.
func (g GrassType) Valid() bool {
	switch g {
	case GrassMixed, GrassBermuda, GrassFescue, GrassClover, GrassAlfalfa, GrassOrchard, GrassTimothy, GrassOther:
		return true
	}
	return false
}

// PastureCondition grades the state of a pasture.
type PastureCondition string

const (
	PastureExcellent  PastureCondition = "Excellent"
	PastureGood       PastureCondition = "Good"
	PastureFair       PastureCondition = "Fair"
	PasturePoor       PastureCondition = "Poor"
	PastureOvergrazed PastureCondition = "Overgrazed"
	PastureResting    PastureCondition = "Resting"
)

// Valid reports whether c is a known pasture condition.
func (c PastureCondition) Valid() bool {
	switch c {
	case PastureExcellent, PastureGood, PastureFair, PasturePoor, PastureOvergrazed, PastureResting:
		return true
	}
	return false
}

// Pasture is a grazing field with its rotation history.
type Pasture struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Size             float64          `json:"size"` // acres
	GrassType        GrassType        `json:"grass_type"`
	Condition        PastureCondition `json:"condition"`
	LastGrazedDate   *time.Time       `json:"last_grazed_date,omitempty"`
	RestPeriod       int              `json:"rest_period"` // days
	Capacity         int              `json:"capacity"`    // goats
	CurrentOccupancy int              `json:"current_occupancy"`
	Notes            string           `json:"notes"`
	GrazingHistory   []GrazingRecord  `json:"grazing_history"`
	DateCreated      time.Time        `json:"date_created"`
}

// GrazingRecord is one rotation of goats through a pasture.
type GrazingRecord struct {
	ID              uuid.UUID         `json:"id"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         *time.Time        `json:"end_date,omitempty"`
	NumberOfGoats   int               `json:"number_of_goats"`
	GoatIDs         []uuid.UUID       `json:"goat_ids"`
	ConditionBefore PastureCondition  `json:"condition_before"`
	ConditionAfter  *PastureCondition `json:"condition_after,omitempty"`
	Notes           string            `json:"notes"`
}
