package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportRow is one flattened milk record, the unit of the milk export.
// Records of deleted goats are not exported because they are deleted with
// the goat.
type ExportRow struct {
	GoatID   uuid.UUID   `json:"goat_id"`
	GoatName string      `json:"goat_name"`
	Breed    string      `json:"breed"`
	Date     time.Time   `json:"date"`
	Quantity float64     `json:"quantity"`
	Quality  MilkQuality `json:"quality"`
	Notes    string      `json:"notes"`
}
