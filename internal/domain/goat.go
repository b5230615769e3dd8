// Package domain contains the core data types for the Herdbook application.
// This package depends only on google/uuid and is imported by every other
// internal package (repo, service, handler, advice).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnknownName is displayed wherever a record references a goat that no
// longer exists (or never did). References are never enforced.
const UnknownName = "Unknown"

// GoatSex is the sex of an animal.
type GoatSex string

const (
	SexMale   GoatSex = "Male"
	SexFemale GoatSex = "Female"
)

// Valid reports whether s is a known sex.
func (s GoatSex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// HealthStatus is the current health state of a goat.
type HealthStatus string

const (
	HealthHealthy    HealthStatus = "Healthy"
	HealthSick       HealthStatus = "Sick"
	HealthRecovering HealthStatus = "Recovering"
	HealthCheckup    HealthStatus = "Needs Checkup"
)

// Valid reports whether s is a known health status.
func (s HealthStatus) Valid() bool {
	switch s {
	case HealthHealthy, HealthSick, HealthRecovering, HealthCheckup:
		return true
	}
	return false
}

// MedicalType classifies a medical record.
type MedicalType string

const (
	MedicalVaccination MedicalType = "Vaccination"
	MedicalIllness     MedicalType = "Illness"
	MedicalInjury      MedicalType = "Injury"
	MedicalCheckup     MedicalType = "Checkup"
	MedicalTreatment   MedicalType = "Treatment"
)

// Valid reports whether t is a known medical record type.
func (t MedicalType) Valid() bool {
	switch t {
	case MedicalVaccination, MedicalIllness, MedicalInjury, MedicalCheckup, MedicalTreatment:
		return true
	}
	return false
}

// MilkQuality grades a single milking.
type MilkQuality string

const (
	MilkExcellent MilkQuality = "Excellent"
	MilkGood      MilkQuality = "Good"
	MilkFair      MilkQuality = "Fair"
	MilkPoor      MilkQuality = "Poor"
)

// Valid reports whether q is a known milk quality.
func (q MilkQuality) Valid() bool {
	switch q {
	case MilkExcellent, MilkGood, MilkFair, MilkPoor:
		return true
	}
	return false
}

// Goat is a single animal in the herd. Medical history and milk production
// are owned by the goat and stored inline with it.
type Goat struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Breed            string          `json:"breed"`
	Age              int             `json:"age"` // years
	Sex              GoatSex         `json:"sex"`
	HealthStatus     HealthStatus    `json:"health_status"`
	Lineage          string          `json:"lineage"`
	MedicalHistory   []MedicalRecord `json:"medical_history"`
	MilkProduction   []MilkRecord    `json:"milk_production"`
	TemperamentNotes string          `json:"temperament_notes"`
	Photo            string          `json:"photo"`
	DateAdded        time.Time       `json:"date_added"`
}

// MedicalRecord is one entry in a goat's medical history.
type MedicalRecord struct {
	ID           uuid.UUID   `json:"id"`
	Date         time.Time   `json:"date"`
	Type         MedicalType `json:"type"`
	Description  string      `json:"description"`
	Treatment    string      `json:"treatment"`
	Veterinarian string      `json:"veterinarian"`
}

// MilkRecord is a single milking. Quantity is in liters.
type MilkRecord struct {
	ID       uuid.UUID   `json:"id"`
	Date     time.Time   `json:"date"`
	Quantity float64     `json:"quantity"`
	Quality  MilkQuality `json:"quality"`
	Notes    string      `json:"notes"`
}

// GoatName returns the name of the goat with the given id, or UnknownName
// when the id is nil or dangling.
func GoatName(goats []Goat, id *uuid.UUID) string {
	if id == nil {
		return UnknownName
	}
	for _, g := range goats {
		if g.ID == *id {
			return g.Name
		}
	}
	return UnknownName
}
