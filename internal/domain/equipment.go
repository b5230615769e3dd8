package domain

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentType classifies a piece of farm equipment.
type EquipmentType string

const (
	EquipmentFeeder       EquipmentType = "Feeder"
	EquipmentWaterer      EquipmentType = "Waterer"
	EquipmentFence        EquipmentType = "Fence"
	EquipmentGate         EquipmentType = "Gate"
	EquipmentShelter      EquipmentType = "Shelter"
	EquipmentMilkingStand EquipmentType = "Milking Stand"
	EquipmentScale        EquipmentType = "Scale"
	EquipmentTools        EquipmentType = "Tools"
	EquipmentMedical      EquipmentType = "Medical Equipment"
	EquipmentOther        EquipmentType = "Other"
)

// Valid reports whether t is a known equipment type.
func (t EquipmentType) Valid() bool {
	switch t {
	case EquipmentFeeder, EquipmentWaterer, EquipmentFence, EquipmentGate, EquipmentShelter,
		EquipmentMilkingStand, EquipmentScale, EquipmentTools, EquipmentMedical, EquipmentOther:
		return true
	}
	return false
}

// EquipmentCondition grades the state of a piece of equipment.
type EquipmentCondition string

const (
	ConditionExcellent        EquipmentCondition = "Excellent"
	ConditionGood             EquipmentCondition = "Good"
	ConditionFair             EquipmentCondition = "Fair"
	ConditionPoor             EquipmentCondition = "Poor"
	ConditionNeedsReplacement EquipmentCondition = "Needs Replacement"
)

// Valid reports whether c is a known equipment condition.
func (c EquipmentCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionNeedsReplacement:
		return true
	}
	return false
}

// MaintenanceType classifies a maintenance record.
type MaintenanceType string

const (
	MaintenanceRoutine     MaintenanceType = "Routine"
	MaintenanceRepair      MaintenanceType = "Repair"
	MaintenanceReplacement MaintenanceType = "Replacement"
	MaintenanceCleaning    MaintenanceType = "Cleaning"
	MaintenanceInspection  MaintenanceType = "Inspection"
)

// Valid reports whether t is a known maintenance type.
func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceRoutine, MaintenanceRepair, MaintenanceReplacement, MaintenanceCleaning, MaintenanceInspection:
		return true
	}
	return false
}

// Equipment is a tracked piece of farm equipment with its maintenance log.
type Equipment struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Type                EquipmentType       `json:"type"`
	Condition           EquipmentCondition  `json:"condition"`
	PurchaseDate        time.Time           `json:"purchase_date"`
	LastMaintenanceDate *time.Time          `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time          `json:"next_maintenance_date,omitempty"`
	Cost                float64             `json:"cost"`
	Location            string              `json:"location"`
	Notes               string              `json:"notes"`
	MaintenanceHistory  []MaintenanceRecord `json:"maintenance_history"`
	DateCreated         time.Time           `json:"date_created"`
}

// MaintenanceRecord is one entry in an equipment maintenance log.
type MaintenanceRecord struct {
	ID                  uuid.UUID       `json:"id"`
	Date                time.Time       `json:"date"`
	Type                MaintenanceType `json:"type"`
	Description         string          `json:"description"`
	Cost                float64         `json:"cost"`
	PerformedBy         string          `json:"performed_by"`
	NextMaintenanceDate *time.Time      `json:"next_maintenance_date,omitempty"`
}
