package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// GestationDays is the span between mating and the expected kidding date.
	GestationDays = 150

	// PregnancyCheckDays is how long after mating a pregnancy check falls due.
	PregnancyCheckDays = 21
)

// PregnancyStatus tracks the outcome of a mating.
type PregnancyStatus string

const (
	PregnancyUnknown       PregnancyStatus = "Unknown"
	PregnancyConfirmed     PregnancyStatus = "Confirmed"
	PregnancyNotPregnant   PregnancyStatus = "Not Pregnant"
	PregnancyDelivered     PregnancyStatus = "Delivered"
	PregnancyComplications PregnancyStatus = "Complications"
)

// Valid reports whether s is a known pregnancy status.
func (s PregnancyStatus) Valid() bool {
	switch s {
	case PregnancyUnknown, PregnancyConfirmed, PregnancyNotPregnant, PregnancyDelivered, PregnancyComplications:
		return true
	}
	return false
}

// BreedingEventType classifies a derived breeding calendar entry.
type BreedingEventType string

const (
	EventMating         BreedingEventType = "Mating"
	EventPregnancyCheck BreedingEventType = "Pregnancy Check"
	EventExpectedBirth  BreedingEventType = "Expected Birth"
	EventWeaning        BreedingEventType = "Weaning"
	EventBreedingSeason BreedingEventType = "Breeding Season"
)

// BreedingRecord is one mating of a doe and its outcome.
// DoeID and BuckID are unchecked references into the goat collection.
type BreedingRecord struct {
	ID                uuid.UUID       `json:"id"`
	DoeID             uuid.UUID       `json:"doe_id"`
	BuckID            *uuid.UUID      `json:"buck_id,omitempty"`
	MatingDate        time.Time       `json:"mating_date"`
	ExpectedBirthDate time.Time       `json:"expected_birth_date"`
	ActualBirthDate   *time.Time      `json:"actual_birth_date,omitempty"`
	PregnancyStatus   PregnancyStatus `json:"pregnancy_status"`
	NumberOfKids      int             `json:"number_of_kids"`
	KidIDs            []uuid.UUID     `json:"kid_ids"`
	Notes             string          `json:"notes"`
	Complications     string          `json:"complications"`
	DateCreated       time.Time       `json:"date_created"`
}

// ExpectedBirthDate returns the kidding date expected for a mating on matingDate.
func ExpectedBirthDate(matingDate time.Time) time.Time {
	return matingDate.AddDate(0, 0, GestationDays)
}

// BreedingEvent is a calendar entry derived from breeding records.
// Events are computed on demand and never stored.
type BreedingEvent struct {
	ID          uuid.UUID         `json:"id"`
	RecordID    uuid.UUID         `json:"record_id"`
	Title       string            `json:"title"`
	Date        time.Time         `json:"date"`
	Type        BreedingEventType `json:"type"`
	GoatID      uuid.UUID         `json:"goat_id"`
	GoatName    string            `json:"goat_name"`
	Description string            `json:"description"`
	Completed   bool              `json:"completed"`
}

// UpcomingBreedingEvents derives the expected-birth and pregnancy-check
// events that fall on or after the day containing now, ordered by date.
func UpcomingBreedingEvents(records []BreedingRecord, goats []Goat, now time.Time) []BreedingEvent {
	today := now.Truncate(24 * time.Hour)
	events := []BreedingEvent{}

	add := func(r BreedingRecord, typ BreedingEventType, date time.Time, desc string) {
		if date.Before(today) {
			return
		}
		doe := r.DoeID
		events = append(events, BreedingEvent{
			ID:          uuid.New(),
			RecordID:    r.ID,
			Title:       string(typ),
			Date:        date,
			Type:        typ,
			GoatID:      r.DoeID,
			GoatName:    GoatName(goats, &doe),
			Description: desc,
		})
	}

	for _, r := range records {
		if r.PregnancyStatus == PregnancyConfirmed && r.ActualBirthDate == nil {
			add(r, EventExpectedBirth, r.ExpectedBirthDate, "Expected kidding date")
		}
		if r.PregnancyStatus == PregnancyUnknown {
			add(r, EventPregnancyCheck, r.MatingDate.AddDate(0, 0, PregnancyCheckDays), "Time to check for pregnancy")
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}
