package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// VaccinationIntervalMonths is how old the newest vaccination may get before
// a goat is flagged as due.
const VaccinationIntervalMonths = 6

// trendWindow is the number of newest milk records compared against the
// same number of records before them.
const trendWindow = 7

// MilkTrend describes the direction of recent milk yield.
type MilkTrend string

const (
	TrendIncreasing MilkTrend = "Increasing"
	TrendDecreasing MilkTrend = "Decreasing"
	TrendStable     MilkTrend = "Stable"
)

// MilkSummary aggregates a goat's milk production.
type MilkSummary struct {
	GoatID       uuid.UUID   `json:"goat_id"`
	GoatName     string      `json:"goat_name"`
	Records      int         `json:"records"`
	Total        float64     `json:"total"`         // liters
	AveragePer   float64     `json:"average_daily"` // liters per record
	LatestRecord *MilkRecord `json:"latest_record,omitempty"`
	Trend        MilkTrend   `json:"trend"`
}

// SummarizeMilk computes totals, the per-record average, the latest record
// and the trend for g.
func SummarizeMilk(g Goat) MilkSummary {
	s := MilkSummary{GoatID: g.ID, GoatName: g.Name, Records: len(g.MilkProduction), Trend: TrendStable}
	if len(g.MilkProduction) == 0 {
		return s
	}
	for _, r := range g.MilkProduction {
		s.Total += r.Quantity
	}
	s.AveragePer = s.Total / float64(len(g.MilkProduction))

	newest := newestFirst(g.MilkProduction)
	latest := newest[0]
	s.LatestRecord = &latest
	s.Trend = milkTrend(newest)
	return s
}

// milkTrend compares the mean of the newest window against the window
// before it. A change beyond 10% either way is a trend.
func milkTrend(newest []MilkRecord) MilkTrend {
	if len(newest) > 2*trendWindow {
		newest = newest[:2*trendWindow]
	}
	if len(newest) <= trendWindow {
		return TrendStable
	}
	recent := meanQuantity(newest[:trendWindow])
	previous := meanQuantity(newest[trendWindow:])
	switch {
	case recent > previous*1.1:
		return TrendIncreasing
	case recent < previous*0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func meanQuantity(records []MilkRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Quantity
	}
	return total / float64(len(records))
}

func newestFirst(records []MilkRecord) []MilkRecord {
	out := make([]MilkRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// HealthAlert is a message about a goat that needs attention.
type HealthAlert struct {
	GoatID   uuid.UUID `json:"goat_id"`
	GoatName string    `json:"goat_name"`
	Message  string    `json:"message"`
}

// HealthAlerts derives status and vaccination alerts for every goat,
// in herd order.
func HealthAlerts(goats []Goat, now time.Time) []HealthAlert {
	alerts := []HealthAlert{}
	for _, g := range goats {
		alert := func(msg string) {
			alerts = append(alerts, HealthAlert{GoatID: g.ID, GoatName: g.Name, Message: msg})
		}

		switch g.HealthStatus {
		case HealthSick:
			alert("Currently sick - needs attention")
		case HealthCheckup:
			alert("Scheduled for health checkup")
		}

		last, ok := lastVaccination(g.MedicalHistory)
		if !ok {
			alert("No vaccination records found")
			continue
		}
		if months := monthsBetween(last, now); months >= VaccinationIntervalMonths {
			alert(fmt.Sprintf("Vaccination due (last: %d months ago)", months))
		}
	}
	return alerts
}

func lastVaccination(history []MedicalRecord) (time.Time, bool) {
	var (
		last  time.Time
		found bool
	)
	for _, r := range history {
		if r.Type != MedicalVaccination {
			continue
		}
		if !found || r.Date.After(last) {
			last, found = r.Date, true
		}
	}
	return last, found
}

// monthsBetween returns the number of whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	if b.Before(a) {
		return -monthsBetween(b, a)
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	if a.AddDate(0, months, 0).After(b) {
		months--
	}
	return months
}

// MedicalLogEntry pairs a medical record with the goat it belongs to.
type MedicalLogEntry struct {
	GoatID   uuid.UUID     `json:"goat_id"`
	GoatName string        `json:"goat_name"`
	Record   MedicalRecord `json:"record"`
}

// MedicalLog flattens the herd's medical history, newest first.
func MedicalLog(goats []Goat) []MedicalLogEntry {
	out := []MedicalLogEntry{}
	for _, g := range goats {
		for _, r := range g.MedicalHistory {
			out = append(out, MedicalLogEntry{GoatID: g.ID, GoatName: g.Name, Record: r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Record.Date.After(out[j].Record.Date) })
	return out
}

// MilkLogEntry pairs a milk record with the goat it belongs to.
type MilkLogEntry struct {
	GoatID   uuid.UUID  `json:"goat_id"`
	GoatName string     `json:"goat_name"`
	Record   MilkRecord `json:"record"`
}

// MilkLog flattens the herd's milk production, newest first.
func MilkLog(goats []Goat) []MilkLogEntry {
	out := []MilkLogEntry{}
	for _, g := range goats {
		for _, r := range g.MilkProduction {
			out = append(out, MilkLogEntry{GoatID: g.ID, GoatName: g.Name, Record: r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Record.Date.After(out[j].Record.Date) })
	return out
}

// ConsumptionSummary is the average consumption rate of one goat.
type ConsumptionSummary struct {
	GoatID         uuid.UUID `json:"goat_id"`
	GoatName       string    `json:"goat_name"`
	Records        int       `json:"records"`
	AverageRatePct float64   `json:"average_rate_pct"`
}

// SummarizeConsumption groups consumption records by goat, in herd order.
// Goats without records are omitted.
func SummarizeConsumption(goats []Goat, records []FeedConsumption) []ConsumptionSummary {
	byGoat := make(map[uuid.UUID][]FeedConsumption)
	for _, r := range records {
		byGoat[r.GoatID] = append(byGoat[r.GoatID], r)
	}
	out := []ConsumptionSummary{}
	for _, g := range goats {
		rs := byGoat[g.ID]
		if len(rs) == 0 {
			continue
		}
		out = append(out, ConsumptionSummary{
			GoatID:         g.ID,
			GoatName:       g.Name,
			Records:        len(rs),
			AverageRatePct: AverageConsumptionRate(rs),
		})
	}
	return out
}
