package advice

import (
	"fmt"

	"github.com/herdbook/herdbook/internal/domain"
)

// Kind names an advice template.
type Kind string

const (
	KindProfile   Kind = "profile"
	KindFeeding   Kind = "feeding"
	KindBreeding  Kind = "breeding"
	KindHealth    Kind = "health"
	KindMilk      Kind = "milk"
	KindPasture   Kind = "pasture"
	KindEquipment Kind = "equipment"
	KindGeneral   Kind = "general"
)

// GeneralTaskID is the task id shared by every free-form question.
const GeneralTaskID = "general-question"

// Prompt is one ready-to-send exchange.
type Prompt struct {
	Kind   Kind
	TaskID string
	System string
	User   string
}

func taskID(k Kind, id fmt.Stringer) string {
	return string(k) + "-" + id.String()
}

// GoatProfile asks for a short friendly summary of g.
func GoatProfile(g domain.Goat) Prompt {
	return Prompt{
		Kind:   KindProfile,
		TaskID: taskID(KindProfile, g.ID),
		System: "You are a helpful goat farming assistant. Provide concise, friendly summaries.",
		User: fmt.Sprintf(`Generate a brief, friendly summary for this goat profile:
Name: %s
Breed: %s
Age: %d years
Sex: %s
Health Status: %s
Temperament: %s

Please provide 2-3 sentences highlighting the goat's key characteristics and any notable traits.`,
			g.Name, g.Breed, g.Age, g.Sex, g.HealthStatus, g.TemperamentNotes),
	}
}

// FeedingPlan asks for a feeding plan for g.
func FeedingPlan(g domain.Goat) Prompt {
	return Prompt{
		Kind:   KindFeeding,
		TaskID: taskID(KindFeeding, g.ID),
		System: "You are an expert in goat nutrition. Provide practical feeding advice.",
		User: fmt.Sprintf(`Suggest an optimized feeding plan for this goat:
%s
Please provide specific recommendations for feed types, quantities, and feeding schedule.`, goatBlock(g)),
	}
}

// BreedingTips asks for breeding guidance for g.
func BreedingTips(g domain.Goat) Prompt {
	return Prompt{
		Kind:   KindBreeding,
		TaskID: taskID(KindBreeding, g.ID),
		System: "You are a goat breeding expert. Provide helpful breeding guidance.",
		User: fmt.Sprintf(`Provide breeding tips and best practices for this goat:
%s
Include timing recommendations, health considerations, and breeding best practices.`, goatBlock(g)),
	}
}

// HealthSymptoms asks for possible causes of the described symptoms.
func HealthSymptoms(g domain.Goat, symptoms string) Prompt {
	return Prompt{
		Kind:   KindHealth,
		TaskID: taskID(KindHealth, g.ID),
		System: "You are a veterinary assistant specializing in goat health. Provide helpful but not diagnostic advice.",
		User: fmt.Sprintf(`Analyze these health symptoms for a goat and suggest treatments:
Goat Details:
- Name: %s
- Breed: %s
- Age: %d years
- Sex: %s

Symptoms: %s

Please provide possible causes, recommended treatments, and when to consult a veterinarian.`,
			g.Name, g.Breed, g.Age, g.Sex, symptoms),
	}
}

// MilkTrend asks for an interpretation of g's milk yield.
func MilkTrend(g domain.Goat) Prompt {
	s := domain.SummarizeMilk(g)
	return Prompt{
		Kind:   KindMilk,
		TaskID: taskID(KindMilk, g.ID),
		System: "You are a dairy goat specialist. Provide insights on milk production optimization.",
		User: fmt.Sprintf(`Interpret milk yield trends for this goat:
Goat: %s (%s, %d years old)
Total records: %d
Average daily yield: %.2f liters
Recent trend: %s

Please analyze potential causes for yield changes and suggest improvements for milk production.`,
			g.Name, g.Breed, g.Age, s.Records, s.AveragePer, s.Trend),
	}
}

// PastureManagement asks for grazing advice for p.
func PastureManagement(p domain.Pasture) Prompt {
	return Prompt{
		Kind:   KindPasture,
		TaskID: taskID(KindPasture, p.ID),
		System: "You are a pasture management expert. Provide practical grazing advice.",
		User: fmt.Sprintf(`Provide pasture management advice for this field:
Name: %s
Size: %g acres
Grass Type: %s
Condition: %s
Capacity: %d goats
Current Occupancy: %d goats
Rest Period: %d days

Please suggest optimal grazing strategies, rest periods, and pasture improvement techniques.`,
			p.Name, p.Size, p.GrassType, p.Condition, p.Capacity, p.CurrentOccupancy, p.RestPeriod),
	}
}

// EquipmentMaintenance asks for care tips for e.
func EquipmentMaintenance(e domain.Equipment) Prompt {
	return Prompt{
		Kind:   KindEquipment,
		TaskID: taskID(KindEquipment, e.ID),
		System: "You are a farm equipment specialist. Provide practical maintenance advice.",
		User: fmt.Sprintf(`Provide maintenance tips for this farm equipment:
Name: %s
Type: %s
Condition: %s
Location: %s

Please suggest maintenance schedules, care tips, and upgrade recommendations if needed.`,
			e.Name, e.Type, e.Condition, e.Location),
	}
}

// Question wraps a free-form question.
func Question(q string) Prompt {
	return Prompt{
		Kind:   KindGeneral,
		TaskID: GeneralTaskID,
		System: "You are a knowledgeable goat farming advisor. Provide helpful, practical advice for small-scale goat farmers.",
		User:   q,
	}
}

func goatBlock(g domain.Goat) string {
	return fmt.Sprintf("Name: %s\nBreed: %s\nAge: %d years\nSex: %s\nHealth Status: %s\n",
		g.Name, g.Breed, g.Age, g.Sex, g.HealthStatus)
}
