package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/service"
)

// ---- equipment ----

func TestEquipmentService_Create_Defaults(t *testing.T) {
	svc := service.NewEquipmentService(&mockEquipmentRepo{
		create: func(_ context.Context, e domain.Equipment) (domain.Equipment, error) { return e, nil },
	})

	got, err := svc.Create(context.Background(), domain.Equipment{Name: " Hay rack "})

	require.NoError(t, err)
	assert.Equal(t, "Hay rack", got.Name)
	assert.Equal(t, domain.EquipmentFeeder, got.Type)
	assert.Equal(t, domain.ConditionGood, got.Condition)
}

func TestEquipmentService_Create_Validation(t *testing.T) {
	cases := map[string]domain.Equipment{
		"blank name":    {Name: " "},
		"negative cost": {Name: "Gate", Cost: -10},
		"bad type":      {Name: "Gate", Type: "Tractor"},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.NewEquipmentService(&mockEquipmentRepo{}).Create(context.Background(), e)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestEquipmentService_AddMaintenance(t *testing.T) {
	var gotRec domain.MaintenanceRecord
	svc := service.NewEquipmentService(&mockEquipmentRepo{
		addMaintenance: func(_ context.Context, _ uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error) {
			gotRec = rec
			return domain.Equipment{}, nil
		},
	})

	_, err := svc.AddMaintenance(context.Background(), uuid.New(), domain.MaintenanceRecord{Date: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceRoutine, gotRec.Type)

	_, err = svc.AddMaintenance(context.Background(), uuid.New(), domain.MaintenanceRecord{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEquipmentService_List_SortedByName(t *testing.T) {
	svc := service.NewEquipmentService(&mockEquipmentRepo{
		list: func(context.Context) ([]domain.Equipment, error) {
			return []domain.Equipment{{Name: "Waterer"}, {Name: "Gate"}}, nil
		},
	})

	items, _, err := svc.List(context.Background(), allPages())

	require.NoError(t, err)
	assert.Equal(t, "Gate", items[0].Name)
}

// ---- pastures ----

func TestPastureService_Create_DefaultRestPeriod(t *testing.T) {
	svc := service.NewPastureService(&mockPastureRepo{
		create: func(_ context.Context, p domain.Pasture) (domain.Pasture, error) { return p, nil },
	})

	got, err := svc.Create(context.Background(), domain.Pasture{Name: "North"})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRestPeriodDays, got.RestPeriod)
	assert.Equal(t, domain.GrassMixed, got.GrassType)
	assert.Equal(t, domain.PastureGood, got.Condition)
}

func TestPastureService_Create_Validation(t *testing.T) {
	cases := map[string]domain.Pasture{
		"blank name":         {Name: ""},
		"negative size":      {Name: "N", Size: -1},
		"negative rest":      {Name: "N", RestPeriod: -1},
		"negative capacity":  {Name: "N", Capacity: -1},
		"negative occupancy": {Name: "N", CurrentOccupancy: -1},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.NewPastureService(&mockPastureRepo{}).Create(context.Background(), p)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPastureService_AddGrazing(t *testing.T) {
	var gotRec domain.GrazingRecord
	svc := service.NewPastureService(&mockPastureRepo{
		addGrazing: func(_ context.Context, _ uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error) {
			gotRec = rec
			return domain.Pasture{}, nil
		},
	})
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.AddGrazing(context.Background(), uuid.New(), domain.GrazingRecord{
		StartDate: start,
		GoatIDs:   []uuid.UUID{uuid.New(), uuid.New()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, gotRec.NumberOfGoats)
	assert.Equal(t, domain.PastureGood, gotRec.ConditionBefore)

	before := start.AddDate(0, 0, -1)
	_, err = svc.AddGrazing(context.Background(), uuid.New(), domain.GrazingRecord{StartDate: start, EndDate: &before})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
