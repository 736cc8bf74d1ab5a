package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/treadtrack/treadtrack/internal/models"
)

func newTireService(store *memStore) *TireService {
	return NewTireService(zap.NewNop(), store, store.vehicles, store, nil)
}

func TestCreateTireWithPurchaseCost(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	svc := newTireService(store)

	cost := decimal.NewFromInt(300000)
	tire, err := svc.CreateTire(context.Background(), CreateTireInput{
		VehicleID:    vehicle.ID,
		Brand:        "michelin",
		PurchaseCost: &cost,
	})
	require.NoError(t, err)

	// 出厂标准深度默认 22mm，购置成本进台账，初始阶段为 new
	assert.Equal(t, models.DefaultInitialDepthMM, tire.InitialDepth)
	assert.Equal(t, models.StageNew, tire.CurrentStage())

	stored, err := store.GetByID(context.Background(), tire.ID)
	require.NoError(t, err)
	require.Len(t, stored.CostLedger, 1)
	assert.True(t, stored.CostLedger[0].Amount.Equal(cost))
}

func TestCreateTireRejectsBadInput(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	svc := newTireService(store)

	neg := decimal.NewFromInt(-5)
	_, err := svc.CreateTire(context.Background(), CreateTireInput{
		VehicleID:    vehicle.ID,
		Brand:        "michelin",
		PurchaseCost: &neg,
	})
	assert.True(t, models.IsValidationError(err))

	_, err = svc.CreateTire(context.Background(), CreateTireInput{
		VehicleID: "missing",
		Brand:     "michelin",
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecordInspection(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	tire := store.addTire(vehicle.ID, nil)
	tire.DistanceTraveled = 50000
	svc := newTireService(store)

	insp, err := svc.RecordInspection(context.Background(), RecordInspectionInput{
		TireID:      tire.ID,
		InnerDepth:  10,
		CenterDepth: 11,
		OuterDepth:  12,
		Odometer:    60000,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, insp.InnerDepth)

	stored, _ := store.GetByID(context.Background(), tire.ID)
	require.Len(t, stored.Inspections, 1)
	assert.Equal(t, 60000.0, stored.DistanceTraveled)
}

func TestRecordInspectionValidation(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	tire := store.addTire(vehicle.ID, nil)
	tire.DistanceTraveled = 50000
	svc := newTireService(store)

	// 深度超出 [0, initialDepth]
	_, err := svc.RecordInspection(context.Background(), RecordInspectionInput{
		TireID: tire.ID, InnerDepth: 25, CenterDepth: 10, OuterDepth: 10, Odometer: 60000,
	})
	assert.True(t, models.IsValidationError(err))

	_, err = svc.RecordInspection(context.Background(), RecordInspectionInput{
		TireID: tire.ID, InnerDepth: -1, CenterDepth: 10, OuterDepth: 10, Odometer: 60000,
	})
	assert.True(t, models.IsValidationError(err))

	// 里程回退
	_, err = svc.RecordInspection(context.Background(), RecordInspectionInput{
		TireID: tire.ID, InnerDepth: 10, CenterDepth: 10, OuterDepth: 10, Odometer: 40000,
	})
	assert.True(t, models.IsValidationError(err))

	// 校验失败时无任何写入
	stored, _ := store.GetByID(context.Background(), tire.ID)
	assert.Empty(t, stored.Inspections)
	assert.Equal(t, 50000.0, stored.DistanceTraveled)
}

func TestRecordInspectionZeroDepthConfirmation(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	tire := store.addTire(vehicle.ID, nil)
	svc := newTireService(store)

	in := RecordInspectionInput{
		TireID: tire.ID, InnerDepth: 0, CenterDepth: 5, OuterDepth: 5, Odometer: 1000,
	}

	// 0 读数未确认 → 阻断
	_, err := svc.RecordInspection(context.Background(), in)
	assert.ErrorIs(t, err, models.ErrZeroDepthNeedsConfirm)

	// 显式确认后放行
	in.ConfirmZero = true
	_, err = svc.RecordInspection(context.Background(), in)
	assert.NoError(t, err)
}

func TestRecordInspectionBatchPartialFailure(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	good1 := store.addTire(vehicle.ID, nil)
	flaky := store.addTire(vehicle.ID, nil)
	good2 := store.addTire(vehicle.ID, nil)
	store.failInsertFor[flaky.ID] = true
	svc := newTireService(store)

	mk := func(id string) RecordInspectionInput {
		return RecordInspectionInput{
			TireID: id, InnerDepth: 10, CenterDepth: 10, OuterDepth: 10, Odometer: 1000,
		}
	}
	results := svc.RecordInspectionBatch(context.Background(),
		[]RecordInspectionInput{mk(good1.ID), mk(flaky.ID), mk(good2.ID)})

	require.Len(t, results, 3)
	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)
	assert.Empty(t, results[2].Error)

	// 尽力而为：失败项不回滚已成功项
	t1, _ := store.GetByID(context.Background(), good1.ID)
	t2, _ := store.GetByID(context.Background(), flaky.ID)
	t3, _ := store.GetByID(context.Background(), good2.ID)
	assert.Len(t, t1.Inspections, 1)
	assert.Empty(t, t2.Inspections)
	assert.Len(t, t3.Inspections, 1)
}

func TestDeleteInspection(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	tire := store.addTire(vehicle.ID, nil)
	svc := newTireService(store)

	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.RecordInspection(context.Background(), RecordInspectionInput{
		TireID: tire.ID, InnerDepth: 10, CenterDepth: 10, OuterDepth: 10,
		Odometer: 1000, Date: date,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInspection(context.Background(), tire.ID, date))
	stored, _ := store.GetByID(context.Background(), tire.ID)
	assert.Empty(t, stored.Inspections)

	// 再删同一条 → 不存在
	assert.ErrorIs(t, svc.DeleteInspection(context.Background(), tire.ID, date), models.ErrNotFound)
}

func TestTransitionPersistsEntries(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	tire := store.addTire(vehicle.ID, nil)
	svc := newTireService(store)

	cost := decimal.NewFromInt(150000)
	result, err := svc.Transition(context.Background(), tire.ID, TransitionInput{
		Stage:       models.StageRetread1,
		TreadDesign: "X",
		RetreadCost: &cost,
	})
	require.NoError(t, err)
	require.NotNil(t, result.CostEntry)

	stored, _ := store.GetByID(context.Background(), tire.ID)
	assert.Equal(t, models.StageRetread1, stored.CurrentStage())
	require.Len(t, stored.CostLedger, 1)
	assert.True(t, stored.CostLedger[0].Amount.Equal(cost))

	// 回退非法，且存储无变化
	_, err = svc.Transition(context.Background(), tire.ID, TransitionInput{Stage: models.StageNew})
	assert.True(t, models.IsInvalidTransition(err))
	stored, _ = store.GetByID(context.Background(), tire.ID)
	assert.Equal(t, models.StageRetread1, stored.CurrentStage())
}

func TestLegalNextStages(t *testing.T) {
	store := newMemStore()
	vehicle := store.addVehicle("ABC123")
	tire := store.addTire(vehicle.ID, nil)
	svc := newTireService(store)

	stages, err := svc.LegalNextStages(context.Background(), tire.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Stage{models.StageRetread1, models.StageEnd}, stages)
}
