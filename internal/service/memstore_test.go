package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/treadtrack/treadtrack/internal/models"
)

// memStore 内存存储，实现 TireStore / InspectionStore / PositionStore，
// 只用于测试。读取返回深拷贝，模拟仓库每次查询都返回新对象的行为。
// 车辆因方法名与 TireStore 冲突由 memVehicles 单独实现。
type memStore struct {
	vehicles *memVehicles
	tires    map[string]*models.Tire
	order    []string

	// 模拟指定轮胎的远端写入失败（批量部分失败语义）
	failInsertFor map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		vehicles:      &memVehicles{byID: make(map[string]*models.Vehicle)},
		tires:         make(map[string]*models.Tire),
		failInsertFor: make(map[string]bool),
	}
}

func (m *memStore) addVehicle(plate string) *models.Vehicle {
	v := &models.Vehicle{ID: uuid.NewString(), Plate: plate}
	m.vehicles.byID[v.ID] = v
	return v
}

func (m *memStore) addTire(vehicleID string, slot *string) *models.Tire {
	t := &models.Tire{
		ID:           uuid.NewString(),
		VehicleID:    vehicleID,
		Brand:        "michelin",
		InitialDepth: models.DefaultInitialDepthMM,
		PositionSlot: slot,
		LifeHistory:  []models.LifeEntry{{Stage: models.StageNew, Date: time.Now()}},
	}
	m.tires[t.ID] = t
	m.order = append(m.order, t.ID)
	return t
}

func copyTire(t *models.Tire) *models.Tire {
	out := *t
	out.CostLedger = append([]models.CostEntry(nil), t.CostLedger...)
	out.LifeHistory = append([]models.LifeEntry(nil), t.LifeHistory...)
	out.Inspections = append([]models.Inspection(nil), t.Inspections...)
	if t.PositionSlot != nil {
		slot := *t.PositionSlot
		out.PositionSlot = &slot
	}
	return &out
}

// --- TireStore ---

func (m *memStore) Create(ctx context.Context, tire *models.Tire) error {
	if tire.ID == "" {
		tire.ID = uuid.NewString()
	}
	if tire.InitialDepth <= 0 {
		tire.InitialDepth = models.DefaultInitialDepthMM
	}
	tire.CreatedAt = time.Now()
	tire.LifeHistory = append(tire.LifeHistory, models.LifeEntry{
		TireID: tire.ID, Stage: models.StageNew, Date: tire.CreatedAt,
	})
	m.tires[tire.ID] = copyTire(tire)
	m.order = append(m.order, tire.ID)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*models.Tire, error) {
	t, ok := m.tires[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyTire(t), nil
}

func (m *memStore) ListByVehicleID(ctx context.Context, vehicleID string) ([]*models.Tire, error) {
	var out []*models.Tire
	for _, id := range m.order {
		if m.tires[id].VehicleID == vehicleID {
			out = append(out, copyTire(m.tires[id]))
		}
	}
	return out, nil
}

func (m *memStore) ListAll(ctx context.Context) ([]*models.Tire, error) {
	var out []*models.Tire
	for _, id := range m.order {
		out = append(out, copyTire(m.tires[id]))
	}
	return out, nil
}

func (m *memStore) AppendTransition(ctx context.Context, tireID string, lifeEntry *models.LifeEntry, costEntry *models.CostEntry) error {
	t, ok := m.tires[tireID]
	if !ok {
		return models.ErrNotFound
	}
	t.LifeHistory = append(t.LifeHistory, *lifeEntry)
	if costEntry != nil {
		t.CostLedger = append(t.CostLedger, *costEntry)
	}
	return nil
}

func (m *memStore) AddCostEntry(ctx context.Context, entry *models.CostEntry) error {
	t, ok := m.tires[entry.TireID]
	if !ok {
		return models.ErrNotFound
	}
	t.CostLedger = append(t.CostLedger, *entry)
	return nil
}

// --- VehicleStore ---

type memVehicles struct {
	byID map[string]*models.Vehicle
}

func (m *memVehicles) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	m.byID[vehicle.ID] = vehicle
	return nil
}

func (m *memVehicles) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	v, ok := m.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return v, nil
}

func (m *memVehicles) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	for _, v := range m.byID {
		if v.Plate == plate {
			return v, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memVehicles) List(ctx context.Context) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range m.byID {
		out = append(out, v)
	}
	return out, nil
}

// --- InspectionStore ---

func (m *memStore) Insert(ctx context.Context, inspection *models.Inspection, newDistance float64) error {
	if m.failInsertFor[inspection.TireID] {
		return fmt.Errorf("remote backend unavailable")
	}
	t, ok := m.tires[inspection.TireID]
	if !ok {
		return models.ErrNotFound
	}
	t.Inspections = append(t.Inspections, *inspection)
	t.DistanceTraveled = newDistance
	return nil
}

func (m *memStore) DeleteByTireAndDate(ctx context.Context, tireID string, date time.Time) error {
	t, ok := m.tires[tireID]
	if !ok {
		return models.ErrNotFound
	}
	for i, insp := range t.Inspections {
		if insp.Date.Equal(date) {
			t.Inspections = append(t.Inspections[:i], t.Inspections[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// --- PositionStore ---

func (m *memStore) CommitAssignments(ctx context.Context, vehicleID string, assigned map[string]string, inventory []string) error {
	for _, t := range m.tires {
		if t.VehicleID == vehicleID {
			t.PositionSlot = nil
		}
	}
	for slot, tireID := range assigned {
		t, ok := m.tires[tireID]
		if !ok || t.VehicleID != vehicleID {
			return fmt.Errorf("tire %s not on vehicle: %w", tireID, models.ErrNotFound)
		}
		s := slot
		t.PositionSlot = &s
	}
	for _, tireID := range inventory {
		t, ok := m.tires[tireID]
		if !ok || t.VehicleID != vehicleID {
			return fmt.Errorf("tire %s not on vehicle: %w", tireID, models.ErrNotFound)
		}
		s := models.SlotInventory
		t.PositionSlot = &s
	}
	return nil
}
