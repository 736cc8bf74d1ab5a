package service

import (
	"context"
	"time"

	"github.com/treadtrack/treadtrack/internal/models"
)

// 服务层依赖的存储接口，由 repository 包的具体仓库实现。
// 以接口声明便于测试时替换为内存实现。

// TireStore 轮胎存储
type TireStore interface {
	Create(ctx context.Context, tire *models.Tire) error
	GetByID(ctx context.Context, id string) (*models.Tire, error)
	ListByVehicleID(ctx context.Context, vehicleID string) ([]*models.Tire, error)
	ListAll(ctx context.Context) ([]*models.Tire, error)
	AppendTransition(ctx context.Context, tireID string, lifeEntry *models.LifeEntry, costEntry *models.CostEntry) error
	AddCostEntry(ctx context.Context, entry *models.CostEntry) error
}

// VehicleStore 车辆存储
type VehicleStore interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	List(ctx context.Context) ([]*models.Vehicle, error)
}

// InspectionStore 巡检存储
type InspectionStore interface {
	Insert(ctx context.Context, inspection *models.Inspection, newDistance float64) error
	DeleteByTireAndDate(ctx context.Context, tireID string, date time.Time) error
}

// PositionStore 槽位分配存储
type PositionStore interface {
	CommitAssignments(ctx context.Context, vehicleID string, assigned map[string]string, inventory []string) error
}
