package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/treadtrack/treadtrack/internal/models"
	"github.com/treadtrack/treadtrack/internal/position"
	"github.com/treadtrack/treadtrack/pkg/ws"
)

// PositionService 槽位分配服务。换位会话本身在客户端本地，
// 服务端只接收整车的最终载荷并原子提交。
type PositionService struct {
	logger    *zap.Logger
	tires     TireStore
	vehicles  VehicleStore
	positions PositionStore
	wsHub     *ws.Hub
}

// NewPositionService 创建槽位服务
func NewPositionService(logger *zap.Logger, tires TireStore, vehicles VehicleStore, positions PositionStore, wsHub *ws.Hub) *PositionService {
	return &PositionService{
		logger:    logger,
		tires:     tires,
		vehicles:  vehicles,
		positions: positions,
		wsHub:     wsHub,
	}
}

// CommitInput 整车提交载荷：具体槽位 -> 轮胎 ID，外加库存桶
type CommitInput struct {
	Assigned  map[string]string // slot -> tireID
	Inventory []string          // 库存桶内的轮胎 ID
}

// Commit 按车牌提交整车槽位分配。
// 载荷先在内存会话上重放以复用顶替不变式并生成审计差异，
// 再整车单事务落库；成功后返回提交的差异（审计/导出单元）。
func (s *PositionService) Commit(ctx context.Context, plate string, in CommitInput) ([]models.PositionChange, error) {
	vehicle, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	tires, err := s.tires.ListByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	session := position.NewSession(plate, tires)

	// 反查每条轮胎的目标槽位；载荷未覆盖的轮胎归为未分配
	targets := make(map[string]string, len(tires))
	for _, tire := range tires {
		targets[tire.ID] = position.TargetNone
	}
	for slot, tireID := range in.Assigned {
		targets[tireID] = slot
	}
	for _, tireID := range in.Inventory {
		targets[tireID] = models.SlotInventory
	}

	for tireID, target := range targets {
		if err := session.MoveTire(tireID, target); err != nil {
			return nil, err
		}
	}

	changes := session.ComputeChanges()
	if len(changes) == 0 {
		// 无差异不落库
		return nil, nil
	}

	assigned, inventory := session.CommitPayload()
	if err := s.positions.CommitAssignments(ctx, vehicle.ID, assigned, inventory); err != nil {
		return nil, err
	}
	session.ResetSnapshot()

	s.logger.Info("Position assignment committed",
		zap.String("plate", plate),
		zap.Int("changes", len(changes)),
	)
	if s.wsHub != nil {
		s.wsHub.BroadcastPositionCommit(vehicle.ID, changes)
	}
	return changes, nil
}

// Layout 当前车辆的推导轴布局（按已分配轮胎数）
func (s *PositionService) Layout(ctx context.Context, plate string) (*position.Layout, []*models.Tire, error) {
	vehicle, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		return nil, nil, err
	}
	tires, err := s.tires.ListByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, nil, err
	}

	assigned := 0
	for _, tire := range tires {
		if tire.PositionSlot != nil && *tire.PositionSlot != models.SlotInventory {
			assigned++
		}
	}
	layout := position.DeriveLayout(assigned)
	return &layout, tires, nil
}
