package position

import (
	"strconv"

	"github.com/treadtrack/treadtrack/internal/models"
)

// TargetNone 移动目标：完全解除分配
const TargetNone = "none"

// Session 单车换位会话。所有移动只作用于内存映射，
// Commit 之前可随时放弃而无任何副作用。
type Session struct {
	plate    string
	tires    map[string]*models.Tire
	order    []string           // 按载入顺序稳定遍历
	snapshot map[string]*string // tireID -> 载入/上次提交时的槽位
}

// NewSession 以当前轮胎状态开启会话并留存快照
func NewSession(plate string, tires []*models.Tire) *Session {
	s := &Session{
		plate:    plate,
		tires:    make(map[string]*models.Tire, len(tires)),
		snapshot: make(map[string]*string, len(tires)),
	}
	for _, t := range tires {
		s.tires[t.ID] = t
		s.order = append(s.order, t.ID)
		s.snapshot[t.ID] = copySlot(t.PositionSlot)
	}
	return s
}

// Plate 会话所属车牌
func (s *Session) Plate() string {
	return s.plate
}

// MoveTire 移动一条轮胎：
//   - "none"  -> 完全解除分配（槽位置 nil）
//   - "0"     -> 移入库存（库存哨兵非唯一，可多胎共用）
//   - 具体编号 -> 占用该槽；原占用者被顶替为未分配（不对调，被顶替者
//     需要操作员显式重新安置）
//
// 任何移动之后保持不变式：除库存外不存在两胎共用同一具体槽位。
func (s *Session) MoveTire(tireID, targetSlot string) error {
	tire, ok := s.tires[tireID]
	if !ok {
		return models.ErrNotFound
	}

	switch targetSlot {
	case TargetNone:
		tire.PositionSlot = nil
		return nil
	case models.SlotInventory:
		slot := models.SlotInventory
		tire.PositionSlot = &slot
		return nil
	}

	if n, err := strconv.Atoi(targetSlot); err != nil || n <= 0 {
		return models.NewValidationError("target_slot", "must be a positive slot number, \"0\" or \"none\"")
	}

	// 顶替规则：原占用者退为未分配
	for _, other := range s.tires {
		if other.ID == tireID {
			continue
		}
		if other.PositionSlot != nil && *other.PositionSlot == targetSlot {
			other.PositionSlot = nil
		}
	}

	slot := targetSlot
	tire.PositionSlot = &slot
	return nil
}

// ComputeChanges 对比快照，仅返回槽位发生变化的轮胎。
// 无移动时为空；重复调用（期间无移动）结果相同。
func (s *Session) ComputeChanges() []models.PositionChange {
	var changes []models.PositionChange
	for _, id := range s.order {
		tire := s.tires[id]
		orig := s.snapshot[id]
		if slotEqual(orig, tire.PositionSlot) {
			continue
		}
		changes = append(changes, models.PositionChange{
			TireID:           tire.ID,
			Brand:            tire.Brand,
			OriginalPosition: copySlot(orig),
			NewPosition:      copySlot(tire.PositionSlot),
		})
	}
	return changes
}

// CommitPayload 构建整车提交载荷：具体槽位 -> 轮胎 ID 的映射，
// 外加库存桶内的轮胎 ID 列表。整车一次请求提交。
func (s *Session) CommitPayload() (assigned map[string]string, inventory []string) {
	assigned = make(map[string]string)
	for _, id := range s.order {
		tire := s.tires[id]
		if tire.PositionSlot == nil {
			continue
		}
		if *tire.PositionSlot == models.SlotInventory {
			inventory = append(inventory, tire.ID)
			continue
		}
		assigned[*tire.PositionSlot] = tire.ID
	}
	return assigned, inventory
}

// ResetSnapshot 提交成功后重置快照，后续差异以提交后的状态为基准
func (s *Session) ResetSnapshot() {
	for id, tire := range s.tires {
		s.snapshot[id] = copySlot(tire.PositionSlot)
	}
}

// AssignedCount 当前占用具体槽位的轮胎数（不含库存与未分配）
func (s *Session) AssignedCount() int {
	n := 0
	for _, tire := range s.tires {
		if tire.PositionSlot != nil && *tire.PositionSlot != models.SlotInventory {
			n++
		}
	}
	return n
}

// Layout 按当前已分配轮胎数推导轴布局
func (s *Session) Layout() Layout {
	return DeriveLayout(s.AssignedCount())
}

func copySlot(slot *string) *string {
	if slot == nil {
		return nil
	}
	v := *slot
	return &v
}

func slotEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
