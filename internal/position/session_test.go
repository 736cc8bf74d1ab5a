package position

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treadtrack/treadtrack/internal/models"
)

func slot(v string) *string { return &v }

func sessionWithSlots(slots ...*string) (*Session, []*models.Tire) {
	var tires []*models.Tire
	for i, s := range slots {
		tires = append(tires, &models.Tire{
			ID:           fmt.Sprintf("t%d", i+1),
			Brand:        "michelin",
			PositionSlot: s,
		})
	}
	return NewSession("ABC123", tires), tires
}

func TestMoveToNoneAndInventory(t *testing.T) {
	s, tires := sessionWithSlots(slot("1"), slot("2"))

	require.NoError(t, s.MoveTire("t1", TargetNone))
	assert.Nil(t, tires[0].PositionSlot)

	require.NoError(t, s.MoveTire("t2", models.SlotInventory))
	require.NotNil(t, tires[1].PositionSlot)
	assert.Equal(t, models.SlotInventory, *tires[1].PositionSlot)
}

func TestInventoryNotUnique(t *testing.T) {
	s, tires := sessionWithSlots(slot("1"), slot("2"), slot("3"))
	require.NoError(t, s.MoveTire("t1", models.SlotInventory))
	require.NoError(t, s.MoveTire("t2", models.SlotInventory))

	// 库存哨兵可多胎共用，互不顶替
	assert.Equal(t, models.SlotInventory, *tires[0].PositionSlot)
	assert.Equal(t, models.SlotInventory, *tires[1].PositionSlot)
}

func TestDisplacement(t *testing.T) {
	// slot 1..4 已占用，候选胎移入 slot 3
	s, tires := sessionWithSlots(slot("1"), slot("2"), slot("3"), slot("4"), nil)

	require.NoError(t, s.MoveTire("t5", "3"))

	// 被顶替者退为未分配，不接管移动者的旧槽
	assert.Nil(t, tires[2].PositionSlot)
	assert.Equal(t, "3", *tires[4].PositionSlot)

	changes := s.ComputeChanges()
	require.Len(t, changes, 2)
	assert.Equal(t, "t3", changes[0].TireID)
	assert.Nil(t, changes[0].NewPosition)
	assert.Equal(t, "t5", changes[1].TireID)
	assert.Equal(t, "3", *changes[1].NewPosition)
}

func TestNoDuplicateConcreteSlotsAfterMoveChains(t *testing.T) {
	s, tires := sessionWithSlots(slot("1"), slot("2"), slot("3"), nil, slot("0"))

	moves := []struct{ id, target string }{
		{"t4", "2"}, {"t2", "1"}, {"t5", "3"}, {"t3", "0"},
		{"t1", "2"}, {"t4", "none"}, {"t3", "1"},
	}
	for _, m := range moves {
		require.NoError(t, s.MoveTire(m.id, m.target))
	}

	// 不变式：除库存外无两胎共用同一具体槽位
	seen := make(map[string]string)
	for _, tire := range tires {
		if tire.PositionSlot == nil || *tire.PositionSlot == models.SlotInventory {
			continue
		}
		other, dup := seen[*tire.PositionSlot]
		assert.False(t, dup, "slot %s held by %s and %s", *tire.PositionSlot, other, tire.ID)
		seen[*tire.PositionSlot] = tire.ID
	}
}

func TestMoveUnknownTireAndBadSlot(t *testing.T) {
	s, _ := sessionWithSlots(slot("1"))
	assert.ErrorIs(t, s.MoveTire("nope", "2"), models.ErrNotFound)
	assert.True(t, models.IsValidationError(s.MoveTire("t1", "-3")))
	assert.True(t, models.IsValidationError(s.MoveTire("t1", "front-left")))
}

func TestComputeChangesEmptyAndIdempotent(t *testing.T) {
	s, _ := sessionWithSlots(slot("1"), slot("2"))

	// 无移动时差异为空
	assert.Empty(t, s.ComputeChanges())

	require.NoError(t, s.MoveTire("t1", "0"))
	first := s.ComputeChanges()
	second := s.ComputeChanges()
	assert.Equal(t, first, second)
}

func TestResetSnapshotRoundTrip(t *testing.T) {
	s, _ := sessionWithSlots(slot("1"), slot("2"), nil)

	require.NoError(t, s.MoveTire("t3", "1"))
	require.NotEmpty(t, s.ComputeChanges())

	// 提交后以新状态为基准，差异归零
	s.ResetSnapshot()
	assert.Empty(t, s.ComputeChanges())
}

func TestCommitPayload(t *testing.T) {
	s, _ := sessionWithSlots(slot("1"), slot("0"), nil, slot("4"))

	assigned, inventory := s.CommitPayload()
	assert.Equal(t, map[string]string{"1": "t1", "4": "t4"}, assigned)
	assert.Equal(t, []string{"t2"}, inventory)
}

func TestDeriveLayout(t *testing.T) {
	// 6 胎：2 轴，每侧单胎
	l := DeriveLayout(6)
	assert.Equal(t, 2, l.AxleCount)
	require.Len(t, l.Axles, 2)
	assert.Equal(t, []int{1}, l.Axles[0].Left)
	assert.Equal(t, []int{2}, l.Axles[0].Right)

	// 10 胎：3 轴，首轴单胎、后轴每侧双胎
	l = DeriveLayout(10)
	assert.Equal(t, 3, l.AxleCount)
	assert.Equal(t, []int{1}, l.Axles[0].Left)
	assert.Equal(t, []int{3, 4}, l.Axles[1].Left)
	assert.Equal(t, []int{5, 6}, l.Axles[1].Right)

	// 14 胎：ceil(14/4)=4 轴
	l = DeriveLayout(14)
	assert.Equal(t, 4, l.AxleCount)

	assert.Zero(t, DeriveLayout(0).AxleCount)
}
