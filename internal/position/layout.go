// Package position 实现车辆槽位分配引擎：由轮胎数推导轴布局、
// 会话内移动命令（含库存哨兵与顶替规则）以及提交前的审计差异。
package position

// Axle 单轴两侧的槽位标签（从前到后、从左到右编号）
type Axle struct {
	Left  []int `json:"left"`
	Right []int `json:"right"`
}

// Layout 由已分配轮胎数推导出的展示用轴布局。
// 不独立持久化，轮胎数变化时重新推导。
type Layout struct {
	TireCount int    `json:"tire_count"`
	AxleCount int    `json:"axle_count"`
	Axles     []Axle `json:"axles"`
}

// DeriveLayout 推导轴布局：<=8 胎 2 轴，<=12 胎 3 轴，再往上每 4 胎 1 轴
// （向上取整）。首轴恒为每侧单胎；总数超过 6 时后续轴每侧双胎，否则单胎。
// 槽位标签从 1 开始顺序分配。
func DeriveLayout(tireCount int) Layout {
	if tireCount <= 0 {
		return Layout{}
	}

	var axleCount int
	switch {
	case tireCount <= 8:
		axleCount = 2
	case tireCount <= 12:
		axleCount = 3
	default:
		axleCount = (tireCount + 3) / 4
	}

	perSide := 1
	if tireCount > 6 {
		perSide = 2
	}

	layout := Layout{TireCount: tireCount, AxleCount: axleCount}
	label := 1
	for i := 0; i < axleCount && label <= tireCount; i++ {
		n := perSide
		if i == 0 {
			n = 1
		}
		var axle Axle
		for j := 0; j < n && label <= tireCount; j++ {
			axle.Left = append(axle.Left, label)
			label++
		}
		for j := 0; j < n && label <= tireCount; j++ {
			axle.Right = append(axle.Right, label)
			label++
		}
		layout.Axles = append(layout.Axles, axle)
	}
	return layout
}
