package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 行业默认值（固定常量，不随公司/轮胎配置）
const (
	// DefaultInitialDepthMM 出厂标准胎纹深度 (mm)
	DefaultInitialDepthMM = 22.0
	// LegalMinimumDepthMM 法定最低胎纹深度 (mm)，低于此值必须下场
	LegalMinimumDepthMM = 2.0
)

// 位置槽哨兵值
const (
	// SlotInventory 库存槽哨兵值：已从车轴拆下但保留待重新装配
	SlotInventory = "0"
)

// Tire 轮胎主记录
type Tire struct {
	ID               string       `json:"id" db:"id"`
	VehicleID        string       `json:"vehicle_id" db:"vehicle_id"`
	Brand            string       `json:"brand" db:"brand"`
	Dimension        string       `json:"dimension,omitempty" db:"dimension"`
	PositionSlot     *string      `json:"position_slot" db:"position_slot"` // nil=完全未分配, "0"=库存
	InitialDepth     float64      `json:"initial_depth" db:"initial_depth"` // mm，创建时固定
	DistanceTraveled float64      `json:"distance_traveled" db:"distance_traveled"` // km，单调不减
	CostLedger       []CostEntry  `json:"cost_ledger"`
	LifeHistory      []LifeEntry  `json:"life_history"`
	Inspections      []Inspection `json:"inspections"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// CostEntry 费用台账条目（仅追加，金额恒为正）
type CostEntry struct {
	ID     int64           `json:"id" db:"id"`
	TireID string          `json:"tire_id" db:"tire_id"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Date   time.Time       `json:"date" db:"entry_date"`
}

// LifeEntry 生命周期历史条目（仅追加，末条为当前阶段）
type LifeEntry struct {
	ID          int64     `json:"id" db:"id"`
	TireID      string    `json:"tire_id" db:"tire_id"`
	Stage       Stage     `json:"stage" db:"stage"`
	TreadDesign string    `json:"tread_design" db:"tread_design"`
	Date        time.Time `json:"date" db:"entry_date"`
}

// Inspection 巡检记录：三点胎纹深度测量
type Inspection struct {
	ID          int64     `json:"id" db:"id"`
	TireID      string    `json:"tire_id" db:"tire_id"`
	InnerDepth  float64   `json:"inner_depth" db:"inner_depth"`   // mm
	CenterDepth float64   `json:"center_depth" db:"center_depth"` // mm
	OuterDepth  float64   `json:"outer_depth" db:"outer_depth"`   // mm
	ImageRef    *string   `json:"image_ref,omitempty" db:"image_ref"`
	Date        time.Time `json:"date" db:"recorded_at"`
}

// CurrentStage 返回当前生命周期阶段。历史为空时隐式为 new。
func (t *Tire) CurrentStage() Stage {
	if len(t.LifeHistory) == 0 {
		return StageNew
	}
	return t.LifeHistory[len(t.LifeHistory)-1].Stage
}

// LatestInspection 返回最近一次巡检，不存在时返回 nil
func (t *Tire) LatestInspection() *Inspection {
	if len(t.Inspections) == 0 {
		return nil
	}
	return &t.Inspections[len(t.Inspections)-1]
}

// InInventory 是否在库存槽
func (t *Tire) InInventory() bool {
	return t.PositionSlot != nil && *t.PositionSlot == SlotInventory
}
