package models

import "time"

// Vehicle 车辆记录。轴布局不入库，由当前已分配轮胎数推导。
type Vehicle struct {
	ID        string    `json:"id" db:"id"`
	Plate     string    `json:"plate" db:"plate"`
	Name      string    `json:"name,omitempty" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PositionChange 换位审计差异条目：仅包含槽位发生变化的轮胎
type PositionChange struct {
	TireID           string  `json:"tire_id"`
	Brand            string  `json:"brand"`
	OriginalPosition *string `json:"original_position"` // nil=未分配, "0"=库存
	NewPosition      *string `json:"new_position"`
}
