package models

// Stage 轮胎生命周期阶段（封闭枚举，全序）
type Stage string

const (
	StageNew      Stage = "new"
	StageRetread1 Stage = "retread1"
	StageRetread2 Stage = "retread2"
	StageRetread3 Stage = "retread3"
	StageEnd      Stage = "end" // 终态
)

// stageOrder 阶段全序，只能沿此顺序前进，不可回退或跳级
var stageOrder = []Stage{StageNew, StageRetread1, StageRetread2, StageRetread3, StageEnd}

// Valid 是否为合法阶段值
func (s Stage) Valid() bool {
	for _, v := range stageOrder {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal 是否为终态
func (s Stage) Terminal() bool {
	return s == StageEnd
}

// IsRetread 是否为翻新阶段（需要翻新费用）
func (s Stage) IsRetread() bool {
	return s == StageRetread1 || s == StageRetread2 || s == StageRetread3
}

// Rank 阶段在全序中的序号，非法值返回 -1
func (s Stage) Rank() int {
	for i, v := range stageOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// NextRetread 下一翻新档位。retread3 和 end 之后没有翻新档位。
func (s Stage) NextRetread() (Stage, bool) {
	switch s {
	case StageNew:
		return StageRetread1, true
	case StageRetread1:
		return StageRetread2, true
	case StageRetread2:
		return StageRetread3, true
	default:
		return "", false
	}
}

// Stages 返回全部阶段（按全序）
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}
