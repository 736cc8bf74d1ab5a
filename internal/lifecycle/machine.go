// Package lifecycle 实现轮胎生命周期状态机。
// 阶段全序 new -> retread1 -> retread2 -> retread3 -> end，只进不退：
// 非终态（retread3 之前）始终有两个合法去向——下一翻新档位或提前结束；
// retread3 只能去 end；end 为终态，之后不再有任何流转。
package lifecycle

import (
	"context"
	"time"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"

	"github.com/treadtrack/treadtrack/internal/ledger"
	"github.com/treadtrack/treadtrack/internal/models"
)

// newFSM 构建以 current 为起点的状态机。事件名即目标阶段名。
func newFSM(current models.Stage) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: string(models.StageRetread1), Src: []string{string(models.StageNew)}, Dst: string(models.StageRetread1)},
			{Name: string(models.StageRetread2), Src: []string{string(models.StageRetread1)}, Dst: string(models.StageRetread2)},
			{Name: string(models.StageRetread3), Src: []string{string(models.StageRetread2)}, Dst: string(models.StageRetread3)},
			// 任何非终态都可以提前结束生命周期
			{Name: string(models.StageEnd), Src: []string{
				string(models.StageNew),
				string(models.StageRetread1),
				string(models.StageRetread2),
				string(models.StageRetread3),
			}, Dst: string(models.StageEnd)},
		},
		fsm.Callbacks{},
	)
}

// LegalNextStages 返回 current 的全部合法去向（按全序）。
// 终态返回空切片。
func LegalNextStages(current models.Stage) []models.Stage {
	m := newFSM(current)
	var out []models.Stage
	for _, s := range models.Stages() {
		if m.Can(string(s)) {
			out = append(out, s)
		}
	}
	return out
}

// CanTransition 判断 current -> to 是否合法
func CanTransition(current, to models.Stage) bool {
	return newFSM(current).Can(string(to))
}

// TransitionInput 一次流转的输入
type TransitionInput struct {
	Stage       models.Stage
	Date        time.Time
	TreadDesign string           // 胎面花纹，自由文本，任何流转都记录
	RetreadCost *decimal.Decimal // 目标为翻新档位时必填且为正
}

// TransitionResult 流转产生的追加条目
type TransitionResult struct {
	LifeEntry models.LifeEntry
	CostEntry *models.CostEntry // 仅翻新流转产生
}

// Transition 对轮胎执行一次生命周期流转。
// 失败时（非法流转 / 费用校验失败）轮胎不发生任何变化；
// 成功时向 LifeHistory 追加一条记录，翻新流转同时向费用台账追加翻新费用。
func Transition(tire *models.Tire, in TransitionInput) (*TransitionResult, error) {
	if !in.Stage.Valid() {
		return nil, models.NewValidationError("stage", "unknown lifecycle stage")
	}

	current := tire.CurrentStage()
	m := newFSM(current)
	if !m.Can(string(in.Stage)) {
		return nil, &models.InvalidTransitionError{From: current, To: in.Stage}
	}

	var costEntry *models.CostEntry
	if in.Stage.IsRetread() {
		if in.RetreadCost == nil {
			return nil, models.NewValidationError("retread_cost", "required for retread stages")
		}
		l := ledger.New(tire.CostLedger)
		entry, err := l.Add(*in.RetreadCost, in.Date)
		if err != nil {
			return nil, err
		}
		entry.TireID = tire.ID
		costEntry = &entry
	}

	if err := m.Event(context.Background(), string(in.Stage)); err != nil {
		return nil, &models.InvalidTransitionError{From: current, To: in.Stage}
	}

	lifeEntry := models.LifeEntry{
		TireID:      tire.ID,
		Stage:       in.Stage,
		TreadDesign: in.TreadDesign,
		Date:        in.Date,
	}

	tire.LifeHistory = append(tire.LifeHistory, lifeEntry)
	if costEntry != nil {
		tire.CostLedger = append(tire.CostLedger, *costEntry)
	}

	return &TransitionResult{LifeEntry: lifeEntry, CostEntry: costEntry}, nil
}
