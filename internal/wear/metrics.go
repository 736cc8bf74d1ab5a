// Package wear 实现磨损与成本派生指标：CPK（每公里成本）、CPK 投影、
// 剩余里程投影与风险分级。全部为纯函数，基于最近一次三点测量相对出厂
// 深度做线性外推，不做多次巡检回归。
package wear

import (
	"math"
	"time"

	"github.com/treadtrack/treadtrack/internal/ledger"
	"github.com/treadtrack/treadtrack/internal/models"
)

// 风险分级阈值 (mm)，固定常量
const (
	CriticalDepthMM = 2.0
	WarningDepthMM  = 4.0
)

// RiskTier 风险等级
type RiskTier string

const (
	RiskCritical RiskTier = "critical"
	RiskWarning  RiskTier = "warning"
	RiskSafe     RiskTier = "safe"
)

// DepthSummary 最近一次巡检的深度汇总
type DepthSummary struct {
	Inner   float64   `json:"inner"`
	Center  float64   `json:"center"`
	Outer   float64   `json:"outer"`
	Average float64   `json:"average"`
	Min     float64   `json:"min"`
	Date    time.Time `json:"date"`
}

// LatestDepths 取最近一次巡检的三点读数及均值/最小值。
// 没有巡检记录时返回 nil，此时派生指标一律视为未定义而不是 0。
func LatestDepths(tire *models.Tire) *DepthSummary {
	insp := tire.LatestInspection()
	if insp == nil {
		return nil
	}
	return &DepthSummary{
		Inner:   insp.InnerDepth,
		Center:  insp.CenterDepth,
		Outer:   insp.OuterDepth,
		Average: (insp.InnerDepth + insp.CenterDepth + insp.OuterDepth) / 3,
		Min:     math.Min(insp.InnerDepth, math.Min(insp.CenterDepth, insp.OuterDepth)),
		Date:    insp.Date,
	}
}

// ActualCPK 历史实际每公里成本：台账总额 / (已行驶里程 + kmDiff)。
// 里程为 0 时返回 0，不抛错（新胎属正常状态）。
func ActualCPK(tire *models.Tire, kmDiff float64) float64 {
	newKm := tire.DistanceTraveled + kmDiff
	if newKm <= 0 {
		return 0
	}
	totalCost, _ := ledger.Total(tire.CostLedger).Float64()
	return totalCost / newKm
}

// ProjectedCPK 投影到整个原始胎纹寿命的每公里成本。
// 以当前磨损速率线性外推：全寿命里程 = (newKm / wearSpan) * initialDepth。
// wearSpan <= 0（全新或读数异常）时返回 0。
func ProjectedCPK(tire *models.Tire, minDepth, kmDiff float64) float64 {
	newKm := tire.DistanceTraveled + kmDiff
	wearSpan := tire.InitialDepth - minDepth
	if wearSpan <= 0 || newKm <= 0 {
		return 0
	}
	denominator := (newKm / wearSpan) * tire.InitialDepth
	if denominator <= 0 {
		return 0
	}
	totalCost, _ := ledger.Total(tire.CostLedger).Float64()
	return totalCost / denominator
}

// ProjectedRemainingKm 按线性磨损速率投影到法定最低深度的剩余里程。
// 已达到或低于法定下限、或测不出磨损速率时返回 0。
func ProjectedRemainingKm(tire *models.Tire, minDepth, kmDiff, legalMinimumDepth float64) float64 {
	if minDepth <= legalMinimumDepth {
		return 0
	}
	newKm := tire.DistanceTraveled + kmDiff
	if newKm <= 0 {
		return 0
	}
	wearRate := (tire.InitialDepth - minDepth) / newKm // mm/km
	if wearRate <= 0 {
		return 0
	}
	return math.Round((minDepth - legalMinimumDepth) / wearRate)
}

// ClassifyRisk 按平均深度分三档：<=2mm critical，<=4mm warning，其余 safe
func ClassifyRisk(averageDepth float64) RiskTier {
	switch {
	case averageDepth <= CriticalDepthMM:
		return RiskCritical
	case averageDepth <= WarningDepthMM:
		return RiskWarning
	default:
		return RiskSafe
	}
}
