package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/treadtrack/treadtrack/internal/models"
	"github.com/treadtrack/treadtrack/internal/wear"
)

// AnalysisService 车队分析服务：按车牌的只读分析视图与全车队临界清单
type AnalysisService struct {
	logger   *zap.Logger
	tires    TireStore
	vehicles VehicleStore
}

// NewAnalysisService 创建分析服务
func NewAnalysisService(logger *zap.Logger, tires TireStore, vehicles VehicleStore) *AnalysisService {
	return &AnalysisService{logger: logger, tires: tires, vehicles: vehicles}
}

// TireAnalysis 单胎分析结果。无巡检记录时深度与投影字段为 null。
type TireAnalysis struct {
	TireID               string              `json:"tire_id"`
	Brand                string              `json:"brand"`
	PositionSlot         *string             `json:"position_slot"`
	Stage                models.Stage        `json:"stage"`
	Depths               *wear.DepthSummary  `json:"depths"`
	Risk                 *wear.RiskTier      `json:"risk"`
	Recommendation       *string             `json:"recommendation"`
	ActualCPK            float64             `json:"actual_cpk"`
	ProjectedCPK         *float64            `json:"projected_cpk"`
	ProjectedRemainingKm *float64            `json:"projected_remaining_km"`
	Inspections          []models.Inspection `json:"inspections"`
}

// PlateAnalysis 按车牌的分析视图
type PlateAnalysis struct {
	Vehicle *models.Vehicle `json:"vehicle"`
	Tires   []TireAnalysis  `json:"tires"`
}

// AnalyzeByPlate 按车牌生成分析视图：逐胎当前深度、风险与建议、
// CPK 实际/投影、剩余里程投影与巡检历史。基于已入库里程计算（kmDiff=0）。
func (s *AnalysisService) AnalyzeByPlate(ctx context.Context, plate string) (*PlateAnalysis, error) {
	vehicle, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	tires, err := s.tires.ListByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	analysis := &PlateAnalysis{Vehicle: vehicle}
	for _, tire := range tires {
		analysis.Tires = append(analysis.Tires, AnalyzeTire(tire))
	}
	return analysis, nil
}

// AnalyzeTire 计算单胎分析条目
func AnalyzeTire(tire *models.Tire) TireAnalysis {
	a := TireAnalysis{
		TireID:       tire.ID,
		Brand:        tire.Brand,
		PositionSlot: tire.PositionSlot,
		Stage:        tire.CurrentStage(),
		ActualCPK:    wear.ActualCPK(tire, 0),
		Inspections:  tire.Inspections,
	}

	depths := wear.LatestDepths(tire)
	if depths == nil {
		// 无巡检记录：派生指标未定义，不是 0
		return a
	}

	risk := wear.ClassifyRisk(depths.Average)
	recommendation := wear.Recommendation(risk)
	projectedCPK := wear.ProjectedCPK(tire, depths.Min, 0)
	remainingKm := wear.ProjectedRemainingKm(tire, depths.Min, 0, models.LegalMinimumDepthMM)

	a.Depths = depths
	a.Risk = &risk
	a.Recommendation = &recommendation
	a.ProjectedCPK = &projectedCPK
	a.ProjectedRemainingKm = &remainingKm
	return a
}

// CriticalTires 全车队临界清单：任一读数触及法定下限的轮胎及其建议
func (s *AnalysisService) CriticalTires(ctx context.Context) ([]wear.CriticalTire, error) {
	tires, err := s.tires.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	critical := wear.SelectCritical(tires)
	s.logger.Debug("Critical tires selected",
		zap.Int("fleet_size", len(tires)),
		zap.Int("critical", len(critical)),
	)
	return critical, nil
}
