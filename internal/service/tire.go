package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/treadtrack/treadtrack/internal/lifecycle"
	"github.com/treadtrack/treadtrack/internal/models"
	"github.com/treadtrack/treadtrack/pkg/ws"
)

// TireService 轮胎服务：巡检录入/删除、生命周期流转、轮胎创建
type TireService struct {
	logger   *zap.Logger
	tires    TireStore
	vehicles VehicleStore
	insps    InspectionStore
	wsHub    *ws.Hub
}

// NewTireService 创建轮胎服务
func NewTireService(logger *zap.Logger, tires TireStore, vehicles VehicleStore, insps InspectionStore, wsHub *ws.Hub) *TireService {
	return &TireService{
		logger:   logger,
		tires:    tires,
		vehicles: vehicles,
		insps:    insps,
		wsHub:    wsHub,
	}
}

// CreateTireInput 创建轮胎输入
type CreateTireInput struct {
	VehicleID    string
	Brand        string
	Dimension    string
	InitialDepth float64          // 0 表示使用出厂标准 22mm
	PurchaseCost *decimal.Decimal // 可选购置成本，作为台账首条
	PositionSlot *string
}

// CreateTire 创建轮胎。购置成本（若有）作为费用台账首条写入。
func (s *TireService) CreateTire(ctx context.Context, in CreateTireInput) (*models.Tire, error) {
	if in.InitialDepth < 0 {
		return nil, models.NewValidationError("initial_depth", "must be positive")
	}
	if in.PurchaseCost != nil && in.PurchaseCost.LessThanOrEqual(decimal.Zero) {
		return nil, models.NewValidationError("purchase_cost", "must be positive")
	}
	if _, err := s.vehicles.GetByID(ctx, in.VehicleID); err != nil {
		return nil, fmt.Errorf("resolve vehicle: %w", err)
	}

	tire := &models.Tire{
		VehicleID:    in.VehicleID,
		Brand:        in.Brand,
		Dimension:    in.Dimension,
		InitialDepth: in.InitialDepth,
		PositionSlot: in.PositionSlot,
	}
	if err := s.tires.Create(ctx, tire); err != nil {
		return nil, err
	}

	if in.PurchaseCost != nil {
		entry := &models.CostEntry{
			TireID: tire.ID,
			Amount: *in.PurchaseCost,
			Date:   tire.CreatedAt,
		}
		if err := s.tires.AddCostEntry(ctx, entry); err != nil {
			return nil, err
		}
		tire.CostLedger = append(tire.CostLedger, *entry)
	}

	s.logger.Info("Tire created",
		zap.String("tire_id", tire.ID),
		zap.String("vehicle_id", tire.VehicleID),
		zap.String("brand", tire.Brand),
	)
	return tire, nil
}

// RecordInspectionInput 巡检录入输入
type RecordInspectionInput struct {
	TireID      string
	InnerDepth  float64
	CenterDepth float64
	OuterDepth  float64
	Odometer    float64 // 新的累计里程读数 (km)
	ImageRef    *string
	Date        time.Time
	ConfirmZero bool // 存在 0 读数时必须显式确认
}

// RecordInspection 录入一条巡检并推进累计里程。
// 校验全部在持久化之前完成，失败时不产生任何写入。
func (s *TireService) RecordInspection(ctx context.Context, in RecordInspectionInput) (*models.Inspection, error) {
	tire, err := s.tires.GetByID(ctx, in.TireID)
	if err != nil {
		return nil, err
	}

	for field, depth := range map[string]float64{
		"inner_depth":  in.InnerDepth,
		"center_depth": in.CenterDepth,
		"outer_depth":  in.OuterDepth,
	} {
		if depth < 0 || depth > tire.InitialDepth {
			return nil, models.NewValidationError(field,
				fmt.Sprintf("must be within [0, %.1f]", tire.InitialDepth))
		}
	}

	// 0 有歧义（磨穿 vs 误录），必须操作员确认
	if (in.InnerDepth == 0 || in.CenterDepth == 0 || in.OuterDepth == 0) && !in.ConfirmZero {
		return nil, models.ErrZeroDepthNeedsConfirm
	}

	// 累计里程单调不减
	if in.Odometer < tire.DistanceTraveled {
		return nil, models.NewValidationError("odometer",
			fmt.Sprintf("must not decrease (current %.0f km)", tire.DistanceTraveled))
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	inspection := &models.Inspection{
		TireID:      tire.ID,
		InnerDepth:  in.InnerDepth,
		CenterDepth: in.CenterDepth,
		OuterDepth:  in.OuterDepth,
		ImageRef:    in.ImageRef,
		Date:        date,
	}
	if err := s.insps.Insert(ctx, inspection, in.Odometer); err != nil {
		return nil, err
	}

	s.logger.Info("Inspection recorded",
		zap.String("tire_id", tire.ID),
		zap.Float64("odometer", in.Odometer),
	)
	if s.wsHub != nil {
		s.wsHub.BroadcastInspection(tire.VehicleID, inspection)
	}
	return inspection, nil
}

// BatchItemResult 批量巡检单项结果
type BatchItemResult struct {
	TireID     string             `json:"tire_id"`
	Inspection *models.Inspection `json:"inspection,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// RecordInspectionBatch 批量录入巡检：尽力而为，不回滚已成功项，
// 单项失败逐条上报，由操作员针对失败项重试。
func (s *TireService) RecordInspectionBatch(ctx context.Context, items []RecordInspectionInput) []BatchItemResult {
	results := make([]BatchItemResult, 0, len(items))
	for _, item := range items {
		res := BatchItemResult{TireID: item.TireID}
		inspection, err := s.RecordInspection(ctx, item)
		if err != nil {
			res.Error = err.Error()
			s.logger.Warn("Batch inspection item failed",
				zap.String("tire_id", item.TireID),
				zap.Error(err),
			)
		} else {
			res.Inspection = inspection
		}
		results = append(results, res)
	}
	return results
}

// DeleteInspection 删除指定日期的单条巡检（唯一允许的历史撤回）
func (s *TireService) DeleteInspection(ctx context.Context, tireID string, date time.Time) error {
	if _, err := s.tires.GetByID(ctx, tireID); err != nil {
		return err
	}
	if err := s.insps.DeleteByTireAndDate(ctx, tireID, date); err != nil {
		return err
	}
	s.logger.Info("Inspection deleted",
		zap.String("tire_id", tireID),
		zap.Time("date", date),
	)
	return nil
}

// TransitionInput 生命周期流转输入
type TransitionInput struct {
	Stage       models.Stage
	TreadDesign string
	RetreadCost *decimal.Decimal
	Date        time.Time
}

// Transition 执行一次生命周期流转：内存状态机校验通过后，
// 生命周期条目与翻新费用在同一事务内落库。
func (s *TireService) Transition(ctx context.Context, tireID string, in TransitionInput) (*lifecycle.TransitionResult, error) {
	tire, err := s.tires.GetByID(ctx, tireID)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	result, err := lifecycle.Transition(tire, lifecycle.TransitionInput{
		Stage:       in.Stage,
		Date:        date,
		TreadDesign: in.TreadDesign,
		RetreadCost: in.RetreadCost,
	})
	if err != nil {
		return nil, err
	}

	if err := s.tires.AppendTransition(ctx, tireID, &result.LifeEntry, result.CostEntry); err != nil {
		return nil, err
	}

	s.logger.Info("Lifecycle transition",
		zap.String("tire_id", tireID),
		zap.String("stage", string(in.Stage)),
	)
	if s.wsHub != nil {
		s.wsHub.BroadcastLifecycle(tire.VehicleID, result.LifeEntry)
	}
	return result, nil
}

// LegalNextStages 当前阶段的合法去向（供表单下拉）
func (s *TireService) LegalNextStages(ctx context.Context, tireID string) ([]models.Stage, error) {
	tire, err := s.tires.GetByID(ctx, tireID)
	if err != nil {
		return nil, err
	}
	return lifecycle.LegalNextStages(tire.CurrentStage()), nil
}
