package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/treadtrack/treadtrack/internal/models"
)

// TireRepository 轮胎数据仓库。
// 三个历史序列（费用台账、生命周期、巡检）按插入 id 升序加载，
// 对上层表现为仅追加日志。
type TireRepository struct {
	db *DB
}

// NewTireRepository 创建轮胎仓库
func NewTireRepository(db *DB) *TireRepository {
	return &TireRepository{db: db}
}

// Create 创建轮胎，并写入隐式的 new 阶段首条生命周期记录
func (r *TireRepository) Create(ctx context.Context, tire *models.Tire) error {
	if tire.ID == "" {
		tire.ID = uuid.NewString()
	}
	if tire.InitialDepth <= 0 {
		tire.InitialDepth = models.DefaultInitialDepthMM
	}

	now := time.Now()
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tires (id, vehicle_id, brand, dimension, position_slot, initial_depth, distance_traveled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, query,
		tire.ID,
		tire.VehicleID,
		tire.Brand,
		tire.Dimension,
		tire.PositionSlot,
		tire.InitialDepth,
		tire.DistanceTraveled,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert tire: %w", err)
	}

	// 生命周期历史不为空的不变式：创建即写入 new
	lifeEntry := models.LifeEntry{TireID: tire.ID, Stage: models.StageNew, Date: now}
	err = tx.QueryRow(ctx,
		`INSERT INTO life_entries (tire_id, stage, tread_design, entry_date) VALUES ($1, $2, $3, $4) RETURNING id`,
		lifeEntry.TireID, lifeEntry.Stage, lifeEntry.TreadDesign, lifeEntry.Date,
	).Scan(&lifeEntry.ID)
	if err != nil {
		return fmt.Errorf("insert initial life entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	tire.LifeHistory = append(tire.LifeHistory, lifeEntry)
	tire.CreatedAt = now
	tire.UpdatedAt = now
	return nil
}

// GetByID 通过 ID 获取轮胎（含全部历史序列）
func (r *TireRepository) GetByID(ctx context.Context, id string) (*models.Tire, error) {
	query := `
		SELECT id, vehicle_id, brand, dimension, position_slot, initial_depth, distance_traveled, created_at, updated_at
		FROM tires WHERE id = $1
	`
	tire := &models.Tire{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&tire.ID,
		&tire.VehicleID,
		&tire.Brand,
		&tire.Dimension,
		&tire.PositionSlot,
		&tire.InitialDepth,
		&tire.DistanceTraveled,
		&tire.CreatedAt,
		&tire.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get tire by id: %w", err)
	}

	if err := r.loadHistories(ctx, tire); err != nil {
		return nil, err
	}
	return tire, nil
}

// ListByVehicleID 获取车辆的全部轮胎（含历史序列）
func (r *TireRepository) ListByVehicleID(ctx context.Context, vehicleID string) ([]*models.Tire, error) {
	query := `
		SELECT id, vehicle_id, brand, dimension, position_slot, initial_depth, distance_traveled, created_at, updated_at
		FROM tires WHERE vehicle_id = $1 ORDER BY created_at, id
	`
	rows, err := r.db.Pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list tires: %w", err)
	}
	defer rows.Close()

	var tires []*models.Tire
	for rows.Next() {
		tire := &models.Tire{}
		err := rows.Scan(
			&tire.ID,
			&tire.VehicleID,
			&tire.Brand,
			&tire.Dimension,
			&tire.PositionSlot,
			&tire.InitialDepth,
			&tire.DistanceTraveled,
			&tire.CreatedAt,
			&tire.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tire: %w", err)
		}
		tires = append(tires, tire)
	}
	rows.Close()

	for _, tire := range tires {
		if err := r.loadHistories(ctx, tire); err != nil {
			return nil, err
		}
	}
	return tires, nil
}

// ListAll 获取全部轮胎（含历史序列），供全车队看板使用
func (r *TireRepository) ListAll(ctx context.Context) ([]*models.Tire, error) {
	query := `
		SELECT id, vehicle_id, brand, dimension, position_slot, initial_depth, distance_traveled, created_at, updated_at
		FROM tires ORDER BY created_at, id
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all tires: %w", err)
	}
	defer rows.Close()

	var tires []*models.Tire
	for rows.Next() {
		tire := &models.Tire{}
		err := rows.Scan(
			&tire.ID,
			&tire.VehicleID,
			&tire.Brand,
			&tire.Dimension,
			&tire.PositionSlot,
			&tire.InitialDepth,
			&tire.DistanceTraveled,
			&tire.CreatedAt,
			&tire.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tire: %w", err)
		}
		tires = append(tires, tire)
	}
	rows.Close()

	for _, tire := range tires {
		if err := r.loadHistories(ctx, tire); err != nil {
			return nil, err
		}
	}
	return tires, nil
}

// AppendTransition 持久化一次生命周期流转：生命周期条目与（可选的）
// 翻新费用条目在同一事务内写入，失败时轮胎记录无任何变化。
func (r *TireRepository) AppendTransition(ctx context.Context, tireID string, lifeEntry *models.LifeEntry, costEntry *models.CostEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO life_entries (tire_id, stage, tread_design, entry_date) VALUES ($1, $2, $3, $4) RETURNING id`,
		tireID, lifeEntry.Stage, lifeEntry.TreadDesign, lifeEntry.Date,
	).Scan(&lifeEntry.ID)
	if err != nil {
		return fmt.Errorf("insert life entry: %w", err)
	}
	lifeEntry.TireID = tireID

	if costEntry != nil {
		err = tx.QueryRow(ctx,
			`INSERT INTO cost_entries (tire_id, amount, entry_date) VALUES ($1, $2, $3) RETURNING id`,
			tireID, costEntry.Amount.String(), costEntry.Date,
		).Scan(&costEntry.ID)
		if err != nil {
			return fmt.Errorf("insert cost entry: %w", err)
		}
		costEntry.TireID = tireID
	}

	if _, err := tx.Exec(ctx, `UPDATE tires SET updated_at = NOW() WHERE id = $1`, tireID); err != nil {
		return fmt.Errorf("touch tire: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// AddCostEntry 追加一条费用（购置、维修等非流转费用）
func (r *TireRepository) AddCostEntry(ctx context.Context, entry *models.CostEntry) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO cost_entries (tire_id, amount, entry_date) VALUES ($1, $2, $3) RETURNING id`,
		entry.TireID, entry.Amount.String(), entry.Date,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert cost entry: %w", err)
	}
	return nil
}

// loadHistories 加载三个仅追加序列（按插入顺序）
func (r *TireRepository) loadHistories(ctx context.Context, tire *models.Tire) error {
	costRows, err := r.db.Pool.Query(ctx,
		`SELECT id, tire_id, amount::text, entry_date FROM cost_entries WHERE tire_id = $1 ORDER BY id`,
		tire.ID,
	)
	if err != nil {
		return fmt.Errorf("list cost entries: %w", err)
	}
	defer costRows.Close()
	for costRows.Next() {
		var e models.CostEntry
		var amount string
		if err := costRows.Scan(&e.ID, &e.TireID, &amount, &e.Date); err != nil {
			return fmt.Errorf("scan cost entry: %w", err)
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("parse cost amount: %w", err)
		}
		tire.CostLedger = append(tire.CostLedger, e)
	}
	costRows.Close()

	lifeRows, err := r.db.Pool.Query(ctx,
		`SELECT id, tire_id, stage, tread_design, entry_date FROM life_entries WHERE tire_id = $1 ORDER BY id`,
		tire.ID,
	)
	if err != nil {
		return fmt.Errorf("list life entries: %w", err)
	}
	defer lifeRows.Close()
	for lifeRows.Next() {
		var e models.LifeEntry
		if err := lifeRows.Scan(&e.ID, &e.TireID, &e.Stage, &e.TreadDesign, &e.Date); err != nil {
			return fmt.Errorf("scan life entry: %w", err)
		}
		tire.LifeHistory = append(tire.LifeHistory, e)
	}
	lifeRows.Close()

	inspRows, err := r.db.Pool.Query(ctx,
		`SELECT id, tire_id, inner_depth, center_depth, outer_depth, image_ref, recorded_at FROM inspections WHERE tire_id = $1 ORDER BY id`,
		tire.ID,
	)
	if err != nil {
		return fmt.Errorf("list inspections: %w", err)
	}
	defer inspRows.Close()
	for inspRows.Next() {
		var e models.Inspection
		if err := inspRows.Scan(&e.ID, &e.TireID, &e.InnerDepth, &e.CenterDepth, &e.OuterDepth, &e.ImageRef, &e.Date); err != nil {
			return fmt.Errorf("scan inspection: %w", err)
		}
		tire.Inspections = append(tire.Inspections, e)
	}
	return nil
}
