package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/treadtrack/treadtrack/internal/models"
)

// InspectionRepository 巡检数据仓库
type InspectionRepository struct {
	db *DB
}

// NewInspectionRepository 创建巡检仓库
func NewInspectionRepository(db *DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// Insert 写入一条巡检并同步更新轮胎累计里程，同一事务内完成。
// 里程单调性由上层校验，这里只负责原子写入。
func (r *InspectionRepository) Insert(ctx context.Context, inspection *models.Inspection, newDistance float64) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO inspections (tire_id, inner_depth, center_depth, outer_depth, image_ref, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		inspection.TireID,
		inspection.InnerDepth,
		inspection.CenterDepth,
		inspection.OuterDepth,
		inspection.ImageRef,
		inspection.Date,
	).Scan(&inspection.ID)
	if err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE tires SET distance_traveled = $1, updated_at = NOW() WHERE id = $2`,
		newDistance, inspection.TireID,
	)
	if err != nil {
		return fmt.Errorf("update tire distance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// DeleteByTireAndDate 删除指定轮胎在指定日期的那一条巡检。
// 这是系统内唯一允许的历史撤回。
func (r *InspectionRepository) DeleteByTireAndDate(ctx context.Context, tireID string, date time.Time) error {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM inspections WHERE tire_id = $1 AND recorded_at = $2`,
		tireID, date,
	)
	if err != nil {
		return fmt.Errorf("delete inspection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
