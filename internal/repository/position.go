package repository

import (
	"context"
	"fmt"

	"github.com/treadtrack/treadtrack/internal/models"
)

// PositionRepository 槽位分配数据仓库
type PositionRepository struct {
	db *DB
}

// NewPositionRepository 创建槽位仓库
func NewPositionRepository(db *DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// CommitAssignments 整车一次性提交槽位分配：覆盖该车全部轮胎的槽位，
// 载荷未覆盖的轮胎归为未分配。单事务执行，对单车而言是原子提交。
func (r *PositionRepository) CommitAssignments(ctx context.Context, vehicleID string, assigned map[string]string, inventory []string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// 先全部清空，再按载荷落位
	_, err = tx.Exec(ctx,
		`UPDATE tires SET position_slot = NULL, updated_at = NOW() WHERE vehicle_id = $1`,
		vehicleID,
	)
	if err != nil {
		return fmt.Errorf("clear positions: %w", err)
	}

	for slot, tireID := range assigned {
		tag, err := tx.Exec(ctx,
			`UPDATE tires SET position_slot = $1, updated_at = NOW() WHERE id = $2 AND vehicle_id = $3`,
			slot, tireID, vehicleID,
		)
		if err != nil {
			return fmt.Errorf("assign slot %s: %w", slot, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("assign slot %s: tire %s not on vehicle: %w", slot, tireID, models.ErrNotFound)
		}
	}

	for _, tireID := range inventory {
		tag, err := tx.Exec(ctx,
			`UPDATE tires SET position_slot = $1, updated_at = NOW() WHERE id = $2 AND vehicle_id = $3`,
			models.SlotInventory, tireID, vehicleID,
		)
		if err != nil {
			return fmt.Errorf("move tire %s to inventory: %w", tireID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("move tire %s to inventory: not on vehicle: %w", tireID, models.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
