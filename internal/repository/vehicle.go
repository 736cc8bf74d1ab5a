package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/treadtrack/treadtrack/internal/models"
)

// VehicleRepository 车辆数据仓库
type VehicleRepository struct {
	db *DB
}

// NewVehicleRepository 创建车辆仓库
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create 创建车辆
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	query := `
		INSERT INTO vehicles (id, plate, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	now := time.Now()
	_, err := r.db.Pool.Exec(ctx, query, vehicle.ID, vehicle.Plate, vehicle.Name, now, now)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	return nil
}

// GetByID 通过 ID 获取车辆
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	query := `
		SELECT id, plate, name, created_at, updated_at
		FROM vehicles WHERE id = $1
	`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByPlate 通过车牌获取车辆
func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	query := `
		SELECT id, plate, name, created_at, updated_at
		FROM vehicles WHERE plate = $1
	`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, plate))
}

// List 获取所有车辆
func (r *VehicleRepository) List(ctx context.Context) ([]*models.Vehicle, error) {
	query := `
		SELECT id, plate, name, created_at, updated_at
		FROM vehicles ORDER BY plate
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v := &models.Vehicle{}
		if err := rows.Scan(&v.ID, &v.Plate, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (r *VehicleRepository) scanOne(row pgx.Row) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(&v.ID, &v.Plate, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}
