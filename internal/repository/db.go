package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateVehicles,
		migrationCreateTires,
		migrationCreateCostEntries,
		migrationCreateLifeEntries,
		migrationCreateInspections,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// 数据库迁移 SQL
const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id UUID PRIMARY KEY,
    plate VARCHAR(20) NOT NULL UNIQUE,
    name VARCHAR(255) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vehicles_plate ON vehicles(plate);
`

const migrationCreateTires = `
CREATE TABLE IF NOT EXISTS tires (
    id UUID PRIMARY KEY,
    vehicle_id UUID NOT NULL REFERENCES vehicles(id),
    brand VARCHAR(100) NOT NULL DEFAULT '',
    dimension VARCHAR(50) NOT NULL DEFAULT '',
    -- NULL=完全未分配, '0'=库存哨兵, 其余为具体槽位编号
    position_slot VARCHAR(10),
    initial_depth DOUBLE PRECISION NOT NULL,
    distance_traveled DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tires_vehicle_id ON tires(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_tires_position_slot ON tires(vehicle_id, position_slot);
`

// 费用台账：仅追加，id 即插入顺序
const migrationCreateCostEntries = `
CREATE TABLE IF NOT EXISTS cost_entries (
    id BIGSERIAL PRIMARY KEY,
    tire_id UUID NOT NULL REFERENCES tires(id),
    amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
    entry_date TIMESTAMP WITH TIME ZONE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_cost_entries_tire_id ON cost_entries(tire_id);
`

// 生命周期历史：仅追加，末条为当前阶段
const migrationCreateLifeEntries = `
CREATE TABLE IF NOT EXISTS life_entries (
    id BIGSERIAL PRIMARY KEY,
    tire_id UUID NOT NULL REFERENCES tires(id),
    stage VARCHAR(16) NOT NULL,
    tread_design VARCHAR(255) NOT NULL DEFAULT '',
    entry_date TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_life_entries_tire_id ON life_entries(tire_id);
`

// 巡检记录：三点深度测量，按日期可删除单条（系统内唯一允许的撤回）
const migrationCreateInspections = `
CREATE TABLE IF NOT EXISTS inspections (
    id BIGSERIAL PRIMARY KEY,
    tire_id UUID NOT NULL REFERENCES tires(id),
    inner_depth DOUBLE PRECISION NOT NULL,
    center_depth DOUBLE PRECISION NOT NULL,
    outer_depth DOUBLE PRECISION NOT NULL,
    image_ref TEXT,
    recorded_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inspections_tire_id ON inspections(tire_id);
CREATE INDEX IF NOT EXISTS idx_inspections_recorded_at ON inspections(recorded_at);
`
