package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

type MappingPresetRepository struct {
	DB *sql.DB
}

func NewMappingPresetRepository(db *sql.DB) *MappingPresetRepository {
	return &MappingPresetRepository{DB: db}
}

func (r *MappingPresetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.MappingPreset, error) {
	query := `
		SELECT id, owner_id, name, columns, created_at
		FROM mapping_presets
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*entity.MappingPreset
	for rows.Next() {
		var p entity.MappingPreset
		var columns []byte
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &columns, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(columns, &p.Columns); err != nil {
			return nil, fmt.Errorf("preset %s: colunas corrompidas: %w", p.ID, err)
		}
		presets = append(presets, &p)
	}
	return presets, rows.Err()
}

func (r *MappingPresetRepository) Create(ctx context.Context, preset *entity.MappingPreset) error {
	columns, err := json.Marshal(preset.Columns)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO mapping_presets (id, owner_id, name, columns, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.DB.ExecContext(ctx, query, preset.ID, preset.OwnerID, preset.Name, columns, preset.CreatedAt)
	return err
}

func (r *MappingPresetRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM mapping_presets WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
