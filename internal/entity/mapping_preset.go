package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MappingPreset é um mapeamento manual de colunas salvo com nome, para
// reaproveitar em planilhas do mesmo fornecedor. Pertence a um usuário.
type MappingPreset struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Name      string            `json:"name"`
	Columns   map[string]string `json:"columns"` // campo lógico -> coluna ("" = não mapeado)
	CreatedAt time.Time         `json:"created_at"`
}

func NewMappingPreset(ownerID, name string, columns map[string]string) *MappingPreset {
	return &MappingPreset{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Columns:   columns,
		CreatedAt: time.Now(),
	}
}

type MappingPresetRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*MappingPreset, error)
	Create(ctx context.Context, preset *MappingPreset) error
	Delete(ctx context.Context, ownerID, id string) error
}
