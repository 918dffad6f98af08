package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert grava um lead capturado avulso (formulário do site). E-mail é a
// chave de identidade: dados novos preenchem campos vazios, não sobrescrevem.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (email, name, phone, source, owner_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (owner_id, email)
		DO UPDATE SET
			name = COALESCE(EXCLUDED.name, leads.name),
			phone = COALESCE(EXCLUDED.phone, leads.phone),
			source = COALESCE(EXCLUDED.source, leads.source),
			updated_at = NOW()
		RETURNING id, created_at, updated_at, status
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		nullString(lead.Source),
		lead.OwnerID,
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.Status,
	)

	return err
}

// BulkInsert grava um lote de import confirmado de uma vez, via COPY.
func (r *LeadRepository) BulkInsert(ctx context.Context, ownerID string, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	txn, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn(
		"leads",
		"id", "name", "email", "phone", "product", "status", "value",
		"source", "notes", "occurred_at", "owner_id", "created_at", "updated_at",
	))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, lead := range leads {
		_, err = stmt.ExecContext(ctx,
			lead.ID,
			lead.Name,
			lead.Email,
			nullString(lead.Phone),
			string(lead.Product),
			string(lead.Status),
			lead.Value,
			nullString(lead.Source),
			nullString(lead.Notes),
			lead.OccurredAt,
			ownerID,
			lead.CreatedAt,
			lead.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("copy lead %s: %w", lead.Email, err)
		}
	}

	// Exec vazio finaliza o COPY.
	if _, err = stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush copy: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}

	return txn.Commit()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
