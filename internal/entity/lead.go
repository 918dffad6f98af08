package entity

import (
	"context"
	"time"
)

// LeadStatus é o estágio do lead no funil de vendas.
type LeadStatus string

const (
	StatusNew            LeadStatus = "new"
	StatusInitialContact LeadStatus = "initial-contact"
	StatusProposalSent   LeadStatus = "proposal-sent"
	StatusNegotiation    LeadStatus = "negotiation"
	StatusClosedWon      LeadStatus = "closed-won"
	StatusClosedLost     LeadStatus = "closed-lost"
)

// statusPriority decide qual candidato "vence" na consolidação de um import.
// Um carrinho abandonado (new) não pode ser sobrescrito por uma recusa
// posterior do mesmo comprador: o follow-up ainda vale. Venda ganha vence
// qualquer coisa que chegue depois.
var statusPriority = map[LeadStatus]int{
	StatusClosedWon:      6,
	StatusNew:            5,
	StatusProposalSent:   4,
	StatusNegotiation:    3,
	StatusInitialContact: 2,
	StatusClosedLost:     1,
}

// Priority retorna a prioridade do status na consolidação (maior vence).
func (s LeadStatus) Priority() int {
	return statusPriority[s]
}

// IsValid reporta se o valor é um dos estágios conhecidos do funil.
func (s LeadStatus) IsValid() bool {
	_, ok := statusPriority[s]
	return ok
}

// ParseLeadStatus faz o match literal com o nome do estágio (ex: "closed-won").
func ParseLeadStatus(raw string) (LeadStatus, bool) {
	s := LeadStatus(raw)
	if s.IsValid() {
		return s, true
	}
	return "", false
}

type Lead struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Product    ProductType `json:"product"`
	Status     LeadStatus  `json:"status"`
	Value      float64     `json:"value"`
	Source     string      `json:"source,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	OccurredAt *time.Time  `json:"occurred_at,omitempty"`
	OwnerID    string      `json:"owner_id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	BulkInsert(ctx context.Context, ownerID string, leads []*Lead) error
}
