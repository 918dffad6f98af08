package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

func TestConsolidateFundePorEmail(t *testing.T) {
	candidates := []CandidateLead{
		{Name: "Maria", Email: "maria@example.com", Status: entity.StatusNew, Notes: "Importado Hotmart: Carrinho abandonado"},
		{Name: "Maria S.", Email: "MARIA@example.com", Status: entity.StatusClosedWon, Value: 297.0, Notes: "Importado Hotmart: Compra aprovada"},
		{Name: "José", Email: "jose@example.com", Status: entity.StatusNew},
	}

	final, stats, err := Consolidate(candidates)
	assert.NoError(t, err)
	assert.Len(t, final, 2)

	// A venda ganha vence o carrinho abandonado do mesmo comprador.
	assert.Equal(t, "Maria S.", final[0].Name)
	assert.Equal(t, entity.StatusClosedWon, final[0].Status)
	assert.Equal(t, 297.0, final[0].Value)

	// A ordem de primeira aparição é preservada.
	assert.Equal(t, "jose@example.com", final[1].Email)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Won)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 297.0, stats.TotalWonValue)
}

// Um carrinho abandonado (new) não é sobrescrito por uma recusa posterior:
// o follow-up ainda vale.
func TestConsolidateAbandonoVenceRecusa(t *testing.T) {
	candidates := []CandidateLead{
		{Name: "Maria", Email: "maria@example.com", Status: entity.StatusNew, Notes: "Importado Hotmart: Carrinho abandonado"},
		{Name: "Maria", Email: "maria@example.com", Status: entity.StatusClosedLost, Notes: "Importado Hotmart: Recusado"},
	}

	final, stats, err := Consolidate(candidates)
	assert.NoError(t, err)
	assert.Len(t, final, 1)
	assert.Equal(t, entity.StatusNew, final[0].Status)
	assert.Equal(t, 1, stats.Abandoned)
}

// Cliente que comprou duas vezes sai com a soma dos valores, não com o valor
// de uma transação só.
func TestConsolidateAcumulaValorDeVendas(t *testing.T) {
	candidates := []CandidateLead{
		{Email: "maria@example.com", Status: entity.StatusClosedWon, Value: 100.10, Notes: "Importado Hotmart: Compra aprovada"},
		{Email: "maria@example.com", Status: entity.StatusClosedWon, Value: 200.25, Notes: "Importado Hotmart: Compra aprovada"},
		{Email: "maria@example.com", Status: entity.StatusClosedLost, Value: 50.0},
	}

	final, stats, err := Consolidate(candidates)
	assert.NoError(t, err)
	assert.Len(t, final, 1)
	assert.Equal(t, entity.StatusClosedWon, final[0].Status)
	assert.Equal(t, 300.35, final[0].Value)
	assert.Equal(t, 300.35, stats.TotalWonValue)
}

func TestConsolidateSemCandidatos(t *testing.T) {
	_, _, err := Consolidate(nil)
	assert.ErrorIs(t, err, ErrNoLeads)

	// Candidatos sem e-mail não formam identidade.
	_, _, err = Consolidate([]CandidateLead{{Name: "Maria", Email: "   "}})
	assert.ErrorIs(t, err, ErrNoLeads)
}

func TestConsolidateStats(t *testing.T) {
	date := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	candidates := []CandidateLead{
		{Email: "a@example.com", Status: entity.StatusClosedWon, Value: 100, Notes: "Importado X: Compra aprovada", OccurredAt: &date},
		{Email: "b@example.com", Status: entity.StatusNew, Notes: "Importado X: Carrinho abandonado"},
		{Email: "c@example.com", Status: entity.StatusClosedLost, Notes: "Importado X: Reembolsado"},
		{Email: "d@example.com", Status: entity.StatusNew, Notes: ""},
	}

	_, stats, err := Consolidate(candidates)
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Won)
	assert.Equal(t, 1, stats.Abandoned)
	assert.Equal(t, 1, stats.Refunded)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 100.0, stats.TotalWonValue)
	assert.Equal(t, 1, stats.WithKnownDate)
}
