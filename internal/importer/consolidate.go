package importer

import (
	"errors"
	"math"
	"strings"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

// ErrNoLeads sinaliza que a consolidação não produziu nenhum registro —
// condição visível ao usuário ("nada para importar, confira o mapeamento de
// colunas"), distinta de um erro de processamento.
var ErrNoLeads = errors.New("nenhum lead encontrado na planilha")

// Stats são os contadores agregados do lote final consolidado.
type Stats struct {
	Total         int     `json:"total"`
	Won           int     `json:"won"`
	Abandoned     int     `json:"abandoned"`
	Refunded      int     `json:"refunded"`
	Pending       int     `json:"pending"`
	TotalWonValue float64 `json:"total_won_value"`
	WithKnownDate int     `json:"with_known_date"`
}

// group carrega o estado do fold de consolidação para uma identidade:
// o melhor candidato até agora e o valor acumulado de vendas ganhas.
type group struct {
	best     CandidateLead
	wonTotal float64
}

// Consolidate funde os candidatos que compartilham o mesmo e-mail
// (case-insensitive) em um registro final por comprador.
//
// O candidato de maior prioridade de status fica com os campos não
// monetários. O valor de cada candidato closed-won é acumulado no total da
// identidade e nunca zerado — um cliente que comprou duas vezes sai com a
// soma, não com o valor de uma transação.
func Consolidate(candidates []CandidateLead) ([]CandidateLead, Stats, error) {
	groups := make(map[string]*group)
	var order []string

	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Email))
		if key == "" {
			continue
		}

		g, exists := groups[key]
		if !exists {
			g = &group{best: c}
			if c.Status == entity.StatusClosedWon {
				g.wonTotal = c.Value
			}
			groups[key] = g
			order = append(order, key)
			continue
		}

		if c.Status == entity.StatusClosedWon {
			g.wonTotal = math.Round((g.wonTotal+c.Value)*100) / 100
		}
		// Cada passo do fold produz um novo par; o candidato anterior não é
		// alterado, só substituído quando perde na prioridade.
		if c.Status.Priority() > g.best.Status.Priority() {
			g.best = c
		}
	}

	final := make([]CandidateLead, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rec := g.best
		if rec.Status == entity.StatusClosedWon {
			rec.Value = g.wonTotal
		}
		final = append(final, rec)
	}

	if len(final) == 0 {
		return nil, Stats{}, ErrNoLeads
	}

	return final, computeStats(final), nil
}

// computeStats reavalia o conjunto final (não os candidatos pré-fusão),
// reconhecendo o evento pelo texto da nota de importação de cada registro.
func computeStats(final []CandidateLead) Stats {
	stats := Stats{Total: len(final)}
	for _, rec := range final {
		switch ClassifyEvent(rec.Notes) {
		case EventPaid:
			stats.Won++
		case EventAbandoned:
			stats.Abandoned++
		case EventRefund:
			stats.Refunded++
		default:
			stats.Pending++
		}
		if rec.Status == entity.StatusClosedWon {
			stats.TotalWonValue = math.Round((stats.TotalWonValue+rec.Value)*100) / 100
		}
		if rec.OccurredAt != nil {
			stats.WithKnownDate++
		}
	}
	return stats
}
