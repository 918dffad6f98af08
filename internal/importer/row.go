package importer

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

// RawRow é uma linha da planilha como veio do arquivo: nome de coluna ->
// valor da célula (string ou número). Só existe durante o import.
type RawRow map[string]any

// CandidateLead é uma linha já normalizada, candidata a virar lead.
// Candidatos com o mesmo e-mail ainda serão fundidos pela consolidação.
type CandidateLead struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	Product    entity.ProductType `json:"product"`
	Status     entity.LeadStatus  `json:"status"`
	Value      float64            `json:"value"`
	Source     string             `json:"source,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	OccurredAt *time.Time         `json:"occurred_at,omitempty"`

	// Event é a classificação do evento da linha (pago, carrinho abandonado,
	// reembolso, recusa). Alimenta estatísticas e follow-up, nunca o Status.
	Event EventKind `json:"event,omitempty"`
}

// cellString converte o valor cru de uma célula para string, sem zeros à
// direita em números.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// sortedKeys devolve as chaves da linha em ordem estável. A iteração de map
// em Go é aleatória e o matching por fragmento precisa ser determinístico.
func sortedKeys(row RawRow) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
