package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

func TestDetectMapping(t *testing.T) {
	sample := RawRow{
		"Nome":              "",
		"Email":             "",
		"Produto":           "",
		"Status da Compra":  "",
		"Valor Líquido":     "",
		"Data de liberação": "",
	}

	m := DetectMapping(sample)
	assert.Equal(t, "Nome", m.Name)
	assert.Equal(t, "Email", m.Email)
	assert.Equal(t, "Produto", m.Product)
	assert.Equal(t, "Status da Compra", m.Status)
	assert.Equal(t, "Valor Líquido", m.Value)
	assert.Equal(t, "Data de liberação", m.Date)
	assert.Equal(t, "", m.Phone)
}

// Preset salvo contra um arquivo antigo: coluna que não existe mais volta
// para "não mapeado".
func TestSanitizeResetaColunasAusentes(t *testing.T) {
	m := ColumnMapping{Name: "Nome", Email: "Email", Value: "Valor Antigo"}

	clean := m.Sanitize([]string{"Nome", "Email"})
	assert.Equal(t, "Nome", clean.Name)
	assert.Equal(t, "Email", clean.Email)
	assert.Equal(t, "", clean.Value)
}

func TestProcessWithMappingCaminhoManual(t *testing.T) {
	rows := []RawRow{
		{
			"Comprador": "Maria Silva",
			"Contato":   "maria@example.com",
			"Oferta":    "ebook",
			"Situação":  "pago",
			"Preço":     "49,90",
		},
	}
	m := ColumnMapping{
		Name:    "Comprador",
		Email:   "Contato",
		Product: "Oferta",
		Status:  "Situação",
		Value:   "Preço",
	}

	candidates := ProcessWithMapping(rows, m, "Kiwify")
	assert.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "Maria Silva", c.Name)
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, entity.ProductEbook, c.Product)
	assert.Equal(t, entity.StatusClosedWon, c.Status)
	assert.Equal(t, 49.90, c.Value)
	assert.Equal(t, "Kiwify", c.Source)
	assert.Equal(t, "Importado Kiwify: pago", c.Notes)
	assert.Equal(t, EventPaid, c.Event)
}

// O caminho manual não usa as heurísticas de palavra-chave: produto só
// resolve por dicionário exato ou nome literal do catálogo, status só por
// dicionário exato ou nome do estágio. O resto degrada para os defaults.
func TestProcessWithMappingSemHeuristicas(t *testing.T) {
	rows := []RawRow{
		{
			"Contato": "x@example.com",
			"Oferta":  "Curso Novo de IA Generativa", // "curso" ativaria a regra no caminho automático
			"Estado":  "pagamento pendente via boleto",
		},
	}
	m := ColumnMapping{Email: "Contato", Product: "Oferta", Status: "Estado"}

	candidates := ProcessWithMapping(rows, m, "Planilha")
	assert.Len(t, candidates, 1)
	assert.Equal(t, entity.DefaultProduct, candidates[0].Product)
	assert.Equal(t, entity.StatusNew, candidates[0].Status)
}

// O estágio do funil pelo nome literal também vale no caminho manual.
func TestProcessWithMappingStatusLiteral(t *testing.T) {
	rows := []RawRow{
		{"Contato": "x@example.com", "Estado": "closed-won"},
	}
	m := ColumnMapping{Email: "Contato", Status: "Estado"}

	candidates := ProcessWithMapping(rows, m, "Planilha")
	assert.Len(t, candidates, 1)
	assert.Equal(t, entity.StatusClosedWon, candidates[0].Status)
}

func TestProcessWithMappingDescartaLinhaSemIdentidade(t *testing.T) {
	rows := []RawRow{
		{"Situação": "pago", "Preço": "100,00"},
	}
	m := ColumnMapping{Name: "Comprador", Email: "Contato", Status: "Situação", Value: "Preço"}

	assert.Empty(t, ProcessWithMapping(rows, m, "Planilha"))
}

// Só as colunas mapeadas contam: o resolvedor automático não entra mesmo
// quando a planilha tem colunas que ele reconheceria.
func TestProcessWithMappingIgnoraColunasNaoMapeadas(t *testing.T) {
	rows := []RawRow{
		{
			"Nome":    "Maria",
			"Email":   "maria@example.com",
			"Valor":   "999,00",
			"Contato": "outro@example.com",
		},
	}
	m := ColumnMapping{Email: "Contato"}

	candidates := ProcessWithMapping(rows, m, "Planilha")
	assert.Len(t, candidates, 1)
	assert.Equal(t, "outro@example.com", candidates[0].Email)
	assert.Equal(t, 0.0, candidates[0].Value)
	assert.Equal(t, "Outro", candidates[0].Name)
}

func TestColumnMappingRoundTripDePreset(t *testing.T) {
	m := ColumnMapping{Name: "Nome", Email: "Email", Date: "Data da Compra"}
	assert.Equal(t, m, MappingFromMap(m.ToMap()))
}
