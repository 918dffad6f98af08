package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

func TestBuildCandidateLinhaCompleta(t *testing.T) {
	b := NewBuilder("Hotmart", nil)

	row := RawRow{
		"Nome":              "Maria Silva",
		"Email":             "maria@example.com",
		"Telefone":          "+55 11 99999-0000",
		"Produto":           "Mentoria IDEA",
		"Status":            "Pagamento Aprovado",
		"Valor Líquido":     "R$ 1.997,00",
		"Data de liberação": "25/12/2024 14:30",
	}

	c, ok := b.BuildCandidate(row)
	assert.True(t, ok)
	assert.Equal(t, "Maria Silva", c.Name)
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, "+55 11 99999-0000", c.Phone)
	assert.Equal(t, entity.ProductMentoriaGrupo, c.Product)
	assert.Equal(t, entity.StatusClosedWon, c.Status)
	assert.Equal(t, 1997.0, c.Value)
	assert.Equal(t, "Hotmart", c.Source)
	assert.Equal(t, "Importado Hotmart: Pagamento Aprovado", c.Notes)
	assert.Equal(t, EventPaid, c.Event)
	if assert.NotNil(t, c.OccurredAt) {
		assert.Equal(t, time.Date(2024, time.December, 25, 14, 30, 0, 0, time.UTC), *c.OccurredAt)
	}
}

// Linha sem nome e sem e-mail não é lead: descarte silencioso.
func TestBuildCandidateDescartaLinhaSemIdentidade(t *testing.T) {
	b := NewBuilder("Hotmart", nil)

	_, ok := b.BuildCandidate(RawRow{"Status": "paid", "Valor": "100,00"})
	assert.False(t, ok)

	_, ok = b.BuildCandidate(RawRow{})
	assert.False(t, ok)
}

func TestBuildCandidateFallbacksDeIdentidade(t *testing.T) {
	b := NewBuilder("Kiwify", nil)

	// Só e-mail: o nome é humanizado do local-part.
	c, ok := b.BuildCandidate(RawRow{"Email": "joao.silva@example.com"})
	assert.True(t, ok)
	assert.Equal(t, "Joao Silva", c.Name)

	// Só nome: o e-mail é sintetizado no domínio de import.
	c, ok = b.BuildCandidate(RawRow{"Nome": "Ana Paula"})
	assert.True(t, ok)
	assert.Equal(t, "anapaula@importado.crmidea.com.br", c.Email)
}

// Linha sem nada reconhecível além da identidade degrada para os defaults,
// nunca para erro.
func TestBuildCandidateDefaults(t *testing.T) {
	b := NewBuilder("Planilha", nil)

	c, ok := b.BuildCandidate(RawRow{"Email": "x@example.com", "Produto": "???", "Status": "???"})
	assert.True(t, ok)
	assert.Equal(t, entity.DefaultProduct, c.Product)
	assert.Equal(t, entity.StatusNew, c.Status)
	assert.Equal(t, 0.0, c.Value)
	assert.Nil(t, c.OccurredAt)
	assert.Equal(t, []string{"???"}, b.UnrecognizedProducts())
}

func TestBuildCandidateOverrideDeProduto(t *testing.T) {
	overrides := map[string]ProductOverride{
		"Oferta Secreta": {Target: entity.ProductImersao},
	}
	b := NewBuilder("Hotmart", overrides)

	c, ok := b.BuildCandidate(RawRow{"Email": "x@example.com", "Produto": "Oferta Secreta"})
	assert.True(t, ok)
	assert.Equal(t, entity.ProductImersao, c.Product)
	assert.Empty(t, b.UnrecognizedProducts())

	// O sentinela create-new não mapeia: o texto segue para o classificador
	// (e acaba na lista de não reconhecidos).
	b2 := NewBuilder("Hotmart", map[string]ProductOverride{
		"Oferta Secreta": {Target: entity.ProductCreateNew, NewProductName: "Oferta Secreta"},
	})
	c, ok = b2.BuildCandidate(RawRow{"Email": "x@example.com", "Produto": "Oferta Secreta"})
	assert.True(t, ok)
	assert.Equal(t, entity.DefaultProduct, c.Product)
	assert.Equal(t, []string{"Oferta Secreta"}, b2.UnrecognizedProducts())
}

func TestBuildCandidateProdutosNaoReconhecidosSemRepeticao(t *testing.T) {
	b := NewBuilder("Hotmart", nil)

	b.BuildCandidate(RawRow{"Email": "a@example.com", "Produto": "Misterioso"})
	b.BuildCandidate(RawRow{"Email": "b@example.com", "Produto": "Misterioso"})
	b.BuildCandidate(RawRow{"Email": "c@example.com", "Produto": "Outro Desconhecido"})

	assert.Equal(t, []string{"Misterioso", "Outro Desconhecido"}, b.UnrecognizedProducts())
}

func TestClassifyEvent(t *testing.T) {
	assert.Equal(t, EventAbandoned, ClassifyEvent("Carrinho abandonado"))
	assert.Equal(t, EventAbandoned, ClassifyEvent("abandoned_cart"))
	assert.Equal(t, EventRefund, ClassifyEvent("Reembolsado"))
	assert.Equal(t, EventRefund, ClassifyEvent("chargeback"))
	assert.Equal(t, EventRefused, ClassifyEvent("Pagamento recusado"))
	assert.Equal(t, EventPaid, ClassifyEvent("Compra aprovada"))
	assert.Equal(t, EventPaid, ClassifyEvent("paid"))
	assert.Equal(t, EventNone, ClassifyEvent(""))
	assert.Equal(t, EventNone, ClassifyEvent("pendente"))
}

// Status de pagamento em aberto não é venda: "paga" é substring de
// "pagamento" e o conjunto de pendência precisa vencer o de pago.
func TestClassifyEventPendenciaNaoEhVenda(t *testing.T) {
	assert.Equal(t, EventNone, ClassifyEvent("Aguardando pagamento"))
	assert.Equal(t, EventNone, ClassifyEvent("aguardando pagamento via boleto"))
	assert.Equal(t, EventNone, ClassifyEvent("pix gerado"))
	assert.Equal(t, EventNone, ClassifyEvent("boleto impresso"))
	assert.Equal(t, EventNone, ClassifyEvent("waiting_payment"))

	// As frases realmente pagas continuam pagas.
	assert.Equal(t, EventPaid, ClassifyEvent("Pagamento aprovado"))
	assert.Equal(t, EventPaid, ClassifyEvent("Venda paga"))
}

// Linha pendente atravessa o pipeline inteiro como lead em aberto, nunca
// inflando o contador de vendas do lote.
func TestBuildCandidatePendenteContaComoPendente(t *testing.T) {
	b := NewBuilder("Hotmart", nil)

	c, ok := b.BuildCandidate(RawRow{
		"Nome":   "Maria",
		"Email":  "maria@example.com",
		"Status": "Aguardando pagamento",
	})
	assert.True(t, ok)
	assert.Equal(t, EventNone, c.Event)

	final, stats, err := Consolidate([]CandidateLead{c})
	assert.NoError(t, err)
	assert.Len(t, final, 1)
	assert.Equal(t, 0, stats.Won)
	assert.Equal(t, 1, stats.Pending)
}
