package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

func TestClassifyStatusTextDicionarioExato(t *testing.T) {
	cases := map[string]entity.LeadStatus{
		"Pagamento Aprovado":   entity.StatusClosedWon,
		"compra aprovada":      entity.StatusClosedWon,
		"paid":                 entity.StatusClosedWon,
		"Carrinho Abandonado":  entity.StatusNew,
		"pix gerado":           entity.StatusNew,
		"waiting_payment":      entity.StatusNew,
		"Reembolsado":          entity.StatusClosedLost,
		"chargeback":           entity.StatusClosedLost,
		"Recusado":             entity.StatusClosedLost,
		"Assinatura Atrasada":  entity.StatusNegotiation,
		"inadimplente":         entity.StatusNegotiation,
		"Assinatura Cancelada": entity.StatusClosedLost,
	}
	for raw, want := range cases {
		got, ok := classifyStatusText(raw)
		assert.True(t, ok, "status %q deveria classificar", raw)
		assert.Equal(t, want, got, "status %q", raw)
	}
}

// O fallback por substring segue a ordem declarada das entradas: "pagamento
// pendente" bate em "pendente" (new) antes de chegar em "pago" (won).
func TestClassifyStatusTextFallbackPorSubstring(t *testing.T) {
	got, ok := classifyStatusText("Pagamento pendente via boleto")
	assert.True(t, ok)
	assert.Equal(t, entity.StatusNew, got)

	got, ok = classifyStatusText("Venda paga no cartão")
	assert.True(t, ok)
	assert.Equal(t, entity.StatusClosedWon, got)

	// Contenção também funciona na direção inversa (texto dentro da frase).
	got, ok = classifyStatusText("abandonado")
	assert.True(t, ok)
	assert.Equal(t, entity.StatusNew, got)
}

func TestClassifyStatusTextSemMatch(t *testing.T) {
	_, ok := classifyStatusText("")
	assert.False(t, ok)

	_, ok = classifyStatusText("???")
	assert.False(t, ok)

	_, ok = classifyStatusText("xyzzy")
	assert.False(t, ok)
}

func TestClassifyStatusUsaAColunaDeStatusDaLinha(t *testing.T) {
	got, ok := ClassifyStatus(RawRow{"Status da Compra": "Aprovado"})
	assert.True(t, ok)
	assert.Equal(t, entity.StatusClosedWon, got)

	_, ok = ClassifyStatus(RawRow{"Nome": "Maria"})
	assert.False(t, ok)
}
