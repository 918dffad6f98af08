package importer

import (
	"strings"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

type statusEntry struct {
	phrase string
	status entity.LeadStatus
}

// statusEntries mapeia as frases de status dos fornecedores para os estágios
// do funil. A ordem importa: o fallback por substring percorre a lista de
// cima para baixo e para no primeiro match, então as frases curtas e
// perigosas ("paga" é substring de "pagamento") ficam no fim.
//
// Compra paga vira closed-won. Carrinho abandonado e pagamento pendente
// ficam em new: o lead segue aberto para follow-up, não é perda. Reembolso,
// chargeback e recusa viram closed-lost. Assinatura atrasada vai para
// negotiation, porque ainda há conversa de recuperação.
var statusEntries = []statusEntry{
	{"carrinho abandonado", entity.StatusNew},
	{"abandono de carrinho", entity.StatusNew},
	{"checkout abandonado", entity.StatusNew},
	{"abandoned cart", entity.StatusNew},
	{"abandoned_cart", entity.StatusNew},
	{"pix gerado", entity.StatusNew},
	{"boleto gerado", entity.StatusNew},
	{"boleto impresso", entity.StatusNew},
	{"aguardando pagamento", entity.StatusNew},
	{"pendente", entity.StatusNew},
	{"pending", entity.StatusNew},
	{"waiting_payment", entity.StatusNew},

	{"assinatura atrasada", entity.StatusNegotiation},
	{"inadimplente", entity.StatusNegotiation},
	{"overdue", entity.StatusNegotiation},

	{"reembolsado", entity.StatusClosedLost},
	{"reembolsada", entity.StatusClosedLost},
	{"reembolso", entity.StatusClosedLost},
	{"refunded", entity.StatusClosedLost},
	{"estornado", entity.StatusClosedLost},
	{"chargeback", entity.StatusClosedLost},
	{"em disputa", entity.StatusClosedLost},
	{"disputa", entity.StatusClosedLost},
	{"dispute", entity.StatusClosedLost},
	{"assinatura cancelada", entity.StatusClosedLost},
	{"subscription_canceled", entity.StatusClosedLost},
	{"recusado", entity.StatusClosedLost},
	{"recusada", entity.StatusClosedLost},
	{"refused", entity.StatusClosedLost},
	{"declined", entity.StatusClosedLost},
	{"negado", entity.StatusClosedLost},
	{"cancelado", entity.StatusClosedLost},
	{"cancelada", entity.StatusClosedLost},
	{"canceled", entity.StatusClosedLost},
	{"expirado", entity.StatusClosedLost},
	{"expired", entity.StatusClosedLost},

	{"pagamento aprovado", entity.StatusClosedWon},
	{"compra aprovada", entity.StatusClosedWon},
	{"assinatura ativa", entity.StatusClosedWon},
	{"aprovado", entity.StatusClosedWon},
	{"aprovada", entity.StatusClosedWon},
	{"completo", entity.StatusClosedWon},
	{"completa", entity.StatusClosedWon},
	{"concluída", entity.StatusClosedWon},
	{"concluida", entity.StatusClosedWon},
	{"approved", entity.StatusClosedWon},
	{"completed", entity.StatusClosedWon},
	{"paid", entity.StatusClosedWon},
	{"pago", entity.StatusClosedWon},
	{"paga", entity.StatusClosedWon},
}

var statusExact = func() map[string]entity.LeadStatus {
	m := make(map[string]entity.LeadStatus, len(statusEntries))
	for _, e := range statusEntries {
		m[e.phrase] = e.status
	}
	return m
}()

// ClassifyStatus resolve o texto de status do fornecedor para um estágio do
// funil: dicionário exato primeiro, depois contenção de substring nas duas
// direções, na ordem declarada das entradas. Sem match, retorna false e o
// chamador decide o default.
func ClassifyStatus(row RawRow) (entity.LeadStatus, bool) {
	return classifyStatusText(findStatusText(row))
}

func classifyStatusText(raw string) (entity.LeadStatus, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}

	if status, ok := statusExact[text]; ok {
		return status, true
	}

	for _, e := range statusEntries {
		if strings.Contains(text, e.phrase) || strings.Contains(e.phrase, text) {
			return e.status, true
		}
	}

	return "", false
}
