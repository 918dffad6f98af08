package importer

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

// fallbackEmailDomain completa o e-mail sintetizado de linhas que só trazem
// o nome do comprador.
const fallbackEmailDomain = "importado.crmidea.com.br"

// EventKind classifica o evento da linha para fins de estatística e
// follow-up. Não altera o status gravado do lead.
type EventKind string

const (
	EventPaid      EventKind = "paid"
	EventAbandoned EventKind = "abandoned-cart"
	EventRefund    EventKind = "refund"
	EventRefused   EventKind = "refused"
	EventNone      EventKind = ""
)

// Conjuntos disjuntos de palavras-chave por tipo de evento, avaliados em
// ordem sobre o texto de status cru. O conjunto EventNone vem antes do de
// pago de propósito: "paga" é substring de "pagamento", e um "aguardando
// pagamento" não pode contar como venda.
var eventKeywords = []struct {
	kind     EventKind
	keywords []string
}{
	{EventAbandoned, []string{"abandon", "carrinho", "checkout abandonado"}},
	{EventNone, []string{"aguardando", "pendente", "pending", "waiting", "gerado", "impresso"}},
	{EventRefund, []string{"reembols", "refund", "estorn", "chargeback", "disputa", "dispute"}},
	{EventRefused, []string{"recusad", "refused", "declined", "negad"}},
	{EventPaid, []string{"pago", "paga", "aprovad", "approved", "paid", "complet", "concluid", "concluíd"}},
}

// ClassifyEvent identifica o evento de venda descrito por um texto de status
// de fornecedor, por match exato ou de substring.
func ClassifyEvent(statusText string) EventKind {
	text := strings.ToLower(strings.TrimSpace(statusText))
	if text == "" {
		return EventNone
	}
	for _, set := range eventKeywords {
		for _, kw := range set.keywords {
			if text == kw || strings.Contains(text, kw) {
				return set.kind
			}
		}
	}
	return EventNone
}

// ProductOverride é a escolha do usuário na tela de confirmação de produtos:
// mapear o texto da planilha para um produto do catálogo ou pedir a criação
// de um produto novo (sentinela ProductCreateNew).
type ProductOverride struct {
	Target         entity.ProductType `json:"target_product"`
	NewProductName string             `json:"new_product_name,omitempty"`
}

// Builder transforma linhas cruas da planilha em candidatos a lead usando o
// resolvedor de colunas e os classificadores de fornecedor.
type Builder struct {
	// Source identifica o fornecedor da planilha (ex: "Hotmart"); entra na
	// nota de origem de cada lead.
	Source string

	// Overrides, quando presente, mapeia o texto literal de produto da
	// planilha para a escolha do usuário.
	Overrides map[string]ProductOverride

	// unrecognized acumula (sem repetição) os textos de produto que nenhum
	// classificador resolveu, para exibição ao operador.
	unrecognized []string
	seenUnknown  map[string]struct{}
}

func NewBuilder(source string, overrides map[string]ProductOverride) *Builder {
	return &Builder{
		Source:      source,
		Overrides:   overrides,
		seenUnknown: make(map[string]struct{}),
	}
}

// UnrecognizedProducts devolve os textos de produto não reconhecidos até
// aqui, na ordem em que apareceram.
func (b *Builder) UnrecognizedProducts() []string {
	return b.unrecognized
}

// BuildCandidate produz o candidato correspondente a uma linha. O segundo
// retorno é false quando a linha não tem nem nome nem e-mail e deve ser
// descartada em silêncio.
func (b *Builder) BuildCandidate(row RawRow) (CandidateLead, bool) {
	name := FindColumn(row, nameColumns)
	email := FindColumn(row, emailColumns)
	if name == "" && email == "" {
		return CandidateLead{}, false
	}

	productText := FindColumn(row, productColumns)
	product := b.resolveProduct(row, productText)

	statusText := findStatusText(row)
	status := resolveStatus(row, statusText)

	value := findNetValue(row)

	var occurredAt *time.Time
	if t, ok := findOccurredAt(row); ok {
		occurredAt = &t
	}

	notes := FindColumn(row, notesColumns)
	if statusText != "" {
		notes = fmt.Sprintf("Importado %s: %s", b.Source, statusText)
	}

	source := FindColumn(row, sourceColumns)
	if source == "" {
		source = b.Source
	}

	if name == "" {
		name = humanizeLocalPart(email)
	}
	if email == "" {
		email = slugify(name) + "@" + fallbackEmailDomain
	}

	return CandidateLead{
		Name:       name,
		Email:      email,
		Phone:      FindColumn(row, phoneColumns),
		Product:    product,
		Status:     status,
		Value:      value,
		Source:     source,
		Notes:      notes,
		OccurredAt: occurredAt,
		Event:      ClassifyEvent(statusText),
	}, true
}

func (b *Builder) resolveProduct(row RawRow, productText string) entity.ProductType {
	if ov, ok := b.Overrides[productText]; ok && ov.Target != entity.ProductCreateNew && ov.Target.IsValid() {
		return ov.Target
	}
	if product, ok := ClassifyProduct(row); ok {
		return product
	}
	if product, ok := matchCatalogLiteral(productText); ok {
		return product
	}
	if productText != "" {
		b.rememberUnknown(productText)
	}
	return entity.DefaultProduct
}

func (b *Builder) rememberUnknown(text string) {
	if _, seen := b.seenUnknown[text]; seen {
		return
	}
	b.seenUnknown[text] = struct{}{}
	b.unrecognized = append(b.unrecognized, text)
}

func resolveStatus(row RawRow, statusText string) entity.LeadStatus {
	if status, ok := ClassifyStatus(row); ok {
		return status
	}
	if status, ok := entity.ParseLeadStatus(strings.ToLower(strings.TrimSpace(statusText))); ok {
		return status
	}
	return entity.StatusNew
}

// humanizeLocalPart transforma "joao.silva@x.com" em "Joao Silva".
func humanizeLocalPart(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	words := strings.Fields(local)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	if len(words) == 0 {
		return "Lead importado"
	}
	return strings.Join(words, " ")
}

// slugify reduz um nome a um local-part de e-mail seguro.
func slugify(name string) string {
	nk := normalizeKey(name)
	if nk == "" {
		return "lead"
	}
	return nk
}
