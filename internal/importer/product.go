package importer

import (
	"log"
	"strings"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

type productEntry struct {
	phrase  string
	product entity.ProductType
}

// productEntries é o dicionário exato de nomes de produto como os checkouts
// exportam. A ordem importa no fallback genérico por substring.
var productEntries = []productEntry{
	{"consultoria jurídica", entity.ProductConsultoria},
	{"consultoria juridica", entity.ProductConsultoria},
	{"consultoria individual", entity.ProductConsultoria},
	{"mentoria idea", entity.ProductMentoriaGrupo},
	{"mentoria idea em grupo", entity.ProductMentoriaGrupo},
	{"mentoria em grupo", entity.ProductMentoriaGrupo},
	{"mentoria individual", entity.ProductMentoriaIndividual},
	{"curso ia na prática para advogados", entity.ProductCurso},
	{"curso ia na pratica para advogados", entity.ProductCurso},
	{"ia na prática para advogados", entity.ProductCurso},
	{"guia prático de ia para advogados", entity.ProductEbook},
	{"guia pratico de ia para advogados", entity.ProductEbook},
	{"código de prompts jurídicos", entity.ProductEbook},
	{"codigo de prompts juridicos", entity.ProductEbook},
	{"prompts jurídicos", entity.ProductEbook},
	{"prompts juridicos", entity.ProductEbook},
	{"combo de e-books", entity.ProductComboEbooks},
	{"combo de ebooks", entity.ProductComboEbooks},
	{"combo ebooks", entity.ProductComboEbooks},
	{"imersão ia na advocacia", entity.ProductImersao},
	{"imersao ia na advocacia", entity.ProductImersao},
	{"comunidade idea", entity.ProductComunidade},
	{"fraternidade idea mensal", entity.ProductFraternidadeMensal},
	{"fraternidade mensal", entity.ProductFraternidadeMensal},
	{"fraternidade idea anual", entity.ProductFraternidadeAnual},
	{"fraternidade anual", entity.ProductFraternidadeAnual},
	{"fraternidade idea black", entity.ProductFraternidadeBlack},
	{"fraternidade black", entity.ProductFraternidadeBlack},
	{"fraternidade idea vip", entity.ProductFraternidadeVIP},
	{"fraternidade vip", entity.ProductFraternidadeVIP},
}

var productExact = func() map[string]entity.ProductType {
	m := make(map[string]entity.ProductType, len(productEntries))
	for _, e := range productEntries {
		m[e.phrase] = e.product
	}
	return m
}()

type productRule struct {
	match   func(string) bool
	product entity.ProductType
}

func containsAll(parts ...string) func(string) bool {
	return func(text string) bool {
		for _, p := range parts {
			if !strings.Contains(text, p) {
				return false
			}
		}
		return true
	}
}

func containsAny(parts ...string) func(string) bool {
	return func(text string) bool {
		for _, p := range parts {
			if strings.Contains(text, p) {
				return true
			}
		}
		return false
	}
}

// productRules é avaliada de cima para baixo, e o primeiro match vence.
// A ordem é deliberada: "fraternidade black" precisa vir antes da regra
// genérica de fraternidade, e "mentoria individual" antes de "mentoria idea",
// porque as frases mais curtas são substrings das mais específicas.
var productRules = []productRule{
	{containsAll("fraternidade", "black"), entity.ProductFraternidadeBlack},
	{containsAll("fraternidade", "vip"), entity.ProductFraternidadeVIP},
	{containsAll("fraternidade", "anual"), entity.ProductFraternidadeAnual},
	{containsAll("fraternidade", "mensal"), entity.ProductFraternidadeMensal},
	{containsAny("fraternidade", "comunidade"), entity.ProductComunidade},
	{containsAll("mentoria", "individual"), entity.ProductMentoriaIndividual},
	{containsAll("mentoria", "idea"), entity.ProductMentoriaGrupo},
	{containsAny("mentoria", "mentor"), entity.ProductMentoriaGrupo},
	{containsAny("consultoria"), entity.ProductConsultoria},
	{containsAny("imersão", "imersao"), entity.ProductImersao},
	{containsAny("combo"), entity.ProductComboEbooks},
	{containsAny("guia", "código", "codigo", "prompts"), entity.ProductEbook},
	{containsAny("e-book", "ebook"), entity.ProductEbook},
	{containsAny("curso", "advogados"), entity.ProductCurso},
}

// ClassifyProduct resolve o texto de produto do fornecedor para um produto
// do catálogo: dicionário exato, depois as regras de palavra-chave em ordem,
// depois substring genérica contra as chaves do dicionário. Sem match,
// loga o texto para revisão do operador e retorna false.
func ClassifyProduct(row RawRow) (entity.ProductType, bool) {
	return classifyProductText(FindColumn(row, productColumns))
}

func classifyProductText(raw string) (entity.ProductType, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}

	if product, ok := productExact[text]; ok {
		return product, true
	}

	for _, rule := range productRules {
		if rule.match(text) {
			return rule.product, true
		}
	}

	for _, e := range productEntries {
		if strings.Contains(text, e.phrase) || strings.Contains(e.phrase, text) {
			return e.product, true
		}
	}

	log.Printf("[importer] produto não reconhecido: %q", raw)
	return "", false
}

// matchCatalogLiteral tenta o texto contra o id de catálogo e o nome de
// exibição dos produtos — o caminho usado quando o classificador é
// ignorado (mapeamento manual de colunas).
func matchCatalogLiteral(raw string) (entity.ProductType, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if p, ok := entity.ParseProductType(strings.ToLower(text)); ok {
		return p, true
	}
	for p := range allProducts {
		if strings.EqualFold(p.DisplayName(), text) {
			return p, true
		}
	}
	if p, ok := productExact[strings.ToLower(text)]; ok {
		return p, true
	}
	return "", false
}

var allProducts = map[entity.ProductType]struct{}{
	entity.ProductConsultoria:        {},
	entity.ProductMentoriaGrupo:      {},
	entity.ProductMentoriaIndividual: {},
	entity.ProductCurso:              {},
	entity.ProductEbook:              {},
	entity.ProductComboEbooks:        {},
	entity.ProductImersao:            {},
	entity.ProductComunidade:         {},
	entity.ProductFraternidadeMensal: {},
	entity.ProductFraternidadeAnual:  {},
	entity.ProductFraternidadeBlack:  {},
	entity.ProductFraternidadeVIP:    {},
}
