package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

func TestClassifyProductTextDicionarioExato(t *testing.T) {
	cases := map[string]entity.ProductType{
		"Mentoria IDEA":                     entity.ProductMentoriaGrupo,
		"mentoria individual":               entity.ProductMentoriaIndividual,
		"Consultoria Jurídica":              entity.ProductConsultoria,
		"Guia Prático de IA para Advogados": entity.ProductEbook,
		"Combo de E-books":                  entity.ProductComboEbooks,
		"Imersão IA na Advocacia":           entity.ProductImersao,
		"Fraternidade IDEA Black":           entity.ProductFraternidadeBlack,
		"Comunidade IDEA":                   entity.ProductComunidade,
	}
	for raw, want := range cases {
		got, ok := classifyProductText(raw)
		assert.True(t, ok, "produto %q deveria classificar", raw)
		assert.Equal(t, want, got, "produto %q", raw)
	}
}

// As regras de palavra-chave são avaliadas de cima para baixo: a variante
// mais específica precisa vencer a genérica da qual é superconjunto.
func TestClassifyProductTextOrdemDasRegras(t *testing.T) {
	got, ok := classifyProductText("Fraternidade IDEA BLACK 2024 - Lote 2")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductFraternidadeBlack, got)

	got, ok = classifyProductText("Mentoria Individual Premium")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductMentoriaIndividual, got)

	// "fraternidade" sem qualificador cai na regra genérica de comunidade.
	got, ok = classifyProductText("Fraternidade")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductComunidade, got)

	got, ok = classifyProductText("Curso de IA Generativa")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductCurso, got)

	got, ok = classifyProductText("Código de Prompts Jurídicos v2")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductEbook, got)
}

func TestClassifyProductTextSemMatch(t *testing.T) {
	_, ok := classifyProductText("")
	assert.False(t, ok)

	_, ok = classifyProductText("Produto Misterioso XYZ")
	assert.False(t, ok)
}

func TestMatchCatalogLiteral(t *testing.T) {
	got, ok := matchCatalogLiteral("ebook")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductEbook, got)

	// Nome de exibição também serve, sem diferenciar maiúsculas.
	got, ok = matchCatalogLiteral("mentoria idea em grupo")
	assert.True(t, ok)
	assert.Equal(t, entity.ProductMentoriaGrupo, got)

	_, ok = matchCatalogLiteral("qualquer coisa")
	assert.False(t, ok)

	// O sentinela create-new não é produto de catálogo.
	_, ok = matchCatalogLiteral("create-new")
	assert.False(t, ok)
}
