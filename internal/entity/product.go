package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductType identifica um produto do catálogo do CRM.
type ProductType string

const (
	ProductConsultoria        ProductType = "consultoria"
	ProductMentoriaGrupo      ProductType = "mentoria-grupo"
	ProductMentoriaIndividual ProductType = "mentoria-individual"
	ProductCurso              ProductType = "curso"
	ProductEbook              ProductType = "ebook"
	ProductComboEbooks        ProductType = "combo-ebooks"
	ProductImersao            ProductType = "imersao"
	ProductComunidade         ProductType = "comunidade"
	ProductFraternidadeMensal ProductType = "fraternidade-mensal"
	ProductFraternidadeAnual  ProductType = "fraternidade-anual"
	ProductFraternidadeBlack  ProductType = "fraternidade-black"
	ProductFraternidadeVIP    ProductType = "fraternidade-vip"

	// ProductCreateNew é o sentinela usado pelo mapa de overrides da tela de
	// confirmação: "crie um produto novo com esse nome" em vez de mapear.
	ProductCreateNew ProductType = "create-new"

	// DefaultProduct recebe toda linha cujo produto não foi reconhecido.
	DefaultProduct = ProductEbook
)

// catalogNames dá o nome de exibição de cada produto do catálogo.
var catalogNames = map[ProductType]string{
	ProductConsultoria:        "Consultoria Jurídica",
	ProductMentoriaGrupo:      "Mentoria IDEA em Grupo",
	ProductMentoriaIndividual: "Mentoria Individual",
	ProductCurso:              "Curso IA na Prática para Advogados",
	ProductEbook:              "E-book",
	ProductComboEbooks:        "Combo de E-books",
	ProductImersao:            "Imersão IA na Advocacia",
	ProductComunidade:         "Comunidade IDEA",
	ProductFraternidadeMensal: "Fraternidade IDEA Mensal",
	ProductFraternidadeAnual:  "Fraternidade IDEA Anual",
	ProductFraternidadeBlack:  "Fraternidade IDEA Black",
	ProductFraternidadeVIP:    "Fraternidade IDEA VIP",
}

// DisplayName retorna o nome de exibição do produto ("" se desconhecido).
func (p ProductType) DisplayName() string {
	return catalogNames[p]
}

// IsValid reporta se o valor é um produto do catálogo (o sentinela
// create-new não conta).
func (p ProductType) IsValid() bool {
	_, ok := catalogNames[p]
	return ok
}

// ParseProductType faz o match literal com o id de catálogo (ex: "ebook").
func ParseProductType(raw string) (ProductType, bool) {
	p := ProductType(raw)
	if p.IsValid() {
		return p, true
	}
	return "", false
}

type Product struct {
	ID        string      `json:"id"`
	Type      ProductType `json:"type"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewProduct(name, slug string) *Product {
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
	}
}
