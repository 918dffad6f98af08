package importer

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Listas de aliases conhecidos por campo lógico, em ordem de prioridade.
// Cobrem português e inglês, com e sem acento, e os nomes que os checkouts
// dos fornecedores costumam usar.
var (
	nameColumns = []string{
		"Nome", "Nome Completo", "Nome do Cliente", "Nome do Comprador",
		"Cliente", "Comprador", "Name", "Full Name", "nome", "name",
	}
	emailColumns = []string{
		"Email", "E-mail", "Email do Cliente", "E-mail do Comprador",
		"email", "e-mail", "E-Mail",
	}
	phoneColumns = []string{
		"Telefone", "Celular", "WhatsApp", "Whatsapp",
		"Telefone do Cliente", "DDD + Telefone", "Phone", "telefone",
	}
	productColumns = []string{
		"Produto", "Oferta", "Item", "Título", "Titulo", "Curso",
		"Nome do Produto", "Product", "produto",
	}
	sourceColumns = []string{
		"Origem", "Fonte", "Canal", "UTM Source", "utm_source", "Source",
	}
	notesColumns = []string{
		"Observações", "Observacoes", "Notas", "Comentários", "Comentarios",
		"Notes", "Obs",
	}
	statusFallbackColumns = []string{
		"Status da Compra", "Status da Transação", "Status da Transacao",
		"Status do Pagamento", "Situação", "Situacao",
	}
	grossValueColumns = []string{
		"Valor Total", "Valor da Compra", "Preço Base", "Preco Base",
		"Valor", "Total", "Price", "valor",
	}
	dateColumns = []string{
		"Data de liberação", "Data de Liberação", "Data da Compra",
		"Data da Transação", "Data de Criação", "Data", "Date",
	}
)

// Fragmentos de nome de coluna de data, já normalizados, em ordem de
// prioridade. Os fornecedores variam mais do que dá para enumerar por alias.
var dateKeyFragments = []string{"liberacao", "compra", "transacao", "criacao", "pedido", "data"}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeKey reduz um nome de coluna a minúsculas alfanuméricas sem
// acento, para matching por fragmento.
func normalizeKey(key string) string {
	stripped, _, err := transform.String(deaccent, key)
	if err != nil {
		stripped = key
	}
	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findColumnKey localiza a coluna da linha que melhor corresponde a um dos
// candidatos, na ordem dada: match exato primeiro, depois case-insensitive.
// Com requireValue, colunas com célula vazia não contam.
func findColumnKey(row RawRow, candidates []string, requireValue bool) (string, bool) {
	keys := sortedKeys(row)
	for _, candidate := range candidates {
		if v, ok := row[candidate]; ok {
			if !requireValue || cellString(v) != "" {
				return candidate, true
			}
		}
		for _, key := range keys {
			if strings.EqualFold(key, candidate) {
				if !requireValue || cellString(row[key]) != "" {
					return key, true
				}
			}
		}
	}
	return "", false
}

// FindColumn devolve o primeiro valor não vazio entre as colunas candidatas,
// ou "" quando a lista se esgota.
func FindColumn(row RawRow, candidates []string) string {
	key, ok := findColumnKey(row, candidates, true)
	if !ok {
		return ""
	}
	return cellString(row[key])
}

// findStatusColumn localiza a coluna de status: "Status" exato, depois
// qualquer chave que contenha "status" mas não "recebimento" (colunas de
// "data de recebimento" não são status), depois a lista fixa de aliases.
func findStatusColumn(row RawRow) (string, bool) {
	if v, ok := row["Status"]; ok && cellString(v) != "" {
		return "Status", true
	}
	for _, key := range sortedKeys(row) {
		nk := normalizeKey(key)
		if strings.Contains(nk, "status") && !strings.Contains(nk, "recebimento") && cellString(row[key]) != "" {
			return key, true
		}
	}
	return findColumnKey(row, statusFallbackColumns, true)
}

// findStatusText devolve o texto de status cru da linha, ou "".
func findStatusText(row RawRow) string {
	key, ok := findStatusColumn(row)
	if !ok {
		return ""
	}
	return cellString(row[key])
}

// findDateColumn localiza a coluna de data por alias e depois por fragmento
// normalizado, favorecendo "Data de liberação".
func findDateColumn(row RawRow) (string, bool) {
	if key, ok := findColumnKey(row, dateColumns, true); ok {
		return key, true
	}
	keys := sortedKeys(row)
	for _, fragment := range dateKeyFragments {
		for _, key := range keys {
			if strings.Contains(normalizeKey(key), fragment) && cellString(row[key]) != "" {
				return key, true
			}
		}
	}
	return "", false
}

// findOccurredAt resolve a data da transação da linha, se houver.
func findOccurredAt(row RawRow) (time.Time, bool) {
	key, ok := findDateColumn(row)
	if !ok {
		return time.Time{}, false
	}
	return ParseDateValue(row[key])
}

// findNetValue procura o valor líquido da venda: coluna "valor líquido" (ou
// a comissão, em linhas de afiliado). Sem coluna líquida, ou com líquido
// zerado, cai para as colunas de valor bruto.
func findNetValue(row RawRow) float64 {
	keys := sortedKeys(row)
	for _, key := range keys {
		nk := normalizeKey(key)
		if strings.Contains(nk, "valorliquido") || strings.Contains(nk, "liquido") {
			if v := ParseMonetaryValue(row[key]); v > 0 {
				return v
			}
		}
	}
	for _, key := range keys {
		nk := normalizeKey(key)
		if strings.Contains(nk, "comissao") && strings.Contains(nk, "afiliado") {
			if v := ParseMonetaryValue(row[key]); v > 0 {
				return v
			}
		}
	}
	if key, ok := findColumnKey(row, grossValueColumns, true); ok {
		return ParseMonetaryValue(row[key])
	}
	return 0
}
