package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
)

// Chaves dos nove campos lógicos de um mapeamento manual de colunas.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldProduct = "product"
	FieldStatus  = "status"
	FieldValue   = "value"
	FieldSource  = "source"
	FieldNotes   = "notes"
	FieldDate    = "date"
)

// ColumnMapping liga cada campo lógico a uma coluna concreta da planilha.
// String vazia significa "não mapeado". Quando um mapeamento manual está
// ativo, ele substitui o resolvedor automático e os classificadores de
// fornecedor para todos os nove campos.
type ColumnMapping struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Product string `json:"product"`
	Status  string `json:"status"`
	Value   string `json:"value"`
	Source  string `json:"source"`
	Notes   string `json:"notes"`
	Date    string `json:"date"`
}

// ToMap expõe o mapeamento como campo lógico -> coluna, o formato persistido
// nos presets.
func (m ColumnMapping) ToMap() map[string]string {
	return map[string]string{
		FieldName:    m.Name,
		FieldEmail:   m.Email,
		FieldPhone:   m.Phone,
		FieldProduct: m.Product,
		FieldStatus:  m.Status,
		FieldValue:   m.Value,
		FieldSource:  m.Source,
		FieldNotes:   m.Notes,
		FieldDate:    m.Date,
	}
}

// MappingFromMap reconstrói um ColumnMapping a partir do formato persistido.
// Chaves desconhecidas são ignoradas.
func MappingFromMap(columns map[string]string) ColumnMapping {
	return ColumnMapping{
		Name:    columns[FieldName],
		Email:   columns[FieldEmail],
		Phone:   columns[FieldPhone],
		Product: columns[FieldProduct],
		Status:  columns[FieldStatus],
		Value:   columns[FieldValue],
		Source:  columns[FieldSource],
		Notes:   columns[FieldNotes],
		Date:    columns[FieldDate],
	}
}

// DetectMapping sugere um mapeamento a partir de uma linha de amostra,
// usando as mesmas heurísticas do caminho automático. O usuário edita o
// resultado antes de importar.
func DetectMapping(sample RawRow) ColumnMapping {
	var m ColumnMapping
	if key, ok := findColumnKey(sample, nameColumns, false); ok {
		m.Name = key
	}
	if key, ok := findColumnKey(sample, emailColumns, false); ok {
		m.Email = key
	}
	if key, ok := findColumnKey(sample, phoneColumns, false); ok {
		m.Phone = key
	}
	if key, ok := findColumnKey(sample, productColumns, false); ok {
		m.Product = key
	}
	if key, ok := findStatusColumnLoose(sample); ok {
		m.Status = key
	}
	if key, ok := findValueColumnLoose(sample); ok {
		m.Value = key
	}
	if key, ok := findColumnKey(sample, sourceColumns, false); ok {
		m.Source = key
	}
	if key, ok := findColumnKey(sample, notesColumns, false); ok {
		m.Notes = key
	}
	if key, ok := findDateColumnLoose(sample); ok {
		m.Date = key
	}
	return m
}

// Variantes de detecção que aceitam célula vazia na amostra: para sugerir
// mapeamento interessa a existência da coluna, não o conteúdo da linha.

func findStatusColumnLoose(row RawRow) (string, bool) {
	if _, ok := row["Status"]; ok {
		return "Status", true
	}
	for _, key := range sortedKeys(row) {
		nk := normalizeKey(key)
		if strings.Contains(nk, "status") && !strings.Contains(nk, "recebimento") {
			return key, true
		}
	}
	return findColumnKey(row, statusFallbackColumns, false)
}

func findValueColumnLoose(row RawRow) (string, bool) {
	for _, key := range sortedKeys(row) {
		nk := normalizeKey(key)
		if strings.Contains(nk, "liquido") {
			return key, true
		}
	}
	return findColumnKey(row, grossValueColumns, false)
}

func findDateColumnLoose(row RawRow) (string, bool) {
	if key, ok := findColumnKey(row, dateColumns, false); ok {
		return key, true
	}
	for _, fragment := range dateKeyFragments {
		for _, key := range sortedKeys(row) {
			if strings.Contains(normalizeKey(key), fragment) {
				return key, true
			}
		}
	}
	return "", false
}

// Sanitize valida um mapeamento (tipicamente recarregado de um preset)
// contra as colunas do arquivo atual: toda coluna salva que não existe mais
// volta para "não mapeado".
func (m ColumnMapping) Sanitize(columns []string) ColumnMapping {
	known := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		known[c] = struct{}{}
	}
	keep := func(col string) string {
		if col == "" {
			return ""
		}
		if _, ok := known[col]; ok {
			return col
		}
		return ""
	}
	return ColumnMapping{
		Name:    keep(m.Name),
		Email:   keep(m.Email),
		Phone:   keep(m.Phone),
		Product: keep(m.Product),
		Status:  keep(m.Status),
		Value:   keep(m.Value),
		Source:  keep(m.Source),
		Notes:   keep(m.Notes),
		Date:    keep(m.Date),
	}
}

// ProcessWithMapping é o caminho totalmente manual: cada campo vem da coluna
// que o usuário apontou, e produto/status são resolvidos só por dicionário
// exato e nome literal — sem as heurísticas de palavra-chave do caminho
// automático. A assimetria é intencional: quem mapeia na mão confere o
// resultado na tela de confirmação.
func ProcessWithMapping(rows []RawRow, m ColumnMapping, source string) []CandidateLead {
	var candidates []CandidateLead

	for _, row := range rows {
		name := mappedString(row, m.Name)
		email := mappedString(row, m.Email)
		if name == "" && email == "" {
			continue
		}

		productText := mappedString(row, m.Product)
		product := entity.DefaultProduct
		if p, ok := productExact[strings.ToLower(productText)]; ok {
			product = p
		} else if p, ok := matchCatalogLiteral(productText); ok {
			product = p
		}

		statusText := mappedString(row, m.Status)
		status := entity.StatusNew
		if s, ok := statusExact[strings.ToLower(strings.TrimSpace(statusText))]; ok {
			status = s
		} else if s, ok := entity.ParseLeadStatus(strings.ToLower(strings.TrimSpace(statusText))); ok {
			status = s
		}

		var value float64
		if raw, ok := mappedCell(row, m.Value); ok {
			value = ParseMonetaryValue(raw)
		}

		var occurredAt *time.Time
		if raw, ok := mappedCell(row, m.Date); ok {
			if t, ok := ParseDateValue(raw); ok {
				occurredAt = &t
			}
		}

		notes := mappedString(row, m.Notes)
		if statusText != "" {
			notes = fmt.Sprintf("Importado %s: %s", source, statusText)
		}

		origin := mappedString(row, m.Source)
		if origin == "" {
			origin = source
		}

		if name == "" {
			name = humanizeLocalPart(email)
		}
		if email == "" {
			email = slugify(name) + "@" + fallbackEmailDomain
		}

		candidates = append(candidates, CandidateLead{
			Name:       name,
			Email:      email,
			Phone:      mappedString(row, m.Phone),
			Product:    product,
			Status:     status,
			Value:      value,
			Source:     origin,
			Notes:      notes,
			OccurredAt: occurredAt,
			Event:      ClassifyEvent(statusText),
		})
	}

	return candidates
}

func mappedCell(row RawRow, column string) (any, bool) {
	if column == "" {
		return nil, false
	}
	if v, ok := row[column]; ok {
		return v, true
	}
	for _, key := range sortedKeys(row) {
		if strings.EqualFold(key, column) {
			return row[key], true
		}
	}
	return nil, false
}

func mappedString(row RawRow, column string) string {
	v, ok := mappedCell(row, column)
	if !ok {
		return ""
	}
	return cellString(v)
}
