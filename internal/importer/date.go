package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelEpoch é o dia zero da contagem serial de datas das planilhas.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var serialRe = regexp.MustCompile(`^\d{5,6}(\.\d+)?$`)

var brDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:[ T](\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)

// isoLayouts cobre o prefixo YYYY-MM-DD com e sem hora.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// freeFormLayouts é a última tentativa para datas fora dos formatos usuais
// de exportação dos fornecedores.
var freeFormLayouts = []string{
	"02/01/2006 15:04:05 -07:00",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123,
	time.RFC822,
}

// ParseDateValue converte uma célula de data (serial de planilha, DD/MM/AAAA
// com hora opcional, ISO ou formato livre) para um timestamp. O segundo
// retorno é false quando não há data reconhecível; nunca há erro.
func ParseDateValue(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case float64:
		return fromExcelSerial(v)
	case float32:
		return fromExcelSerial(float64(v))
	case int:
		return fromExcelSerial(float64(v))
	case int64:
		return fromExcelSerial(float64(v))
	case string:
		return parseDateString(v)
	default:
		return time.Time{}, false
	}
}

func fromExcelSerial(serial float64) (time.Time, bool) {
	t := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	if !plausibleDate(t) {
		return time.Time{}, false
	}
	return t, true
}

func parseDateString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Números que chegaram como texto ("45000") ainda são seriais. Quatro
	// dígitos soltos ("2024") são quase sempre um ano digitado, não serial.
	if serialRe.MatchString(s) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return fromExcelSerial(serial)
		}
	}

	// DD/MM/AAAA [HH:MM[:SS]] — convenção brasileira, componente a componente.
	if m := brDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		hour, minute, sec := 0, 0, 0
		if m[4] != "" {
			hour, _ = strconv.Atoi(m[4])
			minute, _ = strconv.Atoi(m[5])
		}
		if m[6] != "" {
			sec, _ = strconv.Atoi(m[6])
		}
		t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
		// time.Date normaliza 31/02 para março; componente divergente é data inválida.
		if t.Day() != day || int(t.Month()) != month || hour > 23 || minute > 59 || sec > 59 {
			return time.Time{}, false
		}
		return t, true
	}

	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil && plausibleDate(t) {
				return t, true
			}
		}
	}

	for _, layout := range freeFormLayouts {
		if t, err := time.Parse(layout, s); err == nil && plausibleDate(t) {
			return t, true
		}
	}

	return time.Time{}, false
}

// plausibleDate rejeita resultados fora da janela em que uma transação real
// do negócio pode existir (seriais negativos, anos de overflow).
func plausibleDate(t time.Time) bool {
	year := t.Year()
	return year >= 1900 && year <= 2200
}
