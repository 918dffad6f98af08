package importer

import (
	"math"
	"strconv"
	"strings"
)

// ParseMonetaryValue converte uma célula de valor monetário (número ou texto
// em qualquer convenção de separadores) para reais com 2 casas decimais.
// Entrada inválida nunca gera erro: o resultado é 0.
func ParseMonetaryValue(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return round2(v)
	case float32:
		return round2(float64(v))
	case int:
		return round2(float64(v))
	case int64:
		return round2(float64(v))
	case string:
		return parseMonetaryString(v)
	default:
		return 0
	}
}

func parseMonetaryString(raw string) float64 {
	// Mantém só dígitos, vírgula, ponto e sinal. Remove "R$", "US$", espaços.
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if cleaned == "" || cleaned == "0" || cleaned == "0,00" || cleaned == "0.00" {
		return 0
	}

	commas := strings.Count(cleaned, ",")
	periods := strings.Count(cleaned, ".")

	switch {
	case endsWithDecimal(cleaned, ','):
		// Formato brasileiro: 1.234,56
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case endsWithDecimal(cleaned, '.'):
		// Formato americano: 1,234.56
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commas == 1 && periods == 0:
		// Vírgula única é decimal: 99,99
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case periods == 1 && commas == 0:
		// Já está canônico.
	default:
		// Forma ambígua. Com vírgula presente, assume convenção brasileira.
		if commas > 0 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return round2(value)
}

// endsWithDecimal reporta se o texto termina com o separador seguido de 1 ou
// 2 dígitos (a "cauda decimal" que desambigua o formato).
func endsWithDecimal(s string, sep byte) bool {
	idx := strings.LastIndexByte(s, sep)
	if idx < 0 {
		return false
	}
	tail := s[idx+1:]
	if len(tail) < 1 || len(tail) > 2 {
		return false
	}
	for i := 0; i < len(tail); i++ {
		if tail[i] < '0' || tail[i] > '9' {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	rounded := math.Round(v*100) / 100
	if rounded < 0 {
		return 0
	}
	return rounded
}
