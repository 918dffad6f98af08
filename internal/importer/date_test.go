package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateValueSerialDePlanilha(t *testing.T) {
	got, ok := ParseDateValue(float64(45000))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	// Serial que chegou como texto ainda é serial.
	got, ok = ParseDateValue("45000")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

// "2024" digitado solto é um ano, não o serial 2024 (que seria 1905).
func TestParseDateValueAnoSoltoNaoEhSerial(t *testing.T) {
	_, ok := ParseDateValue("2024")
	assert.False(t, ok)
}

func TestParseDateValueFormatoBrasileiro(t *testing.T) {
	got, ok := ParseDateValue("25/12/2024 14:30")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.December, 25, 14, 30, 0, 0, time.UTC), got)

	got, ok = ParseDateValue("01/02/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDateValue("25/12/2024 14:30:45")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.December, 25, 14, 30, 45, 0, time.UTC), got)
}

// 31/02 normalizaria para março; componente divergente é data inválida.
func TestParseDateValueDiaInexistente(t *testing.T) {
	_, ok := ParseDateValue("31/02/2024")
	assert.False(t, ok)

	_, ok = ParseDateValue("25/13/2024")
	assert.False(t, ok)
}

// Sufixo estranho depois da data não é data: degrada para "sem data".
func TestParseDateValueSufixoInvalido(t *testing.T) {
	_, ok := ParseDateValue("25/12/2024lixo")
	assert.False(t, ok)

	_, ok = ParseDateValue("25/12/2024 14:30 qualquer coisa")
	assert.False(t, ok)
}

func TestParseDateValueISO(t *testing.T) {
	got, ok := ParseDateValue("2024-07-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDateValue("2024-07-15 10:20:30")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.July, 15, 10, 20, 30, 0, time.UTC), got)
}

func TestParseDateValueSemDataReconhecivel(t *testing.T) {
	_, ok := ParseDateValue("")
	assert.False(t, ok)

	_, ok = ParseDateValue("texto qualquer")
	assert.False(t, ok)

	_, ok = ParseDateValue(nil)
	assert.False(t, ok)

	// Serial negativo cai antes de 1900.
	_, ok = ParseDateValue(int(-10))
	assert.False(t, ok)
}
