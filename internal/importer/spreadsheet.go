package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet é o arquivo decodificado: colunas na ordem do cabeçalho
// (linha 1) e uma RawRow por linha de dados.
type Spreadsheet struct {
	Columns []string
	Rows    []RawRow
}

// ReadSpreadsheet decodifica um arquivo de leads (.xlsx, .xls ou .csv) em
// linhas cruas. Os nomes de coluna são exatamente os da primeira linha.
func ReadSpreadsheet(filename string, r io.Reader) (*Spreadsheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx", ".xls", ".xlsm":
		return readExcel(r)
	default:
		return nil, fmt.Errorf("formato de arquivo não suportado: %s", filepath.Ext(filename))
	}
}

func readCSV(r io.Reader) (*Spreadsheet, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("ler cabeçalho do CSV: %w", err)
	}

	sheet := &Spreadsheet{Columns: trimHeader(header)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ler linha do CSV: %w", err)
		}
		sheet.Rows = append(sheet.Rows, rowFromRecord(sheet.Columns, record))
	}
	return sheet, nil
}

func readExcel(r io.Reader) (*Spreadsheet, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("planilha sem abas")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("ler linhas da aba %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("aba %s está vazia", sheetName)
	}

	sheet := &Spreadsheet{Columns: trimHeader(rows[0])}
	for _, record := range rows[1:] {
		sheet.Rows = append(sheet.Rows, rowFromRecord(sheet.Columns, record))
	}
	return sheet, nil
}

func trimHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	return columns
}

func rowFromRecord(columns []string, record []string) RawRow {
	row := make(RawRow, len(columns))
	for i, col := range columns {
		if col == "" {
			continue
		}
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
