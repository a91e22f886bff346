// Package sheets lê planilhas enviadas (.xlsx, .xls, .csv) e entrega as
// linhas da primeira aba como mapas cabeçalho -> valor.
package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrPlanilhaVazia indica que a primeira aba não tem linhas de dados.
var ErrPlanilhaVazia = errors.New("planilha sem linhas de dados")

// ReadFirstSheet lê a primeira aba do arquivo e retorna os cabeçalhos na
// ordem original e cada linha como domain.RawRow. Células ausentes viram "".
func ReadFirstSheet(file io.Reader, filename string) ([]string, []domain.RawRow, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var matrix [][]string
	var err error

	switch ext {
	case ".xlsx":
		matrix, err = readXLSX(file)
	case ".xls":
		matrix, err = readXLS(file)
	case ".csv":
		matrix, err = readCSV(file)
	default:
		return nil, nil, fmt.Errorf("formato de arquivo não suportado: %s", ext)
	}
	if err != nil {
		return nil, nil, err
	}

	return toRows(matrix)
}

func readXLSX(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrPlanilhaVazia
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLS(file io.Reader) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(data)

	workbook, err := xls.OpenReader(reader)
	if err != nil {
		// Alguns exportadores entregam xlsx com extensão .xls.
		if _, errX := excelize.OpenReader(bytes.NewReader(data)); errX == nil {
			return readXLSX(bytes.NewReader(data))
		}
		return nil, fmt.Errorf("erro ao abrir arquivo xls: %w", err)
	}

	sheets := workbook.GetSheets()
	if len(sheets) == 0 {
		return nil, ErrPlanilhaVazia
	}

	var matrix [][]string
	for _, row := range sheets[0].GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		matrix = append(matrix, cells)
	}
	return matrix, nil
}

func readCSV(file io.Reader) ([][]string, error) {
	decoder := charmap.ISO8859_1.NewDecoder()
	reader := csv.NewReader(transform.NewReader(file, decoder))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler CSV: %w", err)
	}
	return records, nil
}

func toRows(matrix [][]string) ([]string, []domain.RawRow, error) {
	// Pula linhas totalmente em branco antes do cabeçalho.
	start := 0
	for start < len(matrix) && isBlank(matrix[start]) {
		start++
	}
	if start >= len(matrix) {
		return nil, nil, ErrPlanilhaVazia
	}

	headers := make([]string, len(matrix[start]))
	for i, h := range matrix[start] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []domain.RawRow
	for _, record := range matrix[start+1:] {
		if isBlank(record) {
			continue
		}
		row := make(domain.RawRow, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, ErrPlanilhaVazia
	}

	return headers, rows, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
