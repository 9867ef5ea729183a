package layout

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"layout-service/internal/domain"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ---------------------- leitura da grade ----------------------

// LoadGrid lê a planilha pedida de um arquivo .xlsx ou .xls e devolve a
// grade bruta imutável. O tipo de cada célula é decidido aqui, uma única
// vez; o restante do pipeline só enxerga CellValue.
func LoadGrid(file io.Reader, filename, sheetName string) (domain.RawGrid, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.WrapError(domain.CodeFileUnreadable, "erro ao ler arquivo de entrada", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		if grid, err := loadGridXLS(data, sheetName); err == nil {
			return grid, nil
		}
		// pode ser um xlsx salvo com extensão errada; tentar excelize
		return loadGridXLSX(data, sheetName)
	}

	grid, err := loadGridXLSX(data, sheetName)
	if err == nil {
		return grid, nil
	}
	if grid2, err2 := loadGridXLS(data, sheetName); err2 == nil {
		return grid2, nil
	}
	return nil, err
}

func loadGridXLSX(data []byte, sheetName string) (domain.RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.WrapError(domain.CodeFileUnreadable, "formato de planilha não suportado", err)
	}
	defer f.Close()

	available := f.GetSheetList()
	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		return nil, domain.NewErrorWithDetails(domain.CodeSheetNotFound,
			fmt.Sprintf("planilha '%s' não encontrada", sheetName),
			available)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, domain.WrapError(domain.CodeFileUnreadable, "erro ao ler linhas da planilha", err)
	}
	return classifyRows(rows), nil
}

func loadGridXLS(data []byte, sheetName string) (domain.RawGrid, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.WrapError(domain.CodeFileUnreadable, "formato de planilha não suportado", err)
	}

	var available []string
	for i, sh := range workbook.GetSheets() {
		available = append(available, sh.GetName())
		if sh.GetName() != sheetName {
			continue
		}
		sheet, err := workbook.GetSheet(i)
		if err != nil {
			return nil, domain.WrapError(domain.CodeFileUnreadable, "erro ao obter planilha do arquivo .xls", err)
		}
		var rows [][]string
		for _, row := range sheet.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			rows = append(rows, cells)
		}
		return classifyRows(rows), nil
	}

	return nil, domain.NewErrorWithDetails(domain.CodeSheetNotFound,
		fmt.Sprintf("planilha '%s' não encontrada", sheetName),
		available)
}

// ---------------------- classificação de células ----------------------

func classifyRows(rows [][]string) domain.RawGrid {
	grid := make(domain.RawGrid, len(rows))
	for i, row := range rows {
		cells := make([]domain.CellValue, len(row))
		for j, raw := range row {
			cells[j] = classifyCell(raw)
		}
		grid[i] = cells
	}
	return grid
}

// layouts reconhecidos na classificação; a interpretação dia-primeiro vem
// antes da mês-primeiro.
var classifyDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"02-01-2006",
}

// classifyCell decide o tipo de uma célula a partir do texto formatado:
// vazio, número (representação decimal exata), data ou texto.
func classifyCell(raw string) domain.CellValue {
	s := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	if s == "" {
		return domain.EmptyCell()
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return domain.NumberCell(d)
	}
	for _, layout := range classifyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateCell(t)
		}
	}
	return domain.TextCell(s)
}
