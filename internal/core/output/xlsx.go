package output

import (
	"layout-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// writeXLSX grava a pasta de trabalho no formato atual: datas como células
// nativas exibidas dd/mm/aaaa, valor numérico com duas casas, larguras de
// coluna e cabeçalho congelado (cosmético).
func writeXLSX(path string, table *domain.BlockTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDados); err != nil {
		return err
	}

	for col, label := range outputColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetDados, cell, label); err != nil {
			return err
		}
	}

	for i, rec := range table.Records {
		row := i + 2
		dates := recordDates(rec)
		valor, _ := rec.Valor.Float64()
		values := []interface{}{rec.Contrato, valor, dates[0], dates[1], dates[2], dates[3]}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetDados, cell, v); err != nil {
				return err
			}
		}
	}

	if len(table.Records) > 0 {
		last := len(table.Records) + 1

		dateFmt := "dd/mm/yyyy"
		dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetDados, "C2", cellRef("F", last), dateStyle); err != nil {
			return err
		}

		numStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetDados, "B2", cellRef("B", last), numStyle); err != nil {
			return err
		}
	}

	for col, label := range outputColumns {
		width := float64(len(label) + 2)
		if width < 12 {
			width = 12
		}
		if width > 40 {
			width = 40
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetDados, name, name, width); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheetDados, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func cellRef(col string, row int) string {
	cell, _ := excelize.JoinCellName(col, row)
	return cell
}
