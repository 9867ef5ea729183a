package layout

import (
	"strings"

	"layout-service/internal/domain"
)

// ---------------------- extração de blocos ----------------------

// ExtractMetadata resolve o (Documento, Plano) de um bloco subindo a partir
// da linha imediatamente acima do cabeçalho, no máximo `window` linhas.
// Vale a primeira linha (mais próxima do cabeçalho) em que as células de
// startCol e startCol+1 estão ambas preenchidas e não são o literal "nan".
func ExtractMetadata(grid domain.RawGrid, headerRow, startCol, window int) (domain.BlockKey, bool) {
	for row := headerRow - 1; row >= headerRow-(window+1) && row >= 0; row-- {
		doc := metaText(grid.At(row, startCol))
		plano := metaText(grid.At(row, startCol+1))
		if doc != "" && plano != "" {
			return domain.BlockKey{Documento: doc, Plano: plano}, true
		}
	}
	return domain.BlockKey{}, false
}

// metaText devolve o texto aparado de uma célula de metadado, descartando o
// "nan" textual que planilhas re-exportadas costumam carregar.
func metaText(cell domain.CellValue) string {
	s := strings.TrimSpace(cellText(cell))
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// ExtractRows valida os rótulos Valor e Data Crédito do bloco e converte as
// linhas abaixo do cabeçalho em registros tipados. Linhas que repetem o
// cabeçalho, linhas totalmente vazias e linhas com campo faltante após a
// normalização são descartadas (contadas no diagnóstico). Devolve nil se o
// bloco for rejeitado ou nenhuma linha sobrar.
func ExtractRows(grid domain.RawGrid, headerRow, startCol int, n Normalizer, diag Diagnostics) []domain.Record {
	valorLabel := normalizeLabel(cellText(grid.At(headerRow, startCol+1)))
	dataLabel := normalizeLabel(cellText(grid.At(headerRow, startCol+2)))
	if !containsAny(valorLabel, valorVariants) || !containsAny(dataLabel, dataCreditoVariants) {
		return nil
	}

	var records []domain.Record
	for row := headerRow + 1; row < grid.Rows(); row++ {
		contratoCell := grid.At(row, startCol)
		valorCell := grid.At(row, startCol+1)
		dataCell := grid.At(row, startCol+2)

		if contratoCell.IsEmpty() && valorCell.IsEmpty() && dataCell.IsEmpty() {
			continue
		}
		// planilhas coladas às vezes re-declaram o cabeçalho no meio dos dados
		if containsAny(normalizeLabel(cellText(contratoCell)), contratoVariants) {
			continue
		}

		contrato := strings.TrimSpace(cellText(contratoCell))
		valor, okValor := ParseValor(valorCell)
		data, okData := n.ParseData(dataCell)
		if contrato == "" || !okValor || !okData {
			if diag != nil {
				diag.AddDropped(1)
			}
			continue
		}
		records = append(records, domain.Record{Contrato: contrato, Valor: valor, DataCredito: data})
	}
	return records
}
