package layout

import (
	"strings"

	"layout-service/internal/domain"
)

// ---------------------- localização de blocos ----------------------

// Variantes reconhecidas dos três rótulos canônicos. O casamento é por
// substring sobre o texto normalizado, então "Contrato", "CONTRATO" e
// "Contract" caem todos na mesma variante.
var (
	contratoVariants    = []string{"CONTRATO", "CONTRACT", "CONTRAT"}
	valorVariants       = []string{"VALOR", "VALUE", "VLR"}
	dataCreditoVariants = []string{"DATA CREDITO", "DT CREDITO", "CREDIT DATE", "CREDITO"}
)

func containsAny(s string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}

// cellText renderiza uma célula como texto para fins de rótulo/metadado.
func cellText(cell domain.CellValue) string {
	switch cell.Kind {
	case domain.CellText:
		return cell.Text
	case domain.CellNumber:
		return cell.Number.String()
	case domain.CellDate:
		return FormatData(cell.Date)
	}
	return ""
}

// FindHeaderRow varre no máximo as primeiras `window` linhas da grade e
// devolve a primeira cujo texto normalizado contém os três rótulos
// canônicos (ou variantes). Falha com HEADER_NOT_FOUND se nenhuma servir.
func FindHeaderRow(grid domain.RawGrid, window int) (int, error) {
	limit := window
	if limit > grid.Rows() {
		limit = grid.Rows()
	}
	for i := 0; i < limit; i++ {
		var parts []string
		for _, cell := range grid[i] {
			if cell.IsEmpty() {
				continue
			}
			parts = append(parts, normalizeLabel(cellText(cell)))
		}
		joined := strings.Join(parts, " ")
		if containsAny(joined, contratoVariants) &&
			containsAny(joined, valorVariants) &&
			containsAny(joined, dataCreditoVariants) {
			return i, nil
		}
	}
	return 0, domain.NewError(domain.CodeHeaderNotFound,
		"linha de cabeçalho (Contrato, Valor, Data Crédito) não encontrada")
}

// FindBlockStarts varre a linha de cabeçalho da esquerda para a direita e
// devolve os índices de coluna cujo rótulo casa com uma variante de
// "Contrato" — cada um é o início de um bloco de três colunas. Falha com
// NO_BLOCKS_FOUND se nenhum qualificar.
func FindBlockStarts(grid domain.RawGrid, headerRow int) ([]int, error) {
	if headerRow < 0 || headerRow >= grid.Rows() {
		return nil, domain.NewError(domain.CodeNoBlocksFound, "linha de cabeçalho fora da grade")
	}
	var starts []int
	for col := range grid[headerRow] {
		label := normalizeLabel(cellText(grid.At(headerRow, col)))
		if label == "" {
			continue
		}
		if containsAny(label, contratoVariants) {
			starts = append(starts, col)
		}
	}
	if len(starts) == 0 {
		return nil, domain.NewError(domain.CodeNoBlocksFound,
			"nenhum bloco (coluna Contrato) encontrado na linha de cabeçalho")
	}
	return starts, nil
}
