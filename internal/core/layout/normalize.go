package layout

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"layout-service/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ---------------------- normalização de rótulos ----------------------

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeLabel remove acentos, põe em maiúsculas e colapsa espaços, para
// que "Data Crédito", "DATA CREDITO" e "data  crédito" casem entre si.
func normalizeLabel(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// ---------------------- valores ----------------------

// ParseValor converte o conteúdo bruto de uma célula em um decimal com
// exatamente duas casas. Células numéricas passam direto (a representação
// decimal exata, nunca float binário); strings seguem a convenção
// brasileira de separadores. Entrada não interpretável devolve ok=false,
// tratada como ausente, não como erro.
func ParseValor(cell domain.CellValue) (decimal.Decimal, bool) {
	switch cell.Kind {
	case domain.CellNumber:
		return roundTwoPlaces(cell.Number), true
	case domain.CellText:
		return parseValorString(cell.Text)
	}
	return decimal.Zero, false
}

func parseValorString(val string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(val)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	// parênteses indicam valor negativo
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSuffix(s, ")"), "("))
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// convenção brasileira: ponto é milhar, vírgula é decimal
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return roundTwoPlaces(d), true
}

// roundTwoPlaces garante exatamente duas casas decimais; valores que já as
// possuem passam inalterados, o restante é arredondado half-up.
func roundTwoPlaces(d decimal.Decimal) decimal.Decimal {
	if d.Exponent() == -2 {
		return d
	}
	return d.Round(2)
}

// ---------------------- datas ----------------------

// Normalizer concentra a interpretação de datas, inclusive a janela de
// seriais do Excel aceita (evita confundir números comuns com datas).
type Normalizer struct {
	serialMin float64
	serialMax float64
}

// NewNormalizer cria um normalizador com a janela de seriais informada.
func NewNormalizer(serialMin, serialMax int) Normalizer {
	return Normalizer{serialMin: float64(serialMin), serialMax: float64(serialMax)}
}

// formatos tentados em ordem; dia-primeiro tem precedência sobre
// mês-primeiro em entradas ambíguas.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
}

// ParseData converte o conteúdo bruto de uma célula em data de calendário.
// Aceita células já tipadas como data, strings dia-primeiro e seriais do
// Excel dentro da janela configurada. Entrada não interpretável devolve
// ok=false.
func (n Normalizer) ParseData(cell domain.CellValue) (time.Time, bool) {
	switch cell.Kind {
	case domain.CellDate:
		return dateOnly(cell.Date), true
	case domain.CellNumber:
		f, _ := cell.Number.Float64()
		if f > n.serialMin && f < n.serialMax {
			return serialToDate(f), true
		}
	case domain.CellText:
		s := strings.TrimSpace(cell.Text)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t), true
			}
		}
		if len(s) > 10 {
			if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
				return dateOnly(t), true
			}
		}
		if d, err := decimal.NewFromString(s); err == nil {
			f, _ := d.Float64()
			if f > n.serialMin && f < n.serialMax {
				return serialToDate(f), true
			}
		}
	}
	return time.Time{}, false
}

// serialToDate converte um serial do Excel (base 1899-12-30, compatível com
// o bug do ano bissexto de 1900) em data UTC.
func serialToDate(serial float64) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	return dateOnly(base.AddDate(0, 0, int(serial)))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatData renderiza a data no formato de exibição dd/mm/aaaa.
func FormatData(t time.Time) string {
	return t.Format("02/01/2006")
}
