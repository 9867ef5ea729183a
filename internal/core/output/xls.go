package output

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"layout-service/internal/domain"
)

// O formato legado é o dialeto XML Spreadsheet 2003, que o Excel abre como
// .xls. Datas saem como seriais numéricos na época compatível com o bug do
// ano bissexto de 1900.
const xlsHeader = `<?xml version="1.0"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
`

var (
	serialEpoch = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	leapBugDay  = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
)

// DateToSerial converte uma data no serial de dias do formato legado: dias
// desde 1899-12-31, com ajuste de +1 para datas a partir de 1900-03-01
// (reproduz o dia 29/02/1900 inexistente que o Excel contabiliza).
func DateToSerial(t time.Time) int {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(serialEpoch).Hours() / 24)
	if !t.Before(leapBugDay) {
		days++
	}
	return days
}

func writeXLS(path string, table *domain.BlockTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(xlsHeader); err != nil {
		return err
	}
	fmt.Fprintf(w, " <Worksheet ss:Name=%q>\n  <Table>\n", sheetDados)

	writeRow := func(cells ...string) {
		w.WriteString("   <Row>")
		for _, c := range cells {
			w.WriteString(c)
		}
		w.WriteString("</Row>\n")
	}

	header := make([]string, len(outputColumns))
	for i, label := range outputColumns {
		header[i] = stringCell(label)
	}
	writeRow(header...)

	for _, rec := range table.Records {
		dates := recordDates(rec)
		writeRow(
			stringCell(rec.Contrato),
			numberCell(rec.Valor.StringFixed(2)),
			numberCell(fmt.Sprintf("%d", DateToSerial(dates[0]))),
			numberCell(fmt.Sprintf("%d", DateToSerial(dates[1]))),
			numberCell(fmt.Sprintf("%d", DateToSerial(dates[2]))),
			numberCell(fmt.Sprintf("%d", DateToSerial(dates[3]))),
		)
	}

	if _, err := w.WriteString("  </Table>\n </Worksheet>\n</Workbook>\n"); err != nil {
		return err
	}
	return w.Flush()
}

func stringCell(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return fmt.Sprintf(`<Cell><Data ss:Type="String">%s</Data></Cell>`, b.String())
}

func numberCell(s string) string {
	return fmt.Sprintf(`<Cell><Data ss:Type="Number">%s</Data></Cell>`, s)
}
