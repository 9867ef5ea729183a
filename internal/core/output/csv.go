package output

import (
	"encoding/csv"
	"os"
	"strings"

	"layout-service/internal/domain"
)

// writeCSV grava o texto delimitado: UTF-8, separador ';' e terminador
// '\n'. Valores saem com duas casas e vírgula decimal; datas no formato
// fixo dd/mm/aaaa.
func writeCSV(path string, table *domain.BlockTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	if err := writer.Write(outputColumns); err != nil {
		return err
	}
	for _, rec := range table.Records {
		dates := recordDates(rec)
		record := []string{
			rec.Contrato,
			formatValorCSV(rec),
			dates[0].Format("02/01/2006"),
			dates[1].Format("02/01/2006"),
			dates[2].Format("02/01/2006"),
			dates[3].Format("02/01/2006"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatValorCSV renderiza o valor com exatamente duas casas e vírgula
// decimal, como os importadores legados esperam.
func formatValorCSV(rec domain.Record) string {
	return strings.Replace(rec.Valor.StringFixed(2), ".", ",", 1)
}
