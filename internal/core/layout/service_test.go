package layout

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"layout-service/internal/config"
	"layout-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// buildWorkbook monta em memória um .xlsx com a aba Layout contendo dois
// blocos lado a lado: AZ com três contratos aproveitáveis e um zerado, REG
// com todos os contratos zerados.
func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Layout"))

	rows := [][]interface{}{
		{"Relatório de Crédito"},
		{"AZ", "1.01.02.01", "", "", "REG", "2.02.01.01"},
		{"Contrato", "Valor", "Data Crédito", "", "Contrato", "Valor", "Data Crédito"},
		{"1001", "628,91", "15/01/2026", "", "9001", "0,00", "15/01/2026"},
		{"1002", "1.234,56", "16/01/2026", "", "9002", "0,00", "16/01/2026"},
		{"1003", "0,00", "16/01/2026"},
		{"1004", "100,00", "15/01/2026"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Layout", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newTestService() Service {
	return NewService(config.Default(), zap.NewNop())
}

func TestServiceOptions(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()

	result, err := svc.Options(bytes.NewReader(data), "planilha.xlsx", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"AZ-1.01.02.01", "REG-2.02.01.01"}, result.Opcoes.Documentos)
	// só AZ tem dados com valor diferente de zero
	assert.Equal(t, []string{"AZ-1.01.02.01"}, result.DadosValidos.Documentos)
	assert.Equal(t, []string{"15/01/2026", "16/01/2026"}, result.DadosValidos.Datas)
	assert.NotEmpty(t, result.Avisos)
}

func TestServiceDates(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()

	result, err := svc.Dates(bytes.NewReader(data), "planilha.xlsx", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"15/01/2026", "16/01/2026"}, result.DatasPorDocumento["AZ-1.01.02.01"])
	assert.Empty(t, result.DatasPorDocumento["REG-2.02.01.01"])
}

func TestServiceValidate(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()

	result, err := svc.Validate(bytes.NewReader(data), "planilha.xlsx", "")
	require.NoError(t, err)

	assert.True(t, result.Pronto)
	require.Len(t, result.Checklist, 4)
	for _, item := range result.Checklist {
		assert.Equal(t, statusOK, item.Status, item.Item)
	}
}

func TestServiceValidateWrongSheet(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()

	result, err := svc.Validate(bytes.NewReader(data), "planilha.xlsx", "Inexistente")
	require.NoError(t, err)

	assert.False(t, result.Pronto)
	require.NotEmpty(t, result.Checklist)
	assert.Equal(t, statusErro, result.Checklist[0].Status)
}

func TestServiceGenerateCSV(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()
	destino := t.TempDir()

	result, err := svc.Generate(bytes.NewReader(data), "planilha.xlsx", GenerateParams{
		Destino: destino,
		Formato: domain.FormatCSV,
	})
	require.NoError(t, err)

	// REG só tem zeros e não gera artefato
	require.Len(t, result.Artifacts, 1)
	assert.Empty(t, result.Failures)
	art := result.Artifacts[0]
	assert.Equal(t, 3, art.RowCount)
	assert.Equal(t, filepath.Join(destino, "AZ", "AZ-1.01.02.01.csv"), art.Path)

	file, err := os.Open(art.Path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Contrato", "Valor", "Data Crédito", "Emissão", "Vencimento", "Competência"}, rows[0])
	// ordenado por (Data Crédito, Contrato), com vírgula decimal e datas
	// derivadas espelhando a Data Crédito
	assert.Equal(t, []string{"1001", "628,91", "15/01/2026", "15/01/2026", "15/01/2026", "15/01/2026"}, rows[1])
	assert.Equal(t, []string{"1004", "100,00", "15/01/2026", "15/01/2026", "15/01/2026", "15/01/2026"}, rows[2])
	assert.Equal(t, []string{"1002", "1234,56", "16/01/2026", "16/01/2026", "16/01/2026", "16/01/2026"}, rows[3])
}

func TestServiceGenerateVersionsExistingFiles(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()
	destino := t.TempDir()
	params := GenerateParams{Destino: destino, Formato: domain.FormatCSV}

	first, err := svc.Generate(bytes.NewReader(data), "planilha.xlsx", params)
	require.NoError(t, err)
	second, err := svc.Generate(bytes.NewReader(data), "planilha.xlsx", params)
	require.NoError(t, err)
	third, err := svc.Generate(bytes.NewReader(data), "planilha.xlsx", params)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destino, "AZ", "AZ-1.01.02.01.csv"), first.Artifacts[0].Path)
	assert.Equal(t, filepath.Join(destino, "AZ", "AZ-1.01.02.01-v2.csv"), second.Artifacts[0].Path)
	assert.Equal(t, filepath.Join(destino, "AZ", "AZ-1.01.02.01-v3.csv"), third.Artifacts[0].Path)
}

func TestServiceGenerateXLSX(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()
	destino := t.TempDir()

	result, err := svc.Generate(bytes.NewReader(data), "planilha.xlsx", GenerateParams{
		Destino:   destino,
		NomePasta: "Janeiro",
		Filtro:    FilterParams{Datas: []string{"15/01/2026"}},
	})
	require.NoError(t, err)

	require.Len(t, result.Artifacts, 1)
	art := result.Artifacts[0]
	assert.Equal(t, domain.FormatXLSX, art.Format)
	assert.Equal(t, filepath.Join(destino, "Janeiro", "AZ-1.01.02.01.xlsx"), art.Path)
	assert.Equal(t, 2, art.RowCount)

	f, err := excelize.OpenFile(art.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dados")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1001", rows[1][0])
	assert.Equal(t, "1004", rows[2][0])
}

func TestServiceGenerateInvalidSelection(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()

	_, err := svc.Generate(bytes.NewReader(data), "planilha.xlsx", GenerateParams{
		Destino: t.TempDir(),
		Filtro:  FilterParams{Documentos: []string{"AX"}},
	})
	requireCode(t, err, domain.CodeInvalidSelection)
}

func TestServiceSheetNotFound(t *testing.T) {
	data := buildWorkbook(t)
	svc := newTestService()

	_, err := svc.Options(bytes.NewReader(data), "planilha.xlsx", "Outra")
	requireCode(t, err, domain.CodeSheetNotFound)
}
