package layout

import (
	"testing"
	"time"

	"layout-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(contrato, valor, data string) domain.Record {
	t, err := time.Parse("02/01/2006", data)
	if err != nil {
		panic(err)
	}
	return domain.Record{
		Contrato:    contrato,
		Valor:       decimal.RequireFromString(valor),
		DataCredito: t.UTC(),
	}
}

func filterDataset() *domain.Dataset {
	ds := domain.NewDataset()
	ds.Append(domain.BlockKey{Documento: "AZ", Plano: "1.01.02.01"}, []domain.Record{
		rec("1002", "1234.56", "16/01/2026"),
		rec("1001", "628.91", "15/01/2026"),
		rec("1003", "0.00", "16/01/2026"),
		rec("1004", "100.00", "15/01/2026"),
	})
	ds.Append(domain.BlockKey{Documento: "REG", Plano: "2.02.01.01"}, []domain.Record{
		rec("9001", "300.00", "20/01/2026"),
	})
	return ds
}

func TestFilterOrdersAndExcludesZeros(t *testing.T) {
	diag, report := NewDiagnostics(nil)
	out, err := Filter(filterDataset(), FilterParams{}, diag)
	require.NoError(t, err)

	az := domain.BlockKey{Documento: "AZ", Plano: "1.01.02.01"}
	records := out.Tables[az].Records
	require.Len(t, records, 3)
	// ordenado por (Data Crédito, Contrato); o contrato zerado sai
	assert.Equal(t, "1001", records[0].Contrato)
	assert.Equal(t, "1004", records[1].Contrato)
	assert.Equal(t, "1002", records[2].Contrato)
	assert.Equal(t, 1, report.RowsZeroed)
}

func TestFilterIsIdempotent(t *testing.T) {
	diag, _ := NewDiagnostics(nil)
	params := FilterParams{Documentos: []string{"AZ"}, Datas: []string{"15/01/2026"}}

	once, err := Filter(filterDataset(), params, diag)
	require.NoError(t, err)
	twice, err := Filter(once, params, diag)
	require.NoError(t, err)

	assert.Equal(t, once.Order, twice.Order)
	for _, key := range once.Order {
		assert.Equal(t, once.Tables[key].Records, twice.Tables[key].Records)
	}
}

func TestFilterByDocumento(t *testing.T) {
	diag, _ := NewDiagnostics(nil)

	// código isolado
	out, err := Filter(filterDataset(), FilterParams{Documentos: []string{"REG"}}, diag)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())

	// chave composta
	out, err = Filter(filterDataset(), FilterParams{Documentos: []string{"AZ-1.01.02.01"}}, diag)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "AZ", out.Order[0].Documento)
}

func TestFilterByDateRange(t *testing.T) {
	diag, _ := NewDiagnostics(nil)
	out, err := Filter(filterDataset(), FilterParams{
		DataInicial: "16/01/2026",
		DataFinal:   "20/01/2026",
	}, diag)
	require.NoError(t, err)

	az := domain.BlockKey{Documento: "AZ", Plano: "1.01.02.01"}
	require.Len(t, out.Tables[az].Records, 1)
	assert.Equal(t, "1002", out.Tables[az].Records[0].Contrato)
	// intervalo inclusivo nas duas pontas
	reg := domain.BlockKey{Documento: "REG", Plano: "2.02.01.01"}
	assert.Len(t, out.Tables[reg].Records, 1)
}

func TestFilterInvalidBound(t *testing.T) {
	diag, _ := NewDiagnostics(nil)
	_, err := Filter(filterDataset(), FilterParams{DataInicial: "2026-01-16"}, diag)
	requireCode(t, err, domain.CodeInvalidSelection)
}

func TestFilterEmptyResult(t *testing.T) {
	diag, _ := NewDiagnostics(nil)
	_, err := Filter(filterDataset(), FilterParams{Datas: []string{"01/12/2030"}}, diag)
	requireCode(t, err, domain.CodeEmptyAfterFilter)
}

func TestValidateSelections(t *testing.T) {
	idx := BuildOptionIndex(filterDataset())

	// seleções presentes passam, composta ou isolada
	assert.NoError(t, ValidateSelections(idx, FilterParams{
		Documentos: []string{"AZ", "REG-2.02.01.01"},
		Planos:     []string{"1.01.02.01"},
		Datas:      []string{"15/01/2026"},
	}))

	// seleção vazia é um não-filtro
	assert.NoError(t, ValidateSelections(idx, FilterParams{}))

	err := ValidateSelections(idx, FilterParams{
		Documentos: []string{"AX"},
		Datas:      []string{"31/12/2030"},
	})
	requireCode(t, err, domain.CodeInvalidSelection)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Len(t, de.Details, 2)
}
