package layout

import (
	"testing"
	"time"

	"layout-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "DATA CREDITO", normalizeLabel("Data Crédito"))
	assert.Equal(t, "DATA CREDITO", normalizeLabel("  data  crédito  "))
	assert.Equal(t, "PLANO FINANCEIRO", normalizeLabel("Plano/Financeiro"))
	assert.Equal(t, "CONTRATO", normalizeLabel("CONTRATO:"))
	assert.Equal(t, "", normalizeLabel("   "))
}

func TestParseValorStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"628,91", "628.91"},
		{"293.947,68", "293947.68"},
		{"1.234,5", "1234.50"},
		{"123.456", "123.46"},
		{"0,00", "0.00"},
		{"(100)", "-100.00"},
		{"(1.234,56)", "-1234.56"},
		{"R$ 2.500,00", "2500.00"},
		{"100", "100.00"},
	}
	for _, tc := range cases {
		got, ok := ParseValor(domain.TextCell(tc.in))
		require.True(t, ok, "entrada %q deveria ser interpretável", tc.in)
		assert.Equal(t, tc.want, got.StringFixed(2), "entrada %q", tc.in)
	}
}

func TestParseValorNumberPassesThrough(t *testing.T) {
	d := decimal.RequireFromString("628.91")
	got, ok := ParseValor(domain.NumberCell(d))
	require.True(t, ok)
	assert.True(t, got.Equal(d))
	// já com duas casas: passa inalterado, sem novo arredondamento
	assert.Equal(t, int32(-2), got.Exponent())

	got, ok = ParseValor(domain.NumberCell(decimal.RequireFromString("123.456")))
	require.True(t, ok)
	assert.Equal(t, "123.46", got.StringFixed(2))
}

func TestParseValorRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12,34,56"} {
		_, ok := ParseValor(domain.TextCell(in))
		assert.False(t, ok, "entrada %q não deveria ser interpretável", in)
	}
	_, ok := ParseValor(domain.EmptyCell())
	assert.False(t, ok)
}

func TestParseDataStrings(t *testing.T) {
	n := NewNormalizer(35000, 47000)

	got, ok := n.ParseData(domain.TextCell("15/01/2026"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), got)

	// dia-primeiro tem precedência em entradas ambíguas
	got, ok = n.ParseData(domain.TextCell("02/03/2026"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)

	got, ok = n.ParseData(domain.TextCell("2026-01-15"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), got)

	// timestamps longos valem pelo prefixo de data
	got, ok = n.ParseData(domain.TextCell("2026-01-15T10:30:00Z"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDataSerials(t *testing.T) {
	n := NewNormalizer(35000, 47000)

	got, ok := n.ParseData(domain.NumberCell(decimal.NewFromInt(38000)))
	require.True(t, ok)
	assert.Equal(t, time.Date(2004, 1, 14, 0, 0, 0, 0, time.UTC), got)

	got, ok = n.ParseData(domain.TextCell("45292"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)

	// fora da janela, números comuns não viram data
	_, ok = n.ParseData(domain.NumberCell(decimal.NewFromInt(1234)))
	assert.False(t, ok)
	_, ok = n.ParseData(domain.NumberCell(decimal.NewFromInt(99999)))
	assert.False(t, ok)
}

func TestParseDataTypedAndRejects(t *testing.T) {
	n := NewNormalizer(35000, 47000)

	stamp := time.Date(2026, 5, 10, 13, 45, 0, 0, time.Local)
	got, ok := n.ParseData(domain.DateCell(stamp))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), got)

	for _, in := range []string{"", "não é data", "32/13/2026"} {
		_, ok := n.ParseData(domain.TextCell(in))
		assert.False(t, ok, "entrada %q", in)
	}
	_, ok = n.ParseData(domain.EmptyCell())
	assert.False(t, ok)
}

func TestFormatData(t *testing.T) {
	assert.Equal(t, "05/03/2026", FormatData(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
}
