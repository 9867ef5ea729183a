// package domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CellKind identifica o tipo do conteúdo de uma célula da planilha.
type CellKind int

// Tipos possíveis de célula, decididos no momento da leitura.
const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// CellValue é a variante etiquetada que representa o conteúdo bruto de uma
// célula. A normalização (Valor/Data) é a única fronteira de conversão;
// nenhum outro componente inspeciona tipos em tempo de execução.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Date   time.Time
}

// EmptyCell retorna uma célula vazia.
func EmptyCell() CellValue { return CellValue{Kind: CellEmpty} }

// TextCell retorna uma célula de texto.
func TextCell(s string) CellValue { return CellValue{Kind: CellText, Text: s} }

// NumberCell retorna uma célula numérica.
func NumberCell(d decimal.Decimal) CellValue { return CellValue{Kind: CellNumber, Number: d} }

// DateCell retorna uma célula de data já tipada.
func DateCell(t time.Time) CellValue { return CellValue{Kind: CellDate, Date: t} }

// IsEmpty informa se a célula não carrega conteúdo útil.
func (c CellValue) IsEmpty() bool { return c.Kind == CellEmpty }

// RawGrid é a grade imutável lida da planilha Layout (linha-major).
type RawGrid [][]CellValue

// At devolve a célula na posição pedida; fora dos limites conta como vazia.
func (g RawGrid) At(row, col int) CellValue {
	if row < 0 || row >= len(g) {
		return EmptyCell()
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return EmptyCell()
	}
	return r[col]
}

// Rows devolve o número de linhas da grade.
func (g RawGrid) Rows() int { return len(g) }

// BlockKey identifica um razonete lógico: Documento + Plano Financeiro.
type BlockKey struct {
	Documento string
	Plano     string
}

// String renderiza a chave composta no formato "Documento-Plano".
func (k BlockKey) String() string { return k.Documento + "-" + k.Plano }

// Record é uma linha validada de um bloco: contrato, valor com exatamente
// duas casas decimais e data de crédito.
type Record struct {
	Contrato    string
	Valor       decimal.Decimal
	DataCredito time.Time
}

// BlockTable é a sequência ordenada de registros de um (Documento, Plano).
// Imutável depois de montada; o filtro deriva novas tabelas, nunca muta.
type BlockTable struct {
	Key     BlockKey
	Records []Record
}

// Dataset reúne as tabelas montadas de uma ingestão, preservando a ordem de
// descoberta dos blocos (esquerda para a direita na linha de cabeçalho).
type Dataset struct {
	Tables map[BlockKey]*BlockTable
	Order  []BlockKey
}

// NewDataset cria um dataset vazio.
func NewDataset() *Dataset {
	return &Dataset{Tables: make(map[BlockKey]*BlockTable)}
}

// Append concatena registros na tabela da chave, criando-a se necessário e
// registrando a ordem de descoberta.
func (d *Dataset) Append(key BlockKey, records []Record) {
	t, ok := d.Tables[key]
	if !ok {
		t = &BlockTable{Key: key}
		d.Tables[key] = t
		d.Order = append(d.Order, key)
	}
	t.Records = append(t.Records, records...)
}

// Len devolve o número de tabelas do dataset.
func (d *Dataset) Len() int { return len(d.Tables) }

// OptionIndex é o resumo derivado (somente leitura) de um conjunto de
// tabelas: documentos, planos por documento e datas formatadas dd/mm/aaaa.
type OptionIndex struct {
	Documentos         []string            `json:"documentos"`
	PlanosPorDocumento map[string][]string `json:"planos_por_documento"`
	Datas              []string            `json:"datas"`
	DatasPorDocumento  map[string][]string `json:"datas_por_documento"`
}

// OutputFormat seleciona o formato de saída dos artefatos gerados.
type OutputFormat string

// Formatos suportados pelo gerador de saída.
const (
	FormatXLSX OutputFormat = "xlsx"
	FormatXLS  OutputFormat = "xls"
	FormatCSV  OutputFormat = "csv"
)

// Ext devolve a extensão de arquivo do formato.
func (f OutputFormat) Ext() string { return string(f) }

// Valid informa se o formato é um dos suportados.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatXLSX, FormatXLS, FormatCSV:
		return true
	}
	return false
}

// OutputArtifact descreve um arquivo gerado; nunca é mutado após a criação.
type OutputArtifact struct {
	Path     string       `json:"path"`
	Format   OutputFormat `json:"format"`
	RowCount int          `json:"row_count"`
}

// AccountEntry é uma linha da planilha "Resumo por Conta" cruzada com as
// abas {conta}-* do mesmo arquivo.
type AccountEntry struct {
	Conta     string   `json:"conta"`
	Descricao string   `json:"descricao"`
	Sheets    []string `json:"sheets"`
	HasSheet  bool     `json:"has_sheet"`
}
