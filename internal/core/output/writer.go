// Package output gera os artefatos de saída, um por (Documento, Plano)
// sobrevivente, nos três formatos suportados: pasta de trabalho atual
// (.xlsx), pasta de trabalho legada (.xls) e texto delimitado (.csv).
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"layout-service/internal/domain"

	"go.uber.org/zap"
)

const sheetDados = "Dados"

// Diagnostics é o que o gerador precisa do coletor de diagnóstico da
// ingestão; a implementação concreta vem do pipeline.
type Diagnostics interface {
	Record(level string, message string, context ...zap.Field)
}

const (
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

// Colunas de saída: Contrato, Valor e as colunas de data derivadas.
// Emissão, Vencimento e Competência assumem o valor de Data Crédito quando
// não existem na origem.
var outputColumns = []string{"Contrato", "Valor", "Data Crédito", "Emissão", "Vencimento", "Competência"}

// Result reúne os artefatos gerados e as falhas coletadas. A política de
// falha é pular e coletar: um artefato que não pôde ser escrito vira uma
// WriteFailure com caminho e causa, e os demais continuam sendo gerados.
type Result struct {
	Artifacts []domain.OutputArtifact `json:"artifacts"`
	Failures  []domain.WriteFailure   `json:"failures,omitempty"`
}

// Write gera um arquivo por tabela do dataset, sob
// {destino}/{pasta}/{Documento}-{Plano}.{ext}, versionando em caso de
// colisão. Tabelas vazias são puladas com aviso.
func Write(ds *domain.Dataset, destino string, format domain.OutputFormat, nomePasta string, diag Diagnostics) (Result, error) {
	if !format.Valid() {
		return Result{}, domain.NewError(domain.CodeInvalidFormat,
			fmt.Sprintf("formato de saída não suportado: %s", format))
	}
	if err := os.MkdirAll(destino, 0o755); err != nil {
		return Result{}, domain.WrapError(domain.CodeOutputWriteFailure,
			fmt.Sprintf("erro ao criar pasta de destino %s", destino), err)
	}

	var res Result
	for _, key := range ds.Order {
		table := ds.Tables[key]
		if len(table.Records) == 0 {
			diag.Record(levelWarning, "sem linhas para o bloco; pulando geração",
				zap.String("documento", key.String()))
			continue
		}

		folder := nomePasta
		if folder == "" {
			folder = key.Documento
		}
		dir := filepath.Join(destino, SanitizeName(folder))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			res.Failures = append(res.Failures, domain.NewWriteFailure(dir, err))
			diag.Record(levelError, "erro ao criar pasta do documento",
				zap.String("pasta", dir), zap.Error(err))
			continue
		}

		stem := fmt.Sprintf("%s-%s", SanitizeName(key.Documento), SanitizeName(key.Plano))
		path := versionedPath(dir, stem, format.Ext())

		var err error
		switch format {
		case domain.FormatXLSX:
			err = writeXLSX(path, table)
		case domain.FormatXLS:
			err = writeXLS(path, table)
		case domain.FormatCSV:
			err = writeCSV(path, table)
		}
		if err != nil {
			res.Failures = append(res.Failures, domain.NewWriteFailure(path, err))
			diag.Record(levelError, "erro ao gerar arquivo",
				zap.String("arquivo", path), zap.Error(err))
			continue
		}

		res.Artifacts = append(res.Artifacts, domain.OutputArtifact{
			Path:     path,
			Format:   format,
			RowCount: len(table.Records),
		})
		diag.Record(levelInfo, "arquivo gerado",
			zap.String("arquivo", path), zap.Int("linhas", len(table.Records)))
	}

	if len(res.Artifacts) == 0 && len(res.Failures) == 0 {
		diag.Record(levelWarning, "nenhum arquivo foi gerado (todos os blocos estavam vazios)")
	}
	return res, nil
}

// recordDates devolve as quatro colunas de data de um registro; as
// derivadas espelham a Data Crédito.
func recordDates(rec domain.Record) [4]time.Time {
	return [4]time.Time{rec.DataCredito, rec.DataCredito, rec.DataCredito, rec.DataCredito}
}
