package layout

import (
	"sort"
	"strings"
	"time"

	"layout-service/internal/domain"

	"go.uber.org/zap"
)

// ---------------------- montagem do dataset ----------------------

// Assemble percorre todos os inícios de bloco da grade e monta o dataset
// por (Documento, Plano). Blocos sem metadado ou sem linhas válidas são
// pulados com aviso; blocos com a mesma chave são concatenados na ordem de
// descoberta. Falha com NO_VALID_BLOCKS se nada sobrar.
func Assemble(grid domain.RawGrid, headerWindow, metaWindow int, n Normalizer, diag Diagnostics) (*domain.Dataset, error) {
	headerRow, err := FindHeaderRow(grid, headerWindow)
	if err != nil {
		return nil, err
	}
	starts, err := FindBlockStarts(grid, headerRow)
	if err != nil {
		return nil, err
	}

	ds := domain.NewDataset()
	for _, start := range starts {
		key, ok := ExtractMetadata(grid, headerRow, start, metaWindow)
		if !ok {
			diag.Record(LevelWarning, "bloco sem Documento/Plano acima do cabeçalho; ignorando",
				zap.Int("coluna", start))
			continue
		}
		records := ExtractRows(grid, headerRow, start, n, diag)
		if len(records) == 0 {
			diag.Record(LevelWarning, "nenhum dado válido encontrado para o bloco",
				zap.String("documento", key.String()))
			continue
		}
		ds.Append(key, records)
		diag.Record(LevelInfo, "bloco extraído",
			zap.String("documento", key.String()), zap.Int("registros", len(records)))
	}

	if ds.Len() == 0 {
		return nil, domain.NewError(domain.CodeNoValidBlocks,
			"nenhum dado válido encontrado na planilha Layout")
	}
	return ds, nil
}

// BuildOptionIndex deriva o resumo completo (pré-filtro) de um dataset:
// documentos-plano ordenados, planos por documento e datas dd/mm/aaaa
// distintas, global e por documento.
func BuildOptionIndex(ds *domain.Dataset) domain.OptionIndex {
	idx := domain.OptionIndex{
		PlanosPorDocumento: make(map[string][]string),
		DatasPorDocumento:  make(map[string][]string),
	}
	global := make(map[string]struct{})

	for _, key := range ds.Order {
		table := ds.Tables[key]
		chave := key.String()
		idx.Documentos = append(idx.Documentos, chave)
		idx.PlanosPorDocumento[chave] = appendUnique(idx.PlanosPorDocumento[chave], key.Plano)

		datas := make(map[string]struct{})
		for _, rec := range table.Records {
			s := FormatData(rec.DataCredito)
			datas[s] = struct{}{}
			global[s] = struct{}{}
		}
		idx.DatasPorDocumento[chave] = sortDatas(datas)
	}

	sort.Strings(idx.Documentos)
	idx.Datas = sortDatas(global)
	return idx
}

// ClassifyValidity computa o subconjunto de valor não-zero de cada tabela e
// devolve o índice de opções restrito a ele. Tabelas totalmente zeradas são
// mantidas com lista de datas vazia, para que o chamador saiba que o bloco
// existe mas não tem dados aproveitáveis.
func ClassifyValidity(ds *domain.Dataset, diag Diagnostics) domain.OptionIndex {
	idx := domain.OptionIndex{
		PlanosPorDocumento: make(map[string][]string),
		DatasPorDocumento:  make(map[string][]string),
	}
	global := make(map[string]struct{})

	for _, key := range ds.Order {
		table := ds.Tables[key]
		chave := key.String()

		var validas []domain.Record
		var zerados []string
		for _, rec := range table.Records {
			if rec.Valor.IsZero() {
				zerados = append(zerados, rec.Contrato)
				continue
			}
			validas = append(validas, rec)
		}
		if len(zerados) > 0 {
			diag.AddZeroed(len(zerados))
			diag.Record(LevelWarning, "bloco possui contratos com valor zerado",
				zap.String("documento", chave),
				zap.String("contratos", strings.Join(zerados, ", ")))
		}

		if len(validas) == 0 {
			diag.Record(LevelWarning, "bloco não possui dados válidos (todos zerados)",
				zap.String("documento", chave))
			idx.DatasPorDocumento[chave] = []string{}
			continue
		}

		idx.Documentos = append(idx.Documentos, chave)
		idx.PlanosPorDocumento[chave] = appendUnique(idx.PlanosPorDocumento[chave], key.Plano)

		datas := make(map[string]struct{})
		for _, rec := range validas {
			s := FormatData(rec.DataCredito)
			datas[s] = struct{}{}
			global[s] = struct{}{}
		}
		idx.DatasPorDocumento[chave] = sortDatas(datas)
	}

	sort.Strings(idx.Documentos)
	idx.Datas = sortDatas(global)
	return idx
}

// sortDatas ordena datas dd/mm/aaaa cronologicamente.
func sortDatas(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, ei := time.Parse("02/01/2006", out[i])
		tj, ej := time.Parse("02/01/2006", out[j])
		if ei != nil || ej != nil {
			return out[i] < out[j]
		}
		return ti.Before(tj)
	})
	return out
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
