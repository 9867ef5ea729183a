package layout

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"layout-service/internal/domain"

	"github.com/schollz/closestmatch"
	"go.uber.org/zap"
)

// ---------------------- filtro e validade ----------------------

// FilterParams são os filtros opcionais do usuário. Documentos aceitam
// tanto o código isolado ("AZ") quanto a chave composta ("AZ-1.01.02.01");
// datas chegam como strings dd/mm/aaaa.
type FilterParams struct {
	Documentos  []string
	Planos      []string
	Datas       []string
	DataInicial string
	DataFinal   string
}

func (p FilterParams) isEmpty() bool {
	return len(p.Documentos) == 0 && len(p.Planos) == 0 && len(p.Datas) == 0 &&
		p.DataInicial == "" && p.DataFinal == ""
}

// parseBound interpreta um limite de intervalo dd/mm/aaaa.
func parseBound(s string) (time.Time, error) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.NewErrorWithDetails(domain.CodeInvalidSelection,
			"data de intervalo inválida", []string{s})
	}
	return dateOnly(t), nil
}

// Filter deriva um novo dataset com as tabelas e linhas que sobrevivem aos
// filtros. Linhas de valor zero são logadas contrato a contrato e
// excluídas; as sobreviventes saem ordenadas por (Data Crédito, Contrato)
// para garantir saída determinística. Tabelas que não contribuem com
// nenhuma linha são omitidas. Falha com EMPTY_AFTER_FILTERING quando o
// resultado inteiro fica vazio — condição recuperável, o usuário pode
// tentar de novo com filtros mais largos.
func Filter(ds *domain.Dataset, params FilterParams, diag Diagnostics) (*domain.Dataset, error) {
	docSel := toSet(params.Documentos)
	planoSel := toSet(params.Planos)
	dataSel := make(map[string]struct{})
	for _, s := range params.Datas {
		if t, err := time.Parse("02/01/2006", strings.TrimSpace(s)); err == nil {
			dataSel[FormatData(t)] = struct{}{}
		} else {
			dataSel[strings.TrimSpace(s)] = struct{}{}
		}
	}

	var di, df time.Time
	var hasDi, hasDf bool
	if params.DataInicial != "" {
		t, err := parseBound(params.DataInicial)
		if err != nil {
			return nil, err
		}
		di, hasDi = t, true
	}
	if params.DataFinal != "" {
		t, err := parseBound(params.DataFinal)
		if err != nil {
			return nil, err
		}
		df, hasDf = t, true
	}

	result := domain.NewDataset()
	for _, key := range ds.Order {
		table := ds.Tables[key]
		chave := key.String()

		if len(docSel) > 0 && !inSet(docSel, key.Documento) && !inSet(docSel, chave) {
			continue
		}
		if len(planoSel) > 0 && !inSet(planoSel, key.Plano) && !inSet(planoSel, chave) {
			continue
		}

		var kept []domain.Record
		var zerados []string
		for _, rec := range table.Records {
			if len(dataSel) > 0 {
				if _, ok := dataSel[FormatData(rec.DataCredito)]; !ok {
					continue
				}
			}
			if hasDi && rec.DataCredito.Before(di) {
				continue
			}
			if hasDf && rec.DataCredito.After(df) {
				continue
			}
			if rec.Valor.IsZero() {
				zerados = append(zerados, rec.Contrato)
				continue
			}
			kept = append(kept, rec)
		}

		if len(zerados) > 0 {
			diag.AddZeroed(len(zerados))
			diag.Record(LevelWarning, "contratos com valor zerado ignorados",
				zap.String("documento", chave),
				zap.String("contratos", strings.Join(zerados, ", ")))
		}
		if len(kept) == 0 {
			continue
		}

		sort.SliceStable(kept, func(i, j int) bool {
			if !kept[i].DataCredito.Equal(kept[j].DataCredito) {
				return kept[i].DataCredito.Before(kept[j].DataCredito)
			}
			return kept[i].Contrato < kept[j].Contrato
		})
		result.Append(key, kept)
	}

	if result.Len() == 0 {
		return nil, domain.NewError(domain.CodeEmptyAfterFilter,
			"nenhum dado restou após a aplicação dos filtros")
	}
	return result, nil
}

// ValidateSelections confere, antes do filtro, se cada documento, plano e
// data selecionados existem no índice de opções. Devolve INVALID_SELECTION
// com a lista exata das seleções inválidas (e a opção válida mais próxima,
// quando houver) — checagem consultiva, para que o chamador apresente um
// erro preciso em vez de um resultado silenciosamente vazio.
func ValidateSelections(idx domain.OptionIndex, params FilterParams) error {
	if params.isEmpty() {
		return nil
	}

	docParts := make(map[string]struct{})
	planoParts := make(map[string]struct{})
	for _, chave := range idx.Documentos {
		if i := strings.Index(chave, "-"); i > 0 {
			docParts[chave[:i]] = struct{}{}
			planoParts[chave[i+1:]] = struct{}{}
		}
	}
	for _, planos := range idx.PlanosPorDocumento {
		for _, p := range planos {
			planoParts[p] = struct{}{}
		}
	}
	chaves := toSet(idx.Documentos)
	datas := toSet(idx.Datas)

	var invalid []string
	for _, sel := range params.Documentos {
		s := strings.TrimSpace(sel)
		if s == "" {
			continue
		}
		if inSet(chaves, s) || inSet(docParts, s) {
			continue
		}
		invalid = append(invalid, withSuggestion("documento", s, idx.Documentos))
	}
	for _, sel := range params.Planos {
		s := strings.TrimSpace(sel)
		if s == "" {
			continue
		}
		if inSet(planoParts, s) || inSet(chaves, s) {
			continue
		}
		invalid = append(invalid, fmt.Sprintf("plano inválido: %s", s))
	}
	for _, sel := range params.Datas {
		s := strings.TrimSpace(sel)
		if s == "" {
			continue
		}
		if t, err := time.Parse("02/01/2006", s); err == nil {
			s = FormatData(t)
		}
		if inSet(datas, s) {
			continue
		}
		invalid = append(invalid, fmt.Sprintf("data inválida: %s", s))
	}

	if len(invalid) > 0 {
		return domain.NewErrorWithDetails(domain.CodeInvalidSelection,
			"seleção contém entradas ausentes do arquivo", invalid)
	}
	return nil
}

// withSuggestion anexa a opção válida mais próxima da seleção inválida.
func withSuggestion(kind, sel string, options []string) string {
	if len(options) == 0 {
		return fmt.Sprintf("%s inválido: %s", kind, sel)
	}
	cm := closestmatch.New(options, []int{2, 3})
	if match := cm.Closest(sel); match != "" {
		return fmt.Sprintf("%s inválido: %s (mais próximo: %s)", kind, sel, match)
	}
	return fmt.Sprintf("%s inválido: %s", kind, sel)
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

func inSet(set map[string]struct{}, s string) bool {
	_, ok := set[s]
	return ok
}
