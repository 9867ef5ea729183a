package layout

import (
	"fmt"
	"io"

	"layout-service/internal/config"
	"layout-service/internal/core/output"
	"layout-service/internal/domain"

	"go.uber.org/zap"
)

// Service define a interface do pipeline de leitura da aba Layout:
// descoberta de blocos, filtragem e geração de arquivos por
// (Documento, Plano).
type Service interface {
	// Options ingere a planilha e devolve o índice de opções filtráveis,
	// tanto o completo (pré-classificação) quanto o restrito a dados
	// com valor diferente de zero.
	Options(file io.Reader, filename string, sheet string) (*OptionsResult, error)

	// Dates devolve as datas de crédito disponíveis por composto
	// Documento-Plano, apenas dos blocos com dados válidos.
	Dates(file io.Reader, filename string, sheet string) (*DatesResult, error)

	// Validate roda a checklist de pré-processamento sem gerar nada.
	Validate(file io.Reader, filename string, sheet string) (*ValidationResult, error)

	// Generate executa o pipeline completo: ingestão, validação das
	// seleções, filtragem e escrita dos artefatos.
	Generate(file io.Reader, filename string, params GenerateParams) (*GenerateResult, error)
}

type service struct {
	cfg config.Settings
	log *zap.Logger
}

// NewService cria uma nova instância do serviço de layout.
func NewService(cfg config.Settings, log *zap.Logger) Service {
	return &service{cfg: cfg, log: log}
}

// OptionsResult carrega os dois índices de opções: o completo reflete
// tudo que foi descoberto na planilha; o válido exclui blocos cujo
// total é zero.
type OptionsResult struct {
	Opcoes       domain.OptionIndex `json:"opcoes"`
	DadosValidos domain.OptionIndex `json:"dados_validos"`
	Avisos       []string           `json:"avisos,omitempty"`
}

// DatesResult lista as datas por composto Documento-Plano.
type DatesResult struct {
	DatasPorDocumento map[string][]string `json:"datas_por_documento"`
	Avisos            []string            `json:"avisos,omitempty"`
}

// GenerateParams reúne as entradas da geração. Formato vazio assume
// xlsx; NomePasta vazio usa o Documento de cada bloco como pasta.
type GenerateParams struct {
	Sheet     string
	Destino   string
	NomePasta string
	Formato   domain.OutputFormat
	Filtro    FilterParams
}

// GenerateResult descreve o que foi escrito e o que falhou, junto com
// o resumo de diagnóstico da ingestão.
type GenerateResult struct {
	Artifacts []domain.OutputArtifact `json:"artifacts"`
	Failures  []domain.WriteFailure   `json:"failures,omitempty"`
	Avisos    []string                `json:"avisos,omitempty"`
	Descartes int                     `json:"linhas_descartadas"`
	Zerados   int                     `json:"linhas_zeradas"`
}

// ingest cobre a parte comum das operações: carrega a grade da aba e
// monta o dataset de blocos.
func (svc *service) ingest(file io.Reader, filename, sheet string, diag Diagnostics) (*domain.Dataset, error) {
	if sheet == "" {
		sheet = svc.cfg.Sheet
	}
	grid, err := LoadGrid(file, filename, sheet)
	if err != nil {
		return nil, err
	}
	n := NewNormalizer(svc.cfg.SerialMin, svc.cfg.SerialMax)
	return Assemble(grid, svc.cfg.HeaderWindow, svc.cfg.MetaWindow, n, diag)
}

func (svc *service) Options(file io.Reader, filename string, sheet string) (*OptionsResult, error) {
	diag, report := NewDiagnostics(svc.log)
	ds, err := svc.ingest(file, filename, sheet, diag)
	if err != nil {
		return nil, err
	}
	completas := BuildOptionIndex(ds)
	validas := ClassifyValidity(ds, diag)
	return &OptionsResult{
		Opcoes:       completas,
		DadosValidos: validas,
		Avisos:       report.Warnings,
	}, nil
}

func (svc *service) Dates(file io.Reader, filename string, sheet string) (*DatesResult, error) {
	diag, report := NewDiagnostics(svc.log)
	ds, err := svc.ingest(file, filename, sheet, diag)
	if err != nil {
		return nil, err
	}
	validas := ClassifyValidity(ds, diag)
	return &DatesResult{
		DatasPorDocumento: validas.DatasPorDocumento,
		Avisos:            report.Warnings,
	}, nil
}

func (svc *service) Generate(file io.Reader, filename string, params GenerateParams) (*GenerateResult, error) {
	diag, report := NewDiagnostics(svc.log)
	ds, err := svc.ingest(file, filename, params.Sheet, diag)
	if err != nil {
		return nil, err
	}

	idx := BuildOptionIndex(ds)
	if err := ValidateSelections(idx, params.Filtro); err != nil {
		return nil, err
	}

	filtered, err := Filter(ds, params.Filtro, diag)
	if err != nil {
		return nil, err
	}

	format := params.Formato
	if format == "" {
		format = domain.FormatXLSX
	}
	res, err := output.Write(filtered, params.Destino, format, params.NomePasta, diag)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Artifacts: res.Artifacts,
		Failures:  res.Failures,
		Avisos:    report.Warnings,
		Descartes: report.RowsDropped,
		Zerados:   report.RowsZeroed,
	}, nil
}

// ---------------------- checklist de validação ----------------------

// ChecklistItem é um passo da checklist de pré-processamento.
type ChecklistItem struct {
	Item   string `json:"item"`
	Status string `json:"status"`
	Detail string `json:"detalhe,omitempty"`
}

// ValidationResult resume a checklist; Pronto indica que a planilha
// pode seguir direto para a geração.
type ValidationResult struct {
	Checklist []ChecklistItem `json:"checklist"`
	Avisos    []string        `json:"avisos,omitempty"`
	Pronto    bool            `json:"pronto_para_processar"`
}

const (
	statusOK       = "ok"
	statusErro     = "erro"
	statusPendente = "pendente"
)

func (svc *service) Validate(file io.Reader, filename string, sheet string) (*ValidationResult, error) {
	diag, report := NewDiagnostics(svc.log)
	result := &ValidationResult{}

	if sheet == "" {
		sheet = svc.cfg.Sheet
	}
	grid, err := LoadGrid(file, filename, sheet)
	if err != nil {
		result.Checklist = append(result.Checklist,
			ChecklistItem{Item: "arquivo de entrada", Status: statusErro, Detail: err.Error()},
			ChecklistItem{Item: "estrutura da planilha", Status: statusPendente},
			ChecklistItem{Item: "dados da planilha", Status: statusPendente})
		return result, nil
	}
	result.Checklist = append(result.Checklist,
		ChecklistItem{Item: "arquivo de entrada", Status: statusOK,
			Detail: fmt.Sprintf("aba %s com %d linhas", sheet, grid.Rows())})

	headerRow, err := FindHeaderRow(grid, svc.cfg.HeaderWindow)
	if err != nil {
		result.Checklist = append(result.Checklist,
			ChecklistItem{Item: "estrutura da planilha", Status: statusErro, Detail: err.Error()},
			ChecklistItem{Item: "dados da planilha", Status: statusPendente})
		return result, nil
	}
	starts, err := FindBlockStarts(grid, headerRow)
	if err != nil {
		result.Checklist = append(result.Checklist,
			ChecklistItem{Item: "estrutura da planilha", Status: statusErro, Detail: err.Error()},
			ChecklistItem{Item: "dados da planilha", Status: statusPendente})
		return result, nil
	}
	result.Checklist = append(result.Checklist,
		ChecklistItem{Item: "estrutura da planilha", Status: statusOK,
			Detail: fmt.Sprintf("cabeçalho na linha %d, %d bloco(s)", headerRow+1, len(starts))})

	n := NewNormalizer(svc.cfg.SerialMin, svc.cfg.SerialMax)
	ds, err := Assemble(grid, svc.cfg.HeaderWindow, svc.cfg.MetaWindow, n, diag)
	if err != nil {
		result.Checklist = append(result.Checklist,
			ChecklistItem{Item: "dados da planilha", Status: statusErro, Detail: err.Error()})
		result.Avisos = report.Warnings
		return result, nil
	}
	total := 0
	for _, key := range ds.Order {
		total += len(ds.Tables[key].Records)
	}
	result.Checklist = append(result.Checklist,
		ChecklistItem{Item: "dados da planilha", Status: statusOK,
			Detail: fmt.Sprintf("%d registro(s) em %d tabela(s), %d linha(s) descartada(s)",
				total, len(ds.Order), report.RowsDropped)})

	validas := ClassifyValidity(ds, diag)
	if len(validas.Documentos) == 0 {
		result.Checklist = append(result.Checklist,
			ChecklistItem{Item: "valores dos contratos", Status: statusErro,
				Detail: "todos os blocos têm valor total zero"})
	} else {
		result.Checklist = append(result.Checklist,
			ChecklistItem{Item: "valores dos contratos", Status: statusOK,
				Detail: fmt.Sprintf("%d documento(s) com dados válidos", len(validas.Documentos))})
		result.Pronto = true
	}
	result.Avisos = report.Warnings
	return result, nil
}
