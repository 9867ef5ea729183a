package layout

import (
	"fmt"

	"go.uber.org/zap"
)

// Diagnostics é o coletor de avisos e contadores de uma única ingestão.
// Uma instância é criada por chamada e atravessa o pipeline inteiro; não há
// estado mutável compartilhado entre chamadas.
type Diagnostics interface {
	Record(level string, message string, context ...zap.Field)
	AddDropped(n int)
	AddZeroed(n int)
}

// Níveis aceitos pelo coletor.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Report acumula as mensagens registradas durante uma ingestão, junto com
// os contadores de linhas descartadas e valores zerados.
type Report struct {
	Warnings    []string `json:"avisos,omitempty"`
	RowsDropped int      `json:"linhas_descartadas"`
	RowsZeroed  int      `json:"valores_zerados"`
}

// sink é a implementação padrão: loga via zap e guarda os avisos para que o
// chamador possa devolvê-los na resposta.
type sink struct {
	log    *zap.Logger
	report *Report
}

// NewDiagnostics cria o coletor de uma ingestão sobre o logger informado.
func NewDiagnostics(log *zap.Logger) (Diagnostics, *Report) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Report{}
	return &sink{log: log, report: r}, r
}

func (s *sink) Record(level, message string, context ...zap.Field) {
	switch level {
	case LevelWarning:
		s.report.Warnings = append(s.report.Warnings, renderMessage(message, context))
		s.log.Warn(message, context...)
	case LevelError:
		s.report.Warnings = append(s.report.Warnings, renderMessage(message, context))
		s.log.Error(message, context...)
	default:
		s.log.Info(message, context...)
	}
}

func (s *sink) AddDropped(n int) { s.report.RowsDropped += n }
func (s *sink) AddZeroed(n int)  { s.report.RowsZeroed += n }

func renderMessage(message string, context []zap.Field) string {
	if len(context) == 0 {
		return message
	}
	out := message
	for _, f := range context {
		out += fmt.Sprintf(" %s=%v", f.Key, fieldValue(f))
	}
	return out
}

func fieldValue(f zap.Field) interface{} {
	if f.Interface != nil {
		return f.Interface
	}
	if f.String != "" {
		return f.String
	}
	return f.Integer
}
