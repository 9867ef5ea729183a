// Package accounts cruza a aba "Resumo por Conta" com as abas de
// extrato da mesma pasta de trabalho e permite edições pontuais de
// célula com acesso exclusivo ao arquivo.
package accounts

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"layout-service/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Service define a interface do serviço de contas.
type Service interface {
	// AnalyzeSummary lê a aba de resumo e relaciona cada conta com as
	// abas cujo nome começa com "{conta}-".
	AnalyzeSummary(file io.Reader, sheet string) ([]domain.AccountEntry, error)

	// UpdateAccountCell grava um valor numa célula de uma aba da pasta
	// de trabalho no caminho dado, serializando escritas por caminho.
	UpdateAccountCell(path, sheet, cell, value string) error
}

type service struct {
	log *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService cria uma nova instância do serviço de contas.
func NewService(log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{log: log, locks: make(map[string]*sync.Mutex)}
}

func (svc *service) AnalyzeSummary(file io.Reader, sheet string) ([]domain.AccountEntry, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, domain.WrapError(domain.CodeFileUnreadable, "erro ao abrir a pasta de trabalho", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, domain.NewError(domain.CodeSheetNotFound,
			fmt.Sprintf("aba %s não encontrada na pasta de trabalho", sheet))
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.WrapError(domain.CodeFileUnreadable,
			fmt.Sprintf("erro ao ler a aba %s", sheet), err)
	}

	sheets := f.GetSheetList()

	var entries []domain.AccountEntry
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		conta := strings.TrimSpace(row[0])
		if conta == "" {
			continue
		}
		entry := domain.AccountEntry{Conta: conta}
		if len(row) > 1 {
			entry.Descricao = strings.TrimSpace(row[1])
		}
		prefix := conta + "-"
		for _, name := range sheets {
			if strings.HasPrefix(name, prefix) {
				entry.Sheets = append(entry.Sheets, name)
			}
		}
		entry.HasSheet = len(entry.Sheets) > 0
		if !entry.HasSheet {
			svc.log.Warn("conta do resumo sem aba de extrato correspondente",
				zap.String("conta", conta))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// pathLock devolve o mutex do caminho, criando-o na primeira vez.
func (svc *service) pathLock(path string) *sync.Mutex {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	lock, ok := svc.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		svc.locks[path] = lock
	}
	return lock
}

func (svc *service) UpdateAccountCell(path, sheet, cell, value string) error {
	lock := svc.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.WrapError(domain.CodeFileUnreadable,
			fmt.Sprintf("erro ao abrir %s", path), err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return domain.NewError(domain.CodeAccountNotFound,
			fmt.Sprintf("aba %s não encontrada em %s", sheet, path))
	}
	if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
		return domain.WrapError(domain.CodeInvalidSelection,
			fmt.Sprintf("referência de célula inválida: %s", cell), err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return domain.WrapError(domain.CodeOutputWriteFailure,
			fmt.Sprintf("erro ao definir %s!%s", sheet, cell), err)
	}
	if err := f.Save(); err != nil {
		return domain.WrapError(domain.CodeOutputWriteFailure,
			fmt.Sprintf("erro ao salvar %s", path), err)
	}
	svc.log.Info("célula atualizada",
		zap.String("arquivo", path), zap.String("aba", sheet), zap.String("celula", cell))
	return nil
}
