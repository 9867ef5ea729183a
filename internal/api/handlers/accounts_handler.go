package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"layout-service/internal/api/responses"
	"layout-service/internal/core/accounts"

	"github.com/gin-gonic/gin"
)

// AccountsHandler lida com as requisições da API de análise e edição
// de contas.
type AccountsHandler struct {
	service      accounts.Service
	defaultSheet string
}

// NewAccountsHandler cria um novo handler de contas.
func NewAccountsHandler(service accounts.Service, defaultSheet string) *AccountsHandler {
	return &AccountsHandler{
		service:      service,
		defaultSheet: defaultSheet,
	}
}

// HandleAnalyzeSummary cruza a aba de resumo com as abas de extrato.
func (h *AccountsHandler) HandleAnalyzeSummary(c *gin.Context) {
	fileHeader, err := c.FormFile("planilhaFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de planilha (.xlsx) não encontrado ou inválido")
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		responses.Error(c, http.StatusBadRequest, "A análise de contas exige uma pasta de trabalho .xlsx")
		return
	}

	sheet := strings.TrimSpace(c.PostForm("aba"))
	if sheet == "" {
		sheet = h.defaultSheet
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de planilha")
		return
	}
	defer file.Close()

	entries, err := h.service.AnalyzeSummary(file, sheet)
	if err != nil {
		responses.DomainError(c, err)
		return
	}
	responses.Success(c, entries, "Resumo analisado com sucesso")
}

// updateCellRequest é o corpo da edição pontual de célula.
type updateCellRequest struct {
	Arquivo string `json:"arquivo" binding:"required"`
	Aba     string `json:"aba" binding:"required"`
	Celula  string `json:"celula" binding:"required"`
	Valor   string `json:"valor"`
}

// HandleUpdateCell grava um valor numa célula de uma pasta de trabalho
// existente no disco.
func (h *AccountsHandler) HandleUpdateCell(c *gin.Context) {
	var req updateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.service.UpdateAccountCell(req.Arquivo, req.Aba, req.Celula, req.Valor); err != nil {
		responses.DomainError(c, err)
		return
	}
	responses.Success(c, nil, "Célula atualizada com sucesso")
}
