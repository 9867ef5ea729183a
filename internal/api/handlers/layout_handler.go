package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"layout-service/internal/api/responses"
	"layout-service/internal/core/layout"
	"layout-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// LayoutHandler lida com as requisições da API relacionadas à aba Layout.
type LayoutHandler struct {
	service layout.Service
}

// NewLayoutHandler cria um novo handler de layout.
func NewLayoutHandler(service layout.Service) *LayoutHandler {
	return &LayoutHandler{
		service: service,
	}
}

// getListFromForm extrai e limpa os itens de um campo de formulário
// separado por vírgulas.
func getListFromForm(c *gin.Context, formKey string) []string {
	listStr := c.PostForm(formKey)
	if listStr == "" {
		return nil
	}
	parts := strings.Split(listStr, ",")
	var items []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// openLayoutFile recupera e abre o arquivo de planilha do formulário.
func openLayoutFile(c *gin.Context) (multipart.File, string, bool) {
	fileHeader, err := c.FormFile("planilhaFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de planilha (.xls, .xlsx) não encontrado ou inválido")
		return nil, "", false
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xls" && ext != ".xlsx" {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensão de arquivo não suportada: %s", ext))
		return nil, "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de planilha")
		return nil, "", false
	}
	return file, fileHeader.Filename, true
}

// HandleOptions devolve o índice de opções filtráveis da planilha.
func (h *LayoutHandler) HandleOptions(c *gin.Context) {
	file, filename, ok := openLayoutFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.service.Options(file, filename, c.PostForm("aba"))
	if err != nil {
		responses.DomainError(c, err)
		return
	}
	responses.Success(c, result, "Opções extraídas com sucesso")
}

// HandleDates devolve as datas de crédito por documento.
func (h *LayoutHandler) HandleDates(c *gin.Context) {
	file, filename, ok := openLayoutFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.service.Dates(file, filename, c.PostForm("aba"))
	if err != nil {
		responses.DomainError(c, err)
		return
	}
	responses.Success(c, result, "Datas extraídas com sucesso")
}

// HandleValidate roda a checklist de pré-processamento da planilha.
func (h *LayoutHandler) HandleValidate(c *gin.Context) {
	file, filename, ok := openLayoutFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.service.Validate(file, filename, c.PostForm("aba"))
	if err != nil {
		responses.DomainError(c, err)
		return
	}
	responses.Success(c, result, "Validação concluída")
}

// HandleGenerate executa o pipeline completo e gera os arquivos no
// destino informado.
func (h *LayoutHandler) HandleGenerate(c *gin.Context) {
	file, filename, ok := openLayoutFile(c)
	if !ok {
		return
	}
	defer file.Close()

	destino := strings.TrimSpace(c.PostForm("destino"))
	if destino == "" {
		responses.Error(c, http.StatusBadRequest, "Campo 'destino' é obrigatório")
		return
	}

	nomePasta := strings.TrimSpace(c.PostForm("nomePasta"))
	if nomePasta == "" {
		base := filepath.Base(filename)
		nomePasta = strings.TrimSuffix(base, filepath.Ext(base))
	}

	formato := domain.OutputFormat(strings.ToLower(strings.TrimSpace(c.PostForm("formato"))))
	if formato != "" && !formato.Valid() {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Formato de saída não suportado: %s", formato))
		return
	}

	params := layout.GenerateParams{
		Sheet:     c.PostForm("aba"),
		Destino:   destino,
		NomePasta: nomePasta,
		Formato:   formato,
		Filtro: layout.FilterParams{
			Documentos:  getListFromForm(c, "documentos"),
			Planos:      getListFromForm(c, "planos"),
			Datas:       getListFromForm(c, "datas"),
			DataInicial: strings.TrimSpace(c.PostForm("dataInicial")),
			DataFinal:   strings.TrimSpace(c.PostForm("dataFinal")),
		},
	}

	result, err := h.service.Generate(file, filename, params)
	if err != nil {
		responses.DomainError(c, err)
		return
	}

	message := fmt.Sprintf("%d arquivo(s) gerado(s)", len(result.Artifacts))
	if len(result.Failures) > 0 {
		message = fmt.Sprintf("%s, %d falha(s)", message, len(result.Failures))
	}
	responses.Success(c, result, message)
}
