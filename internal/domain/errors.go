// package domain/errors.go
package domain

import (
	"fmt"
	"strings"
)

// ErrorCode é o código legível por máquina de uma falha do pipeline.
type ErrorCode string

// Códigos da taxonomia de erros.
const (
	CodeFileUnreadable     ErrorCode = "FILE_UNREADABLE"
	CodeSheetNotFound      ErrorCode = "SHEET_NOT_FOUND"
	CodeHeaderNotFound     ErrorCode = "HEADER_NOT_FOUND"
	CodeNoBlocksFound      ErrorCode = "NO_BLOCKS_FOUND"
	CodeNoValidBlocks      ErrorCode = "NO_VALID_BLOCKS"
	CodeInvalidSelection   ErrorCode = "INVALID_SELECTION"
	CodeEmptyAfterFilter   ErrorCode = "EMPTY_AFTER_FILTERING"
	CodeInvalidFormat      ErrorCode = "INVALID_FORMAT"
	CodeOutputWriteFailure ErrorCode = "OUTPUT_WRITE_FAILURE"
	CodeAccountNotFound    ErrorCode = "ACCOUNT_NOT_FOUND"
)

// Error é a falha tipada exposta pelo núcleo: código de máquina, mensagem
// humana e detalhes opcionais (ex.: lista de seleções inválidas).
type Error struct {
	Code    ErrorCode `json:"codigo"`
	Message string    `json:"mensagem"`
	Details []string  `json:"detalhes,omitempty"`
	Wrapped error     `json:"-"`
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap expõe a causa subjacente para errors.Is/As.
func (e *Error) Unwrap() error { return e.Wrapped }

// NewError cria uma falha tipada simples.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorWithDetails cria uma falha tipada com lista de detalhes.
func NewErrorWithDetails(code ErrorCode, message string, details []string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// WrapError cria uma falha tipada preservando a causa original.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Wrapped: cause}
}

// WriteFailure descreve a falha de escrita de um único artefato. A política
// do gerador é "pular e coletar": a falha identifica o caminho e a causa e
// os demais artefatos continuam sendo gerados.
type WriteFailure struct {
	Path  string `json:"path"`
	Cause string `json:"cause"`
}

// NewWriteFailure registra uma falha de escrita para o caminho informado.
func NewWriteFailure(path string, cause error) WriteFailure {
	return WriteFailure{Path: path, Cause: cause.Error()}
}
