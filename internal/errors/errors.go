package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoShop.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem
// do erro sem conhecer o tipo concreto.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
// Rejeitado antes de qualquer chamada externa; nenhum estado é mutado.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
// É um estado terminal de renderização, distinto de um erro transiente:
// não há semântica de retry.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// UnauthorizedError representa ausência ou falha de autenticação.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., e-mail
// duplicado no registro).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Tipos de Erro do Checkout ---

// PaymentDeclinedError representa uma falha reportada pelo gateway de
// pagamento na confirmação. A mensagem do gateway é repassada ao usuário e a
// saga é interrompida sem criar nenhum pedido parcial.
type PaymentDeclinedError struct {
	Msg string
	Err error // Erro estruturado original do gateway
}

func (e *PaymentDeclinedError) Error() string    { return fmt.Sprintf("Pagamento recusado: %s", e.Msg) }
func (e *PaymentDeclinedError) Category() string { return "PAYMENT_DECLINED" }
func (e *PaymentDeclinedError) HTTPStatus() int  { return http.StatusPaymentRequired } // 402
func (e *PaymentDeclinedError) Unwrap() error    { return e.Err }

// NewPaymentDeclinedError cria um erro de pagamento recusado com a mensagem
// legível do gateway.
func NewPaymentDeclinedError(msg string, err error) AppError {
	return &PaymentDeclinedError{Msg: msg, Err: err}
}

// ReconciliationError representa o caso em que o pagamento foi confirmado mas
// a persistência do pedido falhou. É sinalizado de forma distinta: a mensagem
// direciona o usuário ao suporte em vez de sugerir nova tentativa, pois um
// retry arriscaria cobrança dupla. Não há estorno automático.
type ReconciliationError struct {
	Msg string
	Err error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("Pedido requer conciliação: %s", e.Msg)
}
func (e *ReconciliationError) Category() string { return "RECONCILIATION_REQUIRED" }
func (e *ReconciliationError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *ReconciliationError) Unwrap() error    { return e.Err }

// NewReconciliationError cria um erro de conciliação pós-pagamento.
func NewReconciliationError(msg string, err error) AppError {
	return &ReconciliationError{Msg: msg, Err: err}
}

// --- Tipos de Erro de Infraestrutura ---

// InternalError representa falhas inesperadas no servidor, serviço ou
// repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e
// mensagem de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	// errors.As percorre a cadeia de Unwrap, então erros embrulhados com
	// fmt.Errorf("...: %w", err) pelas camadas superiores ainda são mapeados.
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
