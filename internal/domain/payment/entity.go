package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyInvoice      = errors.New("fatura do pagamento não informada")
	ErrNonPositiveAmount = errors.New("valor do pagamento deve ser maior que zero")
	ErrInvalidMethod     = errors.New("forma de pagamento inválida")
	ErrEmptyDate         = errors.New("data do pagamento não informada")
	ErrNotFound          = errors.New("pagamento não encontrado")
)

// Method define a forma de pagamento
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCreditCard   Method = "credit_card"
	MethodPayPal       Method = "paypal"
	MethodCash         Method = "cash"
)

// Valid verifica se a forma de pagamento é conhecida
func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodCreditCard, MethodPayPal, MethodCash:
		return true
	}
	return false
}

// Label retorna o nome de exibição da forma de pagamento
func (m Method) Label() string {
	switch m {
	case MethodBankTransfer:
		return "Bank Transfer"
	case MethodCreditCard:
		return "Credit Card"
	case MethodPayPal:
		return "PayPal"
	case MethodCash:
		return "Cash"
	}
	return string(m)
}

// Payment representa um pagamento recebido. Pagamentos não são alterados nem removidos.
type Payment struct {
	ID        string          `json:"id"`         // ID do Pagamento
	InvoiceID string          `json:"invoice_id"` // Fatura paga (pode não existir mais)
	Amount    decimal.Decimal `json:"amount"`     // Valor recebido
	Date      time.Time       `json:"date"`       // Data do recebimento
	Method    Method          `json:"method"`     // Forma de pagamento
	Reference string          `json:"reference"`  // Referência livre (TXN-...)
	CreatedAt time.Time       `json:"created_at"` // Data de Criação
}

// Fields contém os dados de um novo pagamento
type Fields struct {
	InvoiceID string
	Amount    decimal.Decimal
	Date      time.Time
	Method    Method
	Reference string
}

// NewPayment cria um novo pagamento validado
func NewPayment(f Fields, now time.Time) (*Payment, error) {
	p := &Payment{
		ID:        uuid.New().String(),
		InvoiceID: strings.TrimSpace(f.InvoiceID),
		Amount:    f.Amount,
		Date:      f.Date,
		Method:    f.Method,
		Reference: f.Reference,
		CreatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate verifica as regras do pagamento
func (p *Payment) Validate() error {
	if p.InvoiceID == "" {
		return ErrEmptyInvoice
	}
	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !p.Method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, p.Method)
	}
	if p.Date.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// IsValidationError indica se o erro é de validação de dados
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyInvoice) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrEmptyDate)
}
