package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyClient          = errors.New("cliente da fatura não informado")
	ErrEmptyDueDate         = errors.New("data de vencimento não informada")
	ErrNoItems              = errors.New("fatura precisa de ao menos um item")
	ErrEmptyItemDescription = errors.New("item sem descrição")
	ErrDuplicateItemID      = errors.New("ID de item repetido na fatura")
	ErrNegativeQuantity     = errors.New("quantidade não pode ser negativa")
	ErrNegativeRate         = errors.New("valor unitário não pode ser negativo")
	ErrNegativeTaxRate      = errors.New("alíquota de imposto não pode ser negativa")
	ErrNegativeDiscount     = errors.New("desconto não pode ser negativo")
	ErrInvalidStatus        = errors.New("status de fatura inválido")
	ErrNotFound             = errors.New("fatura não encontrada")
)

var validationErrors = []error{
	ErrEmptyClient, ErrEmptyDueDate, ErrNoItems, ErrEmptyItemDescription, ErrDuplicateItemID,
	ErrNegativeQuantity, ErrNegativeRate, ErrNegativeTaxRate, ErrNegativeDiscount, ErrInvalidStatus,
}

// DateLayout é o formato de data usado nas faturas (somente dia)
const DateLayout = "2006-01-02"

// DefaultTerms são os termos e condições sugeridos para novas faturas
const DefaultTerms = "1. Payment is due within the terms stated above.\n" +
	"2. Late payments may incur a 1.5% monthly interest charge.\n" +
	"3. All deliverables remain the property of the service provider until full payment is received.\n" +
	"4. Any disputes must be raised within 14 days of receipt of this invoice.\n" +
	"5. This invoice is governed by the laws of the State of New York."

// Status representa o estado da fatura. Nunca é alterado automaticamente.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Statuses lista os status na ordem usada pelos relatórios
var Statuses = []Status{StatusPaid, StatusSent, StatusOverdue, StatusDraft}

// Valid verifica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Label retorna o nome de exibição do status ("Paid", "Sent", ...)
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Item representa uma linha da fatura
type Item struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Invoice representa uma fatura emitida para um cliente
type Invoice struct {
	ID        string          `json:"id"`         // ID interno
	Number    string          `json:"number"`     // Número sequencial (INV-001)
	ClientID  string          `json:"client_id"`  // Cliente (pode não existir mais)
	Items     []Item          `json:"items"`      // Itens em ordem
	Status    Status          `json:"status"`     // Status manual
	IssueDate time.Time       `json:"issue_date"` // Data de emissão
	DueDate   time.Time       `json:"due_date"`   // Data de vencimento
	Notes     string          `json:"notes"`      // Observações
	TaxRate   decimal.Decimal `json:"tax_rate"`   // Alíquota em percentual
	Discount  decimal.Decimal `json:"discount"`   // Desconto em valor absoluto
	Terms     string          `json:"terms"`      // Termos, um por linha
	Signatory string          `json:"signatory"`  // Responsável pela assinatura
	CreatedAt time.Time       `json:"created_at"` // Data de Criação
}

// Fields contém os dados editáveis de uma fatura
type Fields struct {
	ClientID  string
	Items     []Item
	Status    Status
	IssueDate time.Time
	DueDate   time.Time
	Notes     string
	TaxRate   decimal.Decimal
	Discount  decimal.Decimal
	Terms     string
	Signatory string
}

// Patch descreve uma atualização parcial; campos nil não são alterados
type Patch struct {
	ClientID  *string
	Items     *[]Item
	Status    *Status
	IssueDate *time.Time
	DueDate   *time.Time
	Notes     *string
	TaxRate   *decimal.Decimal
	Discount  *decimal.Decimal
	Terms     *string
	Signatory *string
}

// NewInvoice cria uma nova fatura validada. O número é atribuído pelo repositório.
func NewInvoice(f Fields, now time.Time) (*Invoice, error) {
	status := f.Status
	if status == "" {
		status = StatusDraft
	}
	inv := &Invoice{
		ID:        uuid.New().String(),
		ClientID:  strings.TrimSpace(f.ClientID),
		Items:     normalizeItems(f.Items),
		Status:    status,
		IssueDate: f.IssueDate,
		DueDate:   f.DueDate,
		Notes:     f.Notes,
		TaxRate:   f.TaxRate,
		Discount:  f.Discount,
		Terms:     f.Terms,
		Signatory: f.Signatory,
		CreatedAt: now,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate verifica as regras da fatura e de cada item
func (inv *Invoice) Validate() error {
	if inv.ClientID == "" {
		return ErrEmptyClient
	}
	if inv.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if !inv.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, inv.Status)
	}
	if len(inv.Items) == 0 {
		return ErrNoItems
	}
	seen := make(map[string]struct{}, len(inv.Items))
	for i, item := range inv.Items {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("item %d: %w", i+1, ErrEmptyItemDescription)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("item %d: %w", i+1, ErrNegativeQuantity)
		}
		if item.Rate.IsNegative() {
			return fmt.Errorf("item %d: %w", i+1, ErrNegativeRate)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("item %d: %w", i+1, ErrDuplicateItemID)
		}
		seen[item.ID] = struct{}{}
	}
	if inv.TaxRate.IsNegative() {
		return ErrNegativeTaxRate
	}
	if inv.Discount.IsNegative() {
		return ErrNegativeDiscount
	}
	return nil
}

// Apply retorna uma cópia da fatura com o patch aplicado. ID e número não mudam.
func (inv Invoice) Apply(p Patch) (*Invoice, error) {
	inv.Items = append([]Item(nil), inv.Items...)
	if p.ClientID != nil {
		inv.ClientID = strings.TrimSpace(*p.ClientID)
	}
	if p.Items != nil {
		inv.Items = normalizeItems(*p.Items)
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.IssueDate != nil {
		inv.IssueDate = *p.IssueDate
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		inv.Notes = *p.Notes
	}
	if p.TaxRate != nil {
		inv.TaxRate = *p.TaxRate
	}
	if p.Discount != nil {
		inv.Discount = *p.Discount
	}
	if p.Terms != nil {
		inv.Terms = *p.Terms
	}
	if p.Signatory != nil {
		inv.Signatory = *p.Signatory
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Clone retorna uma cópia independente da fatura
func (inv *Invoice) Clone() *Invoice {
	c := *inv
	c.Items = append([]Item(nil), inv.Items...)
	return &c
}

// EnsureItemIDs gera IDs para os itens que não possuem
func (inv *Invoice) EnsureItemIDs() {
	inv.Items = normalizeItems(inv.Items)
}

// FormatNumber monta o número legível da fatura a partir do contador
func FormatNumber(seq int64) string {
	return fmt.Sprintf("INV-%03d", seq)
}

// ParseDate interpreta uma data no formato 2006-01-02
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// IsValidationError indica se o erro é de validação de dados
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// normalizeItems copia os itens gerando IDs para os que não possuem
func normalizeItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			item.ID = uuid.New().String()
		}
		out[i] = item
	}
	return out
}
