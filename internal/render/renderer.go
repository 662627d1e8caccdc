// Package render gera o documento imprimível de uma fatura (HTML ou PDF).
// A saída depende apenas da entrada: nenhuma data atual é usada.
package render

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/shopspring/decimal"
)

// ErrNilInvoice ocorre quando a fatura não é informada
var ErrNilInvoice = errors.New("fatura não informada para renderização")

// DocumentDateLayout é o formato das datas impressas (January 2, 2006)
const DocumentDateLayout = "January 2, 2006"

// Formatos suportados
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Input reúne tudo o que o documento exibe. Client é nil quando o cliente
// da fatura não existe mais.
type Input struct {
	Invoice *invoice.Invoice
	Client  *client.Client
	Totals  billing.Totals
	Profile profile.BusinessProfile
}

// Renderer gera o documento de uma fatura
type Renderer interface {
	Render(in Input) ([]byte, error)
	ContentType() string
	Extension() string
}

// ErrUnknownFormat ocorre quando o formato pedido não é suportado
var ErrUnknownFormat = errors.New("formato de documento desconhecido")

// ForFormat retorna o renderer do formato informado (html ou pdf)
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHTML:
		return NewHTMLRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	}
	return nil, ErrUnknownFormat
}

type party struct {
	Name    string
	Company string
	Email   string
	Address string
}

type itemRow struct {
	Index       int
	Description string
	Quantity    int
	Rate        string
	Amount      string
}

// document é a visão já formatada usada pelos dois renderers
type document struct {
	Number      string
	Status      string
	StatusLabel string
	Watermark   string
	IssueDate   string
	DueDate     string

	Business      profile.BusinessProfile
	BusinessLines []string
	LogoInitial   string
	Client        party

	Items []itemRow

	Subtotal     string
	ShowDiscount bool
	Discount     string
	ShowTax      bool
	TaxLabel     string
	Tax          string
	GrandTotal   string
	ShowPaid     bool
	Paid         string
	Balance      string

	Notes     string
	Terms     []string
	Signatory string
}

var termPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ParseTerms separa os termos por linha, ignora linhas vazias e remove a numeração "N. "
func ParseTerms(terms string) []string {
	var out []string
	for _, line := range strings.Split(terms, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, termPrefix.ReplaceAllString(line, ""))
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DocumentDateLayout)
}

func watermark(status invoice.Status) string {
	switch status {
	case invoice.StatusPaid:
		return "PAID"
	case invoice.StatusOverdue:
		return "OVERDUE"
	}
	return ""
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// currency formata um valor com o sinal antes do símbolo (-$484.50)
func currency(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-$" + billing.FormatMoney(d.Neg())
	}
	return "$" + billing.FormatMoney(d)
}

func buildDocument(in Input) (*document, error) {
	inv := in.Invoice
	if inv == nil {
		return nil, ErrNilInvoice
	}
	t := in.Totals

	c := party{Name: "Client"}
	if in.Client != nil {
		c = party{Name: in.Client.Name, Company: in.Client.Company, Email: in.Client.Email, Address: in.Client.Address}
	}

	biz := in.Profile
	lines := strings.Split(biz.Address, "\n")
	if biz.Address == "" {
		lines = nil
	}

	items := make([]itemRow, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = itemRow{
			Index:       i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        "$" + billing.FormatMoney(item.Rate),
			Amount:      "$" + billing.FormatMoney(billing.LineAmount(item)),
		}
	}

	return &document{
		Number:        inv.Number,
		Status:        string(inv.Status),
		StatusLabel:   strings.ToUpper(string(inv.Status)),
		Watermark:     watermark(inv.Status),
		IssueDate:     formatDate(inv.IssueDate),
		DueDate:       formatDate(inv.DueDate),
		Business:      biz,
		BusinessLines: lines,
		LogoInitial:   initial(biz.Name),
		Client:        c,
		Items:         items,
		Subtotal:      "$" + billing.FormatMoney(t.Subtotal),
		ShowDiscount:  t.Discount.IsPositive(),
		Discount:      "-$" + billing.FormatMoney(t.Discount),
		ShowTax:       t.TaxRate.IsPositive(),
		TaxLabel:      "Tax (" + billing.FormatPercent(t.TaxRate) + "%)",
		Tax:           "$" + billing.FormatMoney(t.Tax),
		GrandTotal:    "$" + billing.FormatMoney(t.GrandTotal),
		ShowPaid:      t.Paid.IsPositive(),
		Paid:          "-$" + billing.FormatMoney(t.Paid),
		Balance:       currency(t.Balance),
		Notes:         inv.Notes,
		Terms:         ParseTerms(inv.Terms),
		Signatory:     inv.Signatory,
	}, nil
}
