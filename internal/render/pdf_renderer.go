package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type rgb struct{ r, g, b int }

var (
	colorAccent = rgb{45, 58, 140}
	colorText   = rgb{26, 29, 46}
	colorMuted  = rgb{136, 136, 136}
	colorLine   = rgb{232, 234, 240}

	badgeColors = map[string][2]rgb{
		"paid":    {{232, 245, 233}, {46, 125, 50}},
		"sent":    {{227, 242, 253}, {21, 101, 192}},
		"overdue": {{255, 235, 238}, {198, 40, 40}},
		"draft":   {{245, 245, 245}, {97, 97, 97}},
	}
	watermarkColors = map[string]rgb{
		"paid":    {222, 238, 223},
		"overdue": {248, 222, 222},
	}
)

const (
	pageWidth   = 210.0
	marginLeft  = 18.0
	marginRight = 18.0
	contentW    = pageWidth - marginLeft - marginRight
)

// PDFRenderer gera a fatura em PDF A4. A data de criação do PDF é a data de
// emissão da fatura, então a saída é sempre a mesma para a mesma entrada.
type PDFRenderer struct{}

// NewPDFRenderer cria um novo PDFRenderer
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// ContentType retorna o tipo MIME do documento
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Extension retorna a extensão de arquivo do documento
func (r *PDFRenderer) Extension() string { return ".pdf" }

// Render gera o PDF da fatura
func (r *PDFRenderer) Render(in Input) ([]byte, error) {
	doc, err := buildDocument(in)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	stamp := in.Invoice.IssueDate
	if stamp.IsZero() {
		stamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetTitle(doc.Number+" - Invoice", true)
	pdf.SetAuthor(doc.Business.Name, true)
	pdf.SetMargins(marginLeft, 16, marginRight)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	w.watermark(doc)
	w.header(doc)
	w.title(doc)
	w.parties(doc)
	w.items(doc)
	w.totals(doc)
	w.paymentInfo(doc)
	w.notes(doc)
	w.terms(doc)
	w.signature(doc)
	w.footer(doc)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF da fatura %s: %w", doc.Number, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF da fatura %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) text(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }
func (w *pdfWriter) fill(c rgb) { w.pdf.SetFillColor(c.r, c.g, c.b) }
func (w *pdfWriter) draw(c rgb) { w.pdf.SetDrawColor(c.r, c.g, c.b) }

func (w *pdfWriter) cell(width, height float64, s, align string) {
	w.pdf.CellFormat(width, height, w.tr(s), "", 0, align, false, 0, "")
}

func (w *pdfWriter) line(width, height float64, s, align string) {
	w.pdf.CellFormat(width, height, w.tr(s), "", 1, align, false, 0, "")
}

func (w *pdfWriter) watermark(doc *document) {
	c, ok := watermarkColors[doc.Status]
	if !ok || doc.Watermark == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "B", 90)
	w.text(c)
	w.pdf.TransformBegin()
	w.pdf.TransformRotate(35, pageWidth/2, 148)
	tw := w.pdf.GetStringWidth(doc.Watermark)
	w.pdf.Text(pageWidth/2-tw/2, 160, doc.Watermark)
	w.pdf.TransformEnd()
}

func (w *pdfWriter) header(doc *document) {
	w.fill(colorAccent)
	w.pdf.Rect(0, 0, pageWidth, 2, "F")

	y := w.pdf.GetY()
	w.pdf.RoundedRect(marginLeft, y, 10, 10, 2, "1234", "F")
	w.pdf.SetFont("Helvetica", "B", 13)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetXY(marginLeft, y)
	w.cell(10, 10, doc.LogoInitial, "CM")

	w.pdf.SetXY(marginLeft+13, y)
	w.pdf.SetFont("Helvetica", "B", 16)
	w.text(colorAccent)
	w.cell(100, 10, doc.Business.Name, "LM")

	colors := badgeColors[doc.Status]
	if _, ok := badgeColors[doc.Status]; !ok {
		colors = badgeColors["draft"]
	}
	w.pdf.SetFont("Helvetica", "B", 9)
	bw := w.pdf.GetStringWidth(doc.StatusLabel) + 10
	w.fill(colors[0])
	w.pdf.RoundedRect(pageWidth-marginRight-bw, y+1.5, bw, 7, 3.5, "1234", "F")
	w.text(colors[1])
	w.pdf.SetXY(pageWidth-marginRight-bw, y+1.5)
	w.cell(bw, 7, doc.StatusLabel, "CM")

	w.pdf.SetXY(marginLeft+13, y+10)
	w.pdf.SetFont("Helvetica", "", 8)
	w.text(colorMuted)
	w.line(100, 4, doc.Business.Tagline, "L")
	w.pdf.Ln(8)
}

func (w *pdfWriter) title(doc *document) {
	y := w.pdf.GetY()
	w.pdf.SetFont("Helvetica", "B", 9)
	w.text(rgb{153, 153, 153})
	w.line(80, 5, "INVOICE", "L")
	w.pdf.SetFont("Helvetica", "B", 20)
	w.text(colorText)
	w.line(80, 10, doc.Number, "L")

	w.pdf.SetXY(pageWidth/2, y)
	w.pdf.SetFont("Helvetica", "", 9)
	w.text(rgb{102, 102, 102})
	w.line(pageWidth/2-marginRight, 5, "Issue Date: "+doc.IssueDate, "R")
	w.pdf.SetX(pageWidth / 2)
	w.line(pageWidth/2-marginRight, 5, "Due Date: "+doc.DueDate, "R")
	if doc.Business.TaxID != "" {
		w.pdf.SetX(pageWidth / 2)
		w.pdf.SetFont("Helvetica", "", 8)
		w.text(rgb{153, 153, 153})
		w.line(pageWidth/2-marginRight, 5, "Tax ID: "+doc.Business.TaxID, "R")
	}

	w.pdf.SetY(y + 18)
	w.draw(rgb{238, 240, 244})
	w.pdf.SetLineWidth(0.3)
	w.pdf.Line(marginLeft, w.pdf.GetY(), pageWidth-marginRight, w.pdf.GetY())
	w.pdf.Ln(8)
}

func (w *pdfWriter) parties(doc *document) {
	half := contentW / 2
	y := w.pdf.GetY()

	w.pdf.SetFont("Helvetica", "B", 8)
	w.text(colorAccent)
	w.line(half, 5, "BILL TO", "L")
	w.pdf.SetFont("Helvetica", "B", 11)
	w.text(colorText)
	w.line(half, 6, doc.Client.Name, "L")
	w.pdf.SetFont("Helvetica", "", 9)
	w.text(rgb{85, 85, 85})
	w.line(half, 5, doc.Client.Company, "L")
	w.pdf.SetFont("Helvetica", "", 8)
	w.text(colorMuted)
	w.line(half, 4.5, doc.Client.Email, "L")
	w.pdf.MultiCell(half, 4.5, w.tr(doc.Client.Address), "", "L", false)
	leftEnd := w.pdf.GetY()

	right := marginLeft + half
	w.pdf.SetXY(right, y)
	w.pdf.SetFont("Helvetica", "B", 8)
	w.text(colorAccent)
	w.line(half, 5, "FROM", "R")
	w.pdf.SetX(right)
	w.pdf.SetFont("Helvetica", "B", 11)
	w.text(colorText)
	w.line(half, 6, doc.Business.Name, "R")
	w.pdf.SetFont("Helvetica", "", 8)
	w.text(colorMuted)
	details := append(append([]string{}, doc.BusinessLines...), doc.Business.Phone, doc.Business.Email, doc.Business.Website)
	for _, d := range details {
		w.pdf.SetX(right)
		w.line(half, 4.5, d, "R")
	}

	if leftEnd > w.pdf.GetY() {
		w.pdf.SetY(leftEnd)
	}
	w.pdf.Ln(8)
}

func (w *pdfWriter) items(doc *document) {
	widths := []float64{contentW * 0.08, contentW * 0.42, contentW * 0.12, contentW * 0.18, contentW * 0.20}
	headers := []string{"#", "DESCRIPTION", "QTY", "UNIT PRICE", "AMOUNT"}
	aligns := []string{"L", "L", "R", "R", "R"}

	w.pdf.SetFont("Helvetica", "B", 8)
	w.fill(rgb{247, 248, 252})
	w.text(rgb{102, 102, 102})
	for i, h := range headers {
		w.pdf.CellFormat(widths[i], 8, h, "", 0, aligns[i], true, 0, "")
	}
	w.pdf.Ln(-1)
	w.draw(colorLine)
	w.pdf.SetLineWidth(0.5)
	w.pdf.Line(marginLeft, w.pdf.GetY(), pageWidth-marginRight, w.pdf.GetY())

	w.pdf.SetLineWidth(0.2)
	for _, item := range doc.Items {
		w.text(rgb{51, 51, 51})
		w.pdf.SetFont("Helvetica", "", 8)
		w.cell(widths[0], 9, strconv.Itoa(item.Index), "L")
		w.pdf.SetFont("Helvetica", "", 10)
		w.text(colorText)
		w.cell(widths[1], 9, item.Description, "L")
		w.text(rgb{51, 51, 51})
		w.cell(widths[2], 9, strconv.Itoa(item.Quantity), "R")
		w.cell(widths[3], 9, item.Rate, "R")
		w.pdf.SetFont("Helvetica", "B", 10)
		w.line(widths[4], 9, item.Amount, "R")
		w.pdf.Line(marginLeft, w.pdf.GetY(), pageWidth-marginRight, w.pdf.GetY())
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) totals(doc *document) {
	boxW := 74.0
	x := pageWidth - marginRight - boxW

	row := func(label, value, style string, size float64, valueColor rgb) {
		w.pdf.SetX(x)
		w.pdf.SetFont("Helvetica", style, size)
		w.text(rgb{85, 85, 85})
		w.cell(boxW/2, 6.5, label, "L")
		w.text(valueColor)
		w.line(boxW/2, 6.5, value, "R")
	}

	row("Subtotal", doc.Subtotal, "", 9, rgb{51, 51, 51})
	if doc.ShowDiscount {
		row("Discount", doc.Discount, "", 9, rgb{198, 40, 40})
	}
	if doc.ShowTax {
		row(doc.TaxLabel, doc.Tax, "", 9, rgb{51, 51, 51})
	}
	w.draw(colorText)
	w.pdf.SetLineWidth(0.6)
	w.pdf.Line(x, w.pdf.GetY()+1, pageWidth-marginRight, w.pdf.GetY()+1)
	w.pdf.Ln(2)
	row("Grand Total", doc.GrandTotal, "B", 12, colorText)
	if doc.ShowPaid {
		row("Amount Paid", doc.Paid, "", 9, rgb{46, 125, 50})
	}
	w.fill(rgb{240, 242, 255})
	w.pdf.RoundedRect(x-3, w.pdf.GetY()+1, boxW+3, 8, 1.5, "1234", "F")
	w.pdf.Ln(1)
	row("Balance Due", doc.Balance, "B", 10, colorAccent)
	w.pdf.Ln(8)
}

func (w *pdfWriter) paymentInfo(doc *document) {
	y := w.pdf.GetY()
	w.fill(rgb{249, 250, 251})
	w.draw(rgb{238, 240, 244})
	w.pdf.SetLineWidth(0.2)
	w.pdf.RoundedRect(marginLeft, y, contentW, 28, 2, "1234", "FD")

	half := contentW / 2
	col := func(x float64, heading string, lines []string) {
		w.pdf.SetXY(x+6, y+5)
		w.pdf.SetFont("Helvetica", "B", 8)
		w.text(colorAccent)
		w.line(half-6, 5, heading, "L")
		w.pdf.SetFont("Helvetica", "", 9)
		w.text(rgb{85, 85, 85})
		for _, l := range lines {
			w.pdf.SetX(x + 6)
			w.line(half-6, 4.5, l, "L")
		}
	}
	col(marginLeft, "PAYMENT DETAILS", []string{
		"Bank: " + doc.Business.BankName,
		"Account: " + doc.Business.BankAccount,
		"Routing: " + doc.Business.BankRouting,
	})
	col(marginLeft+half, "PAYMENT METHODS", []string{
		"Bank Transfer, Credit Card, PayPal",
		"Please reference " + doc.Number,
		"when making payment.",
	})
	w.pdf.SetY(y + 34)
}

func (w *pdfWriter) notes(doc *document) {
	if doc.Notes == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "B", 8)
	w.text(rgb{184, 134, 11})
	w.line(contentW, 5, "NOTES", "L")
	w.pdf.SetFont("Helvetica", "", 9)
	w.text(rgb{102, 102, 102})
	w.pdf.MultiCell(contentW, 4.5, w.tr(doc.Notes), "", "L", false)
	w.pdf.Ln(5)
}

func (w *pdfWriter) terms(doc *document) {
	if len(doc.Terms) == 0 {
		return
	}
	w.pdf.SetFont("Helvetica", "B", 8)
	w.text(rgb{153, 153, 153})
	w.line(contentW, 5, "TERMS & CONDITIONS", "L")
	w.pdf.SetFont("Helvetica", "", 8)
	w.text(colorMuted)
	for i, term := range doc.Terms {
		w.pdf.MultiCell(contentW, 4.5, w.tr(strconv.Itoa(i+1)+". "+term), "", "L", false)
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) signature(doc *document) {
	if doc.Signatory == "" {
		return
	}
	blockW := 64.0
	x := pageWidth - marginRight - blockW

	w.pdf.SetX(x)
	w.pdf.SetFont("Helvetica", "BI", 11)
	w.text(colorText)
	w.line(blockW, 12, doc.Signatory, "CB")
	w.draw(rgb{204, 204, 204})
	w.pdf.SetLineWidth(0.2)
	w.pdf.Line(x, w.pdf.GetY(), x+blockW, w.pdf.GetY())
	w.pdf.Ln(1)
	w.pdf.SetX(x)
	w.pdf.SetFont("Helvetica", "B", 7)
	w.text(rgb{153, 153, 153})
	w.line(blockW, 4, "AUTHORIZED SIGNATURE", "C")
	w.pdf.SetX(x)
	w.pdf.SetFont("Helvetica", "", 7)
	w.text(colorMuted)
	w.line(blockW, 4, doc.Business.Name, "C")
	w.pdf.Ln(8)
}

func (w *pdfWriter) footer(doc *document) {
	w.draw(rgb{238, 240, 244})
	w.pdf.SetLineWidth(0.3)
	w.pdf.Line(marginLeft, w.pdf.GetY(), pageWidth-marginRight, w.pdf.GetY())
	w.pdf.Ln(4)

	y := w.pdf.GetY()
	w.pdf.SetFont("Helvetica", "B", 11)
	w.text(colorAccent)
	w.cell(contentW/2, 8, "Thank you for your business!", "LM")

	w.pdf.SetXY(marginLeft+contentW/2, y)
	w.pdf.SetFont("Helvetica", "", 7)
	w.text(rgb{153, 153, 153})
	contact := strings.TrimSpace(doc.Business.Email + " | " + doc.Business.Phone)
	w.line(contentW/2, 4, contact, "R")
	w.pdf.SetX(marginLeft + contentW/2)
	w.line(contentW/2, 4, doc.Business.Website, "R")
}
