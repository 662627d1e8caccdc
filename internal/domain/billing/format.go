package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formata um valor com 2 casas decimais e separador de milhar (1,234.50).
// O arredondamento acontece apenas aqui, na apresentação.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

// FormatPercent formata uma alíquota sem zeros à direita (8.5, 10).
// A alíquota é exibida como armazenada, sem arredondamento.
func FormatPercent(d decimal.Decimal) string {
	return d.String()
}
