package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/boofmebel/boofmebel/internal/domain"
)

// EffectivePrice is the base price plus the delta of the chosen fabric.
// An empty or unknown fabric id contributes no delta.
func EffectivePrice(p *domain.Product, fabricID string) int64 {
	fabric, ok := p.Fabrics.Lookup(fabricID)
	if !ok {
		return p.Price
	}
	return p.Price + fabric.PriceDelta
}

var printer = message.NewPrinter(language.Russian)

// FormatPrice renders an amount with Russian digit grouping and the ruble sign
func FormatPrice(amount int64) string {
	return printer.Sprintf("%d ₽", amount)
}
