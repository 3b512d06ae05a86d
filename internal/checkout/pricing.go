package checkout

import "github.com/shopspring/decimal"

type Pricing struct {
	Currency              string
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal // zero disables free shipping
	TaxRate               decimal.Decimal
}

type Amounts struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

func (p Pricing) Compute(subtotal decimal.Decimal) Amounts {
	fee := p.ShippingFee
	if p.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		fee = decimal.Zero
	}
	tax := subtotal.Mul(p.TaxRate).Round(2)
	return Amounts{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}
