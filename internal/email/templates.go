package email

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"money": formatMoney,
	"lineTotal": func(price decimal.Decimal, qty int) decimal.Decimal {
		return price.Mul(decimal.NewFromInt(int64(qty)))
	},
}

const layoutHead = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="font-family: Arial, sans-serif; background-color: #f7f5ef; padding: 20px;">
<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
`

const layoutFoot = `<p style="margin-top: 30px; color: #555;">Cyperus Enterprise<br>Tigernut goodness, made in Nigeria</p>
</div>
</body>
</html>`

var orderConfirmationTmpl = template.Must(template.New("order").Funcs(funcs).Parse(layoutHead + `
<h2 style="color: #5a4a1f;">Thank you for your order, {{.Order.ShippingAddress.FullName}}!</h2>
<p>Your order <strong>#{{.ShortID}}</strong> has been received{{if eq .Order.PaymentStatus "paid"}} and paid{{end}}.</p>
<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
<thead>
<tr style="background-color: #f0ead6;">
<th style="padding: 8px; text-align: left;">Product</th>
<th style="padding: 8px; text-align: left;">Qty</th>
<th style="padding: 8px; text-align: right;">Price</th>
<th style="padding: 8px; text-align: right;">Total</th>
</tr>
</thead>
<tbody>
{{range .Order.Items}}<tr>
<td style="padding: 8px;">{{.ProductName}}</td>
<td style="padding: 8px;">{{.Quantity}}</td>
<td style="padding: 8px; text-align: right;">{{money $.Currency .Price}}</td>
<td style="padding: 8px; text-align: right;">{{money $.Currency (lineTotal .Price .Quantity)}}</td>
</tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="3" style="padding: 8px; text-align: right;">Shipping</td><td style="padding: 8px; text-align: right;">{{money .Currency .Order.ShippingFee}}</td></tr>
{{if .Order.TaxAmount.IsPositive}}<tr><td colspan="3" style="padding: 8px; text-align: right;">Tax</td><td style="padding: 8px; text-align: right;">{{money .Currency .Order.TaxAmount}}</td></tr>{{end}}
<tr><td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total</td><td style="padding: 8px; text-align: right; font-weight: bold;">{{money .Currency .Order.TotalAmount}}</td></tr>
</tfoot>
</table>
<h3>Delivering to</h3>
<p>{{.Order.ShippingAddress.FullName}}<br>
{{.Order.ShippingAddress.AddressLine1}}<br>
{{with .Order.ShippingAddress.AddressLine2}}{{.}}<br>{{end}}
{{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}}<br>
{{.Order.ShippingAddress.Phone}}</p>
{{if .TrackURL}}<p><a href="{{.TrackURL}}">View your order</a>. The attached QR code opens the same page.</p>{{end}}
` + layoutFoot))

var contactTmpl = template.Must(template.New("contact").Parse(layoutHead + `
<h2>New contact message</h2>
<p><strong>Name:</strong> {{.Name}}<br>
<strong>Email:</strong> {{.Email}}<br>
{{with .Phone}}<strong>Phone:</strong> {{.}}<br>{{end}}
<strong>Subject:</strong> {{.Subject}}</p>
<p style="white-space: pre-line;">{{.Message}}</p>
` + layoutFoot))

var exportTmpl = template.Must(template.New("export").Parse(layoutHead + `
<h2>New export inquiry</h2>
<p><strong>Company:</strong> {{.CompanyName}}<br>
<strong>Contact:</strong> {{.ContactName}}<br>
<strong>Email:</strong> {{.Email}}<br>
<strong>Phone:</strong> {{.Phone}}<br>
<strong>Country:</strong> {{.Country}}<br>
<strong>Products:</strong> {{.Products}}<br>
<strong>Quantity:</strong> {{.Quantity}}</p>
{{with .Message}}<p style="white-space: pre-line;">{{.}}</p>{{end}}
` + layoutFoot))

var distributorTmpl = template.Must(template.New("distributor").Parse(layoutHead + `
<h2>New distributor application</h2>
<p><strong>Business:</strong> {{.BusinessName}}<br>
<strong>Contact:</strong> {{.ContactName}}<br>
<strong>Email:</strong> {{.Email}}<br>
<strong>Phone:</strong> {{.Phone}}<br>
<strong>Location:</strong> {{.Location}}<br>
<strong>Business type:</strong> {{.BusinessType}}</p>
{{with .Message}}<p style="white-space: pre-line;">{{.}}</p>{{end}}
` + layoutFoot))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
}

// formatMoney renders 12345.5 as ₦12,345.50.
func formatMoney(currency string, amount decimal.Decimal) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}

	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + symbol + b.String() + "." + frac
}
