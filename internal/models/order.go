package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID    string          `json:"product_id" db:"product_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	ProductImage string          `json:"product_image" db:"product_image"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Price        decimal.Decimal `json:"price" db:"price"`
	VariantInfo  *string         `json:"variant_info,omitempty" db:"variant_info"`
}

// CreateOrderData is the payload handed to the order service once payment
// succeeded. PaymentReference is stored with the order so webhooks can find it.
type CreateOrderData struct {
	SessionID        uuid.UUID       `json:"session_id"`
	Items            []OrderItem     `json:"items"`
	ShippingAddress  ShippingAddress `json:"shipping_address"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	ShippingFee      decimal.Decimal `json:"shipping_fee"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	PaymentMethod    string          `json:"payment_method"`
	CustomerEmail    string          `json:"customer_email"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	PaymentChannel   string          `json:"payment_channel,omitempty"`
}

type Order struct {
	ID               string          `json:"id" db:"id"`
	SessionID        string          `json:"session_id" db:"session_id"`
	Items            []OrderItem     `json:"items"`
	ShippingAddress  ShippingAddress `json:"shipping_address"`
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
	ShippingFee      decimal.Decimal `json:"shipping_fee" db:"shipping_fee"`
	TaxAmount        decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	PaymentMethod    string          `json:"payment_method" db:"payment_method"`
	CustomerEmail    string          `json:"customer_email" db:"customer_email"`
	Status           OrderStatus     `json:"status" db:"status"`
	PaymentStatus    PaymentStatus   `json:"payment_status" db:"payment_status"`
	PaymentReference string          `json:"payment_reference,omitempty" db:"payment_reference"`
	PaymentChannel   string          `json:"payment_channel,omitempty" db:"payment_channel"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// Subtotal is the sum of the item lines, before shipping and tax.
func (o Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
