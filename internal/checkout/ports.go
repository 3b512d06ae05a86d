package checkout

import (
	"context"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
)

type PaymentService interface {
	InitializePayment(ctx context.Context, data models.PaymentData) (models.PaymentResult, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, data models.CreateOrderData) (models.Order, error)
	PaymentReferenceUsed(ctx context.Context, reference string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus, reference, channel string) error
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, order models.Order) error
}

// Reconciler queues paid checkouts whose order could not be stored.
type Reconciler interface {
	Enqueue(ctx context.Context, entry models.ReconciliationEntry) error
}
