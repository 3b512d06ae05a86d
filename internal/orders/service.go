// Package orders stores placed orders and tracks their payment state.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmationMailer sends the order confirmation email.
type ConfirmationMailer interface {
	SendOrderConfirmation(ctx context.Context, order models.Order) error
}

type Service struct {
	repo   *Repository
	mailer ConfirmationMailer
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo *Repository, mailer ConfirmationMailer, logger *zap.Logger) *Service {
	return &Service{repo: repo, mailer: mailer, logger: logger, now: time.Now}
}

func (s *Service) CreateOrder(ctx context.Context, data models.CreateOrderData) (models.Order, error) {
	if len(data.Items) == 0 {
		return models.Order{}, fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	if strings.TrimSpace(data.CustomerEmail) == "" {
		return models.Order{}, fmt.Errorf("%w: customer email is required", ErrInvalidOrder)
	}
	for _, it := range data.Items {
		if it.Quantity <= 0 {
			return models.Order{}, fmt.Errorf("%w: quantity for %s must be positive", ErrInvalidOrder, it.ProductID)
		}
	}

	now := s.now().UTC()
	order := models.Order{
		ID:               uuid.NewString(),
		SessionID:        data.SessionID.String(),
		Items:            data.Items,
		ShippingAddress:  data.ShippingAddress,
		TotalAmount:      data.TotalAmount,
		ShippingFee:      data.ShippingFee,
		TaxAmount:        data.TaxAmount,
		PaymentMethod:    data.PaymentMethod,
		CustomerEmail:    strings.TrimSpace(data.CustomerEmail),
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentPending,
		PaymentReference: strings.TrimSpace(data.PaymentReference),
		PaymentChannel:   data.PaymentChannel,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return models.Order{}, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("session_id", order.SessionID),
		zap.String("reference", order.PaymentReference),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.StringFixed(2)))
	return order, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	return s.repo.Get(ctx, id)
}

// PaymentReferenceUsed reports whether an order already carries reference.
func (s *Service) PaymentReferenceUsed(ctx context.Context, reference string) (bool, error) {
	_, err := s.repo.FindByPaymentReference(ctx, strings.TrimSpace(reference))
	if errors.Is(err, ErrOrderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// UpdatePaymentStatus records the gateway outcome. Paid orders become
// confirmed, failed ones cancelled.
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus, reference, channel string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, status)
	}
	orderStatus := models.OrderStatusPending
	switch status {
	case models.PaymentPaid:
		orderStatus = models.OrderStatusConfirmed
	case models.PaymentFailed:
		orderStatus = models.OrderStatusCancelled
	}

	if err := s.repo.UpdatePayment(ctx, orderID, status, orderStatus, reference, channel, s.now()); err != nil {
		return err
	}
	s.logger.Info("order payment updated",
		zap.String("order_id", orderID),
		zap.String("payment_status", string(status)),
		zap.String("reference", reference))
	return nil
}

// MarkPaidByReference is used by gateway webhooks. Orders that are already
// paid are returned unchanged.
func (s *Service) MarkPaidByReference(ctx context.Context, reference, channel string) (models.Order, error) {
	order, err := s.repo.FindByPaymentReference(ctx, reference)
	if err != nil {
		return models.Order{}, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		return order, nil
	}
	if err := s.UpdatePaymentStatus(ctx, order.ID, models.PaymentPaid, reference, channel); err != nil {
		return models.Order{}, err
	}
	return s.repo.Get(ctx, order.ID)
}

// MarkFailedByReference cancels an unpaid order whose payment was declined
// after the fact. A paid order is never downgraded.
func (s *Service) MarkFailedByReference(ctx context.Context, reference string) (models.Order, error) {
	order, err := s.repo.FindByPaymentReference(ctx, reference)
	if err != nil {
		return models.Order{}, err
	}
	if order.PaymentStatus != models.PaymentPending {
		return order, nil
	}
	if err := s.UpdatePaymentStatus(ctx, order.ID, models.PaymentFailed, reference, order.PaymentChannel); err != nil {
		return models.Order{}, err
	}
	return s.repo.Get(ctx, order.ID)
}

// SendOrderConfirmation (re)sends the confirmation email for a stored order.
func (s *Service) SendOrderConfirmation(ctx context.Context, orderID string) error {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	return s.mailer.SendOrderConfirmation(ctx, order)
}
