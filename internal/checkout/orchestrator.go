// Package checkout drives a session from a filled cart to a stored, paid order.
//
// The flow is strictly linear: validate the shipping address, take payment,
// create the order, send the confirmation email, clear the cart. Address,
// payment and order failures stop the flow and return it to idle. A failed
// confirmation email is logged and does not affect the outcome.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cart"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/shipping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultStepTimeout = 20 * time.Second

// ConfirmationPath is where the storefront sends the customer after a successful checkout.
func ConfirmationPath(orderID string) string {
	return "/order-confirmation/" + orderID
}

type Request struct {
	SessionID uuid.UUID
	Cart      *cart.Store
	Shipping  *shipping.Manager
	// Notifier receives the address validation message, if any.
	Notifier         shipping.Notifier
	CustomerEmail    string
	PaymentMethod    string
	PaymentReference string
	CallbackURL      string
}

type Result struct {
	State        State         `json:"state"`
	Order        *models.Order `json:"order,omitempty"`
	Redirect     string        `json:"redirect,omitempty"`
	Amounts      Amounts       `json:"amounts"`
	AddressError string        `json:"address_error,omitempty"`
	PaymentError string        `json:"payment_error,omitempty"`
	OrderError   string        `json:"order_error,omitempty"`
}

type Orchestrator struct {
	payments    PaymentService
	orders      OrderService
	emails      EmailService
	reconciler  Reconciler
	pricing     Pricing
	logger      *zap.Logger
	stepTimeout time.Duration
	now         func() time.Time

	mu     sync.Mutex
	active map[uuid.UUID]State
}

type Option func(*Orchestrator)

func WithPricing(p Pricing) Option {
	return func(o *Orchestrator) { o.pricing = p }
}

func WithReconciler(r Reconciler) Option {
	return func(o *Orchestrator) { o.reconciler = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithStepTimeout bounds each collaborator call.
func WithStepTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.stepTimeout = d }
}

func New(payments PaymentService, orders OrderService, emails EmailService, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		payments:    payments,
		orders:      orders,
		emails:      emails,
		pricing:     Pricing{Currency: "NGN"},
		logger:      zap.NewNop(),
		stepTimeout: defaultStepTimeout,
		now:         time.Now,
		active:      make(map[uuid.UUID]State),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns where the session's running checkout currently is, or idle.
func (o *Orchestrator) State(sessionID uuid.UUID) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.active[sessionID]; ok {
		return s
	}
	return StateIdle
}

func (o *Orchestrator) InProgress(sessionID uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.active[sessionID]
	return ok
}

// Quote prices the cart as checkout would.
func (o *Orchestrator) Quote(c cart.Cart) Amounts {
	return o.pricing.Compute(c.TotalPrice())
}

// Checkout runs the whole flow for one session. While it runs, any other call
// for the same session returns ErrCheckoutInProgress without side effects.
func (o *Orchestrator) Checkout(ctx context.Context, req Request) (Result, error) {
	if !o.acquire(req.SessionID) {
		return Result{State: o.State(req.SessionID)}, ErrCheckoutInProgress
	}
	defer o.release(req.SessionID)

	log := o.logger.With(zap.String("session_id", req.SessionID.String()))

	snapshot := req.Cart.Snapshot()
	if snapshot.IsEmpty() {
		return Result{State: StateIdle}, ErrEmptyCart
	}
	amounts := o.pricing.Compute(snapshot.TotalPrice())

	// ValidatingAddress
	if err := o.advance(req.SessionID, StateValidatingAddress); err != nil {
		return Result{State: StateIdle}, err
	}
	var addressMsg string
	notify := shipping.NotifierFunc(func(msg string) {
		addressMsg = msg
		if req.Notifier != nil {
			req.Notifier.Notify(msg)
		}
	})
	if !req.Shipping.Validate(notify) {
		log.Info("checkout stopped: invalid address", zap.String("reason", addressMsg))
		return Result{State: StateIdle, Amounts: amounts, AddressError: addressMsg}, ErrInvalidAddress
	}
	address := req.Shipping.Active

	// ProcessingPayment
	if err := o.advance(req.SessionID, StateProcessingPayment); err != nil {
		return Result{State: StateIdle}, err
	}
	payment, err := o.pay(ctx, req, amounts)
	if err != nil {
		log.Warn("payment error", zap.Error(err))
		return Result{State: StateIdle, Amounts: amounts, PaymentError: msgPaymentFailed}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !payment.Succeeded() {
		msg := payment.Message
		if msg == "" {
			msg = msgPaymentFailed
		}
		log.Info("payment not successful",
			zap.String("status", payment.Status),
			zap.String("reference", payment.Reference))
		return Result{State: StateIdle, Amounts: amounts, PaymentError: msg}, ErrPaymentFailed
	}

	// The customer has paid: finish even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	// A gateway reference pays for exactly one order.
	if o.referenceUsed(ctx, log, payment.Reference) {
		log.Warn("payment reference already used", zap.String("reference", payment.Reference))
		return Result{State: StateIdle, Amounts: amounts, PaymentError: msgPaymentReused}, fmt.Errorf("%w: %w", ErrPaymentFailed, ErrPaymentAlreadyUsed)
	}

	// CreatingOrder
	if err := o.advance(req.SessionID, StateCreatingOrder); err != nil {
		return Result{State: StateIdle}, err
	}
	order, err := o.createOrder(ctx, req, snapshot, address, amounts, payment)
	if err != nil {
		// lost a race with another session for the same reference
		if o.referenceUsed(ctx, log, payment.Reference) {
			log.Warn("payment reference taken while creating order",
				zap.String("reference", payment.Reference),
				zap.Error(err))
			return Result{State: StateIdle, Amounts: amounts, PaymentError: msgPaymentReused}, fmt.Errorf("%w: %w", ErrPaymentFailed, ErrPaymentAlreadyUsed)
		}
		log.Error("order creation failed after successful payment",
			zap.String("reference", payment.Reference),
			zap.Error(err))
		o.reconcile(ctx, log, req, payment, amounts, err)
		return Result{State: StateIdle, Amounts: amounts, OrderError: msgOrderFailed}, fmt.Errorf("%w: %v", ErrOrderFailed, err)
	}
	if err := o.recordPayment(ctx, order.ID, payment); err != nil {
		log.Warn("could not record payment on order",
			zap.String("order_id", order.ID),
			zap.Error(err))
	} else {
		order.PaymentStatus = models.PaymentPaid
		order.PaymentReference = payment.Reference
		order.PaymentChannel = payment.Channel
	}

	// SendingConfirmation
	if err := o.advance(req.SessionID, StateSendingConfirmation); err != nil {
		return Result{State: StateIdle}, err
	}
	if err := o.sendConfirmation(ctx, order); err != nil {
		log.Warn("confirmation email not sent",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	if err := o.advance(req.SessionID, StateDone); err != nil {
		return Result{State: StateIdle}, err
	}
	req.Cart.ClearCart()
	log.Info("checkout complete",
		zap.String("order_id", order.ID),
		zap.String("total", amounts.Total.StringFixed(2)))

	return Result{
		State:    StateDone,
		Order:    &order,
		Redirect: ConfirmationPath(order.ID),
		Amounts:  amounts,
	}, nil
}

func (o *Orchestrator) pay(ctx context.Context, req Request, amounts Amounts) (models.PaymentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	reference := req.PaymentReference
	if reference == "" {
		reference = "CYP-" + uuid.NewString()
	}
	return o.payments.InitializePayment(ctx, models.PaymentData{
		Email:       req.CustomerEmail,
		Amount:      amounts.Total,
		Currency:    o.pricing.Currency,
		Reference:   reference,
		CallbackURL: req.CallbackURL,
		Metadata: map[string]string{
			"session_id":    req.SessionID.String(),
			"customer_name": req.Shipping.Active.FullName,
			"phone":         req.Shipping.Active.Phone,
		},
	})
}

// referenceUsed reports whether an order already carries reference. A lookup
// error counts as unused; the store still enforces uniqueness on insert.
func (o *Orchestrator) referenceUsed(ctx context.Context, log *zap.Logger, reference string) bool {
	if reference == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()
	used, err := o.orders.PaymentReferenceUsed(ctx, reference)
	if err != nil {
		log.Warn("payment reference lookup failed",
			zap.String("reference", reference),
			zap.Error(err))
	}
	return err == nil && used
}

func (o *Orchestrator) createOrder(ctx context.Context, req Request, c cart.Cart, address models.ShippingAddress, amounts Amounts, payment models.PaymentResult) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, models.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.Name,
			ProductImage: it.Image,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}
	return o.orders.CreateOrder(ctx, models.CreateOrderData{
		SessionID:        req.SessionID,
		Items:            items,
		ShippingAddress:  address,
		TotalAmount:      amounts.Total,
		ShippingFee:      amounts.ShippingFee,
		TaxAmount:        amounts.Tax,
		PaymentMethod:    req.PaymentMethod,
		CustomerEmail:    req.CustomerEmail,
		PaymentReference: payment.Reference,
		PaymentChannel:   payment.Channel,
	})
}

func (o *Orchestrator) recordPayment(ctx context.Context, orderID string, payment models.PaymentResult) error {
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()
	return o.orders.UpdatePaymentStatus(ctx, orderID, models.PaymentPaid, payment.Reference, payment.Channel)
}

func (o *Orchestrator) sendConfirmation(ctx context.Context, order models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()
	return o.emails.SendOrderConfirmation(ctx, order)
}

func (o *Orchestrator) reconcile(ctx context.Context, log *zap.Logger, req Request, payment models.PaymentResult, amounts Amounts, cause error) {
	if o.reconciler == nil {
		return
	}
	entry := models.ReconciliationEntry{
		SessionID:        req.SessionID.String(),
		PaymentReference: payment.Reference,
		PaymentChannel:   payment.Channel,
		Amount:           amounts.Total,
		Email:            req.CustomerEmail,
		Error:            cause.Error(),
		At:               o.now().UTC(),
	}
	if err := o.reconciler.Enqueue(ctx, entry); err != nil {
		log.Error("reconciliation entry lost",
			zap.String("reference", payment.Reference),
			zap.Error(err))
	}
}

func (o *Orchestrator) acquire(id uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.active[id]; busy {
		return false
	}
	o.active[id] = StateIdle
	return true
}

func (o *Orchestrator) release(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, id)
}

func (o *Orchestrator) advance(id uuid.UUID, next State) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	cur := o.active[id]
	if !cur.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, cur, next)
	}
	o.active[id] = next
	return nil
}
