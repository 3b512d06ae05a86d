package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
)

// MockPayments implements PaymentService for testing
type MockPayments struct {
	mu      sync.Mutex
	Result  models.PaymentResult
	Err     error
	Calls   []models.PaymentData
	Started chan struct{} // closed on first call when set
	Release chan struct{} // call blocks until closed when set
}

func (m *MockPayments) InitializePayment(_ context.Context, data models.PaymentData) (models.PaymentResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, data)
	first := len(m.Calls) == 1
	m.mu.Unlock()

	if first && m.Started != nil {
		close(m.Started)
	}
	if m.Release != nil {
		<-m.Release
	}
	res := m.Result
	if res.Reference == "" {
		res.Reference = data.Reference
	}
	return res, m.Err
}

func (m *MockPayments) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockOrders implements OrderService for testing
type MockOrders struct {
	mu        sync.Mutex
	CreateErr error
	UpdateErr error
	LookupErr error
	Created   []models.CreateOrderData
	Updates   []models.PaymentStatus
	// Taken lists references that already belong to an order.
	Taken  map[string]bool
	ctxErr error
}

func (m *MockOrders) CreateOrder(ctx context.Context, data models.CreateOrderData) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxErr = ctx.Err()
	if m.CreateErr != nil {
		return models.Order{}, m.CreateErr
	}
	if data.PaymentReference != "" && m.Taken[data.PaymentReference] {
		return models.Order{}, errors.New("payment reference already used")
	}
	m.Created = append(m.Created, data)
	if data.PaymentReference != "" {
		if m.Taken == nil {
			m.Taken = make(map[string]bool)
		}
		m.Taken[data.PaymentReference] = true
	}
	return models.Order{
		ID:               fmt.Sprintf("order-%d", len(m.Created)),
		SessionID:        data.SessionID.String(),
		Items:            data.Items,
		ShippingAddress:  data.ShippingAddress,
		TotalAmount:      data.TotalAmount,
		CustomerEmail:    data.CustomerEmail,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentPending,
		PaymentReference: data.PaymentReference,
		PaymentChannel:   data.PaymentChannel,
	}, nil
}

func (m *MockOrders) PaymentReferenceUsed(_ context.Context, reference string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LookupErr != nil {
		return false, m.LookupErr
	}
	return m.Taken[reference], nil
}

func (m *MockOrders) UpdatePaymentStatus(_ context.Context, _ string, status models.PaymentStatus, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates = append(m.Updates, status)
	return m.UpdateErr
}

func (m *MockOrders) CreatedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Created)
}

// MockEmails implements EmailService for testing
type MockEmails struct {
	mu   sync.Mutex
	Err  error
	Sent []models.Order
}

func (m *MockEmails) SendOrderConfirmation(_ context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, order)
	return m.Err
}

// MockReconciler implements Reconciler for testing
type MockReconciler struct {
	Entries []models.ReconciliationEntry
	Err     error
}

func (m *MockReconciler) Enqueue(_ context.Context, e models.ReconciliationEntry) error {
	m.Entries = append(m.Entries, e)
	return m.Err
}

// flakyLookup fails the first reference lookup, then answers from the mock.
type flakyLookup struct {
	*MockOrders
	calls int
}

func (f *flakyLookup) PaymentReferenceUsed(ctx context.Context, reference string) (bool, error) {
	f.calls++
	if f.calls == 1 {
		return false, errors.New("busy")
	}
	f.MockOrders.mu.Lock()
	defer f.MockOrders.mu.Unlock()
	return f.Taken[reference], nil
}
