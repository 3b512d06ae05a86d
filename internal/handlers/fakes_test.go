package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/orders"
)

type fakeGateway struct {
	result   models.PaymentResult
	err      error
	prepared []models.PaymentData
}

func (f *fakeGateway) Provider() string { return "paystack" }

func (f *fakeGateway) Prepare(_ context.Context, data models.PaymentData) (models.PreparedPayment, error) {
	f.prepared = append(f.prepared, data)
	if f.err != nil {
		return models.PreparedPayment{}, f.err
	}
	return models.PreparedPayment{Provider: "paystack", Reference: data.Reference, AccessCode: "ac_1"}, nil
}

func (f *fakeGateway) InitializePayment(_ context.Context, data models.PaymentData) (models.PaymentResult, error) {
	res := f.result
	res.Reference = data.Reference
	return res, f.err
}

// fakeOrders est un service de commandes en mémoire.
type fakeOrders struct {
	mu        sync.Mutex
	byID      map[string]models.Order
	createErr error
	mailErr   error
	mailed    []string
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byID: map[string]models.Order{}}
}

func (f *fakeOrders) CreateOrder(_ context.Context, data models.CreateOrderData) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Order{}, f.createErr
	}
	if _, taken := f.byReference(data.PaymentReference); taken && data.PaymentReference != "" {
		return models.Order{}, orders.ErrPaymentReferenceUsed
	}
	o := models.Order{
		ID:               fmt.Sprintf("order-%d", len(f.byID)+1),
		SessionID:        data.SessionID.String(),
		Items:            data.Items,
		ShippingAddress:  data.ShippingAddress,
		TotalAmount:      data.TotalAmount,
		CustomerEmail:    data.CustomerEmail,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentPending,
		PaymentReference: data.PaymentReference,
		PaymentChannel:   data.PaymentChannel,
	}
	f.byID[o.ID] = o
	return o, nil
}

func (f *fakeOrders) UpdatePaymentStatus(_ context.Context, id string, status models.PaymentStatus, ref, channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, found := f.byID[id]
	if !found {
		return orders.ErrOrderNotFound
	}
	o.PaymentStatus, o.PaymentReference, o.PaymentChannel = status, ref, channel
	f.byID[id] = o
	return nil
}

func (f *fakeOrders) GetOrderByID(_ context.Context, id string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, found := f.byID[id]
	if !found {
		return models.Order{}, orders.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrders) ListBySession(_ context.Context, sid string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.byID {
		if o.SessionID == sid {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) PaymentReferenceUsed(_ context.Context, ref string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, found := f.byReference(ref)
	return found && ref != "", nil
}

func (f *fakeOrders) byReference(ref string) (models.Order, bool) {
	for _, o := range f.byID {
		if o.PaymentReference == ref {
			return o, true
		}
	}
	return models.Order{}, false
}

func (f *fakeOrders) MarkPaidByReference(_ context.Context, ref, channel string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, found := f.byReference(ref)
	if !found {
		return models.Order{}, orders.ErrOrderNotFound
	}
	o.PaymentStatus, o.PaymentChannel = models.PaymentPaid, channel
	f.byID[o.ID] = o
	return o, nil
}

func (f *fakeOrders) MarkFailedByReference(_ context.Context, ref string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, found := f.byReference(ref)
	if !found {
		return models.Order{}, orders.ErrOrderNotFound
	}
	if o.PaymentStatus == models.PaymentPending {
		o.PaymentStatus = models.PaymentFailed
		f.byID[o.ID] = o
	}
	return o, nil
}

func (f *fakeOrders) SendOrderConfirmation(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mailed = append(f.mailed, id)
	return f.mailErr
}

type fakeMailer struct {
	mu           sync.Mutex
	err          error
	confirmed    []models.Order
	contacts     []models.ContactInquiry
	exports      []models.ExportInquiry
	distributors []models.DistributorInquiry
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, o models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, o)
	return f.err
}

func (f *fakeMailer) SendContactInquiry(_ context.Context, in models.ContactInquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, in)
	return f.err
}

func (f *fakeMailer) SendExportInquiry(_ context.Context, in models.ExportInquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exports = append(f.exports, in)
	return f.err
}

func (f *fakeMailer) SendDistributorInquiry(_ context.Context, in models.DistributorInquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.distributors = append(f.distributors, in)
	return f.err
}
