package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureSender struct {
	msgs []Message
	err  error
}

func (c *captureSender) Send(_ context.Context, m Message) error {
	c.msgs = append(c.msgs, m)
	return c.err
}

func testOrder() models.Order {
	return models.Order{
		ID:            "3f2a9c1e-7b44-4f0e-9a51-0c1d2e3f4a5b",
		CustomerEmail: "ada@example.com",
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Tigernut Drink - Original", Quantity: 2, Price: decimal.NewFromInt(2500)},
		},
		ShippingAddress: models.ShippingAddress{
			FullName:     "Ada Obi",
			Phone:        "+2348012345678",
			AddressLine1: "12 Admiralty Way",
			City:         "Lekki",
			State:        "Lagos",
		},
		ShippingFee:   decimal.NewFromInt(1500),
		TotalAmount:   decimal.NewFromInt(6500),
		PaymentStatus: models.PaymentPaid,
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, Options{SalesEmail: "sales@cyperus.ng", SiteURL: "https://cyperus.ng/"}, zap.NewNop())

	require.NoError(t, svc.SendOrderConfirmation(context.Background(), testOrder()))

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, []string{"ada@example.com"}, msg.To)
	assert.Equal(t, []string{"sales@cyperus.ng"}, msg.Bcc)
	assert.Contains(t, msg.Subject, "#3F2A9C1E")
	assert.Contains(t, msg.HTML, "Ada Obi")
	assert.Contains(t, msg.HTML, "Tigernut Drink - Original")
	assert.Contains(t, msg.HTML, "₦5,000.00")
	assert.Contains(t, msg.HTML, "₦6,500.00")
	assert.Contains(t, msg.HTML, "and paid")
	assert.Contains(t, msg.HTML, "https://cyperus.ng/order-confirmation/3f2a9c1e-7b44-4f0e-9a51-0c1d2e3f4a5b")

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "order-3F2A9C1E.png", msg.Attachments[0].Filename)
	assert.Equal(t, []byte("\x89PNG"), msg.Attachments[0].Content[:4])
}

func TestSendOrderConfirmation_EscapesHTML(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, Options{}, zap.NewNop())
	order := testOrder()
	order.ShippingAddress.FullName = "<script>alert(1)</script>"

	require.NoError(t, svc.SendOrderConfirmation(context.Background(), order))
	assert.NotContains(t, sender.msgs[0].HTML, "<script>")
	assert.Empty(t, sender.msgs[0].Attachments)
}

func TestSendOrderConfirmation_Errors(t *testing.T) {
	sender := &captureSender{err: errors.New("boom")}
	svc := NewService(sender, Options{}, zap.NewNop())

	assert.Error(t, svc.SendOrderConfirmation(context.Background(), testOrder()))

	noEmail := testOrder()
	noEmail.CustomerEmail = ""
	assert.Error(t, svc.SendOrderConfirmation(context.Background(), noEmail))
}

func TestSendInquiries(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, Options{SalesEmail: "sales@cyperus.ng"}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SendContactInquiry(ctx, models.ContactInquiry{
		Name: "Tunde", Email: "tunde@example.com", Subject: "Bulk order", Message: "Hello",
	}))
	require.NoError(t, svc.SendExportInquiry(ctx, models.ExportInquiry{
		CompanyName: "Acme GmbH", ContactName: "Jo", Email: "jo@acme.de", Phone: "1",
		Country: "Germany", Products: "Flour", Quantity: "2 tonnes",
	}))
	require.NoError(t, svc.SendDistributorInquiry(ctx, models.DistributorInquiry{
		BusinessName: "Kano Foods", ContactName: "Musa", Email: "musa@kano.ng", Phone: "1",
		Location: "Kano", BusinessType: "Retail",
	}))

	require.Len(t, sender.msgs, 3)
	for _, m := range sender.msgs {
		assert.Equal(t, []string{"sales@cyperus.ng"}, m.To)
	}
	assert.Equal(t, "tunde@example.com", sender.msgs[0].ReplyTo)
	assert.Equal(t, "Contact: Bulk order", sender.msgs[0].Subject)
	assert.Contains(t, sender.msgs[1].Subject, "Germany")
	assert.Contains(t, sender.msgs[1].HTML, "2 tonnes")
	assert.Contains(t, sender.msgs[2].HTML, "Kano Foods")
}

func TestSendInquiry_NoSalesEmail(t *testing.T) {
	svc := NewService(&captureSender{}, Options{}, zap.NewNop())

	err := svc.SendContactInquiry(context.Background(), models.ContactInquiry{Name: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestResendSender(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender("re_test", "Cyperus <orders@cyperus.ng>", srv.URL)
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{
		To:          []string{"ada@example.com"},
		Subject:     "Hi",
		HTML:        "<p>Hi</p>",
		Attachments: []Attachment{{Filename: "a.txt", Content: []byte("hello")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cyperus <orders@cyperus.ng>", got.From)
	assert.Equal(t, []string{"ada@example.com"}, got.To)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), got.Attachments[0].Content)
}

func TestResendSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender("re_test", "bad", srv.URL)
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{To: []string{"a@b.c"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}

func TestNewSenders_RequireConfig(t *testing.T) {
	_, err := NewResendSender("", "from", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewSMTPSender(SMTPConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	s, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, 587, s.cfg.Port)
}

func TestBreakerSender_OpensAfterFailures(t *testing.T) {
	inner := &captureSender{err: errors.New("timeout")}
	b := NewBreakerSender("test", inner, zap.NewNop())

	for i := 0; i < 5; i++ {
		assert.Error(t, b.Send(context.Background(), Message{}))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	err := b.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, inner.msgs, 5)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₦0.00", formatMoney("NGN", decimal.Zero))
	assert.Equal(t, "₦999.50", formatMoney("ngn", decimal.RequireFromString("999.5")))
	assert.Equal(t, "₦1,234,567.00", formatMoney("NGN", decimal.NewFromInt(1234567)))
	assert.Equal(t, "-$12.00", formatMoney("USD", decimal.NewFromInt(-12)))
	assert.Equal(t, "KES 100.00", formatMoney("KES", decimal.NewFromInt(100)))
}
