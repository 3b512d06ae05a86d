package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"go.uber.org/zap"
)

type Service struct {
	sender     Sender
	salesEmail string
	siteURL    string
	currency   string
	logger     *zap.Logger
}

type Options struct {
	SalesEmail string // inquiries land here; also BCC'd on order confirmations
	SiteURL    string // storefront base URL used for order links
	Currency   string
}

func NewService(sender Sender, opts Options, logger *zap.Logger) *Service {
	if opts.Currency == "" {
		opts.Currency = "NGN"
	}
	return &Service{
		sender:     sender,
		salesEmail: opts.SalesEmail,
		siteURL:    strings.TrimRight(opts.SiteURL, "/"),
		currency:   opts.Currency,
		logger:     logger,
	}
}

func (s *Service) SendOrderConfirmation(ctx context.Context, order models.Order) error {
	if order.CustomerEmail == "" {
		return fmt.Errorf("order %s has no customer email", order.ID)
	}

	trackURL := ""
	if s.siteURL != "" {
		trackURL = s.siteURL + "/order-confirmation/" + order.ID
	}
	html, err := render(orderConfirmationTmpl, struct {
		Order    models.Order
		ShortID  string
		Currency string
		TrackURL string
	}{order, shortID(order.ID), s.currency, trackURL})
	if err != nil {
		return fmt.Errorf("render order confirmation: %w", err)
	}

	msg := Message{
		To:      []string{order.CustomerEmail},
		ReplyTo: s.salesEmail,
		Subject: "Your Cyperus order #" + shortID(order.ID) + " is confirmed",
		HTML:    html,
	}
	if s.salesEmail != "" {
		msg.Bcc = []string{s.salesEmail}
	}
	if trackURL != "" {
		png, err := orderQRCode(trackURL)
		if err != nil {
			s.logger.Warn("order QR code not generated", zap.String("order_id", order.ID), zap.Error(err))
		} else {
			msg.Attachments = append(msg.Attachments, Attachment{Filename: "order-" + shortID(order.ID) + ".png", Content: png})
		}
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return err
	}
	s.logger.Info("order confirmation sent", zap.String("order_id", order.ID), zap.String("to", order.CustomerEmail))
	return nil
}

func (s *Service) SendContactInquiry(ctx context.Context, in models.ContactInquiry) error {
	return s.sendInquiry(ctx, contactTmpl, in, in.Email, "Contact: "+in.Subject)
}

func (s *Service) SendExportInquiry(ctx context.Context, in models.ExportInquiry) error {
	return s.sendInquiry(ctx, exportTmpl, in, in.Email, "Export inquiry from "+in.CompanyName+" ("+in.Country+")")
}

func (s *Service) SendDistributorInquiry(ctx context.Context, in models.DistributorInquiry) error {
	return s.sendInquiry(ctx, distributorTmpl, in, in.Email, "Distributor application: "+in.BusinessName)
}

func (s *Service) sendInquiry(ctx context.Context, tmpl *template.Template, data any, replyTo, subject string) error {
	if s.salesEmail == "" {
		return fmt.Errorf("%w: SALES_EMAIL not set", ErrNotConfigured)
	}
	html, err := render(tmpl, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	if err := s.sender.Send(ctx, Message{
		To:      []string{s.salesEmail},
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    html,
	}); err != nil {
		return err
	}
	s.logger.Info("inquiry forwarded", zap.String("kind", tmpl.Name()), zap.String("from", replyTo))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
