package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Repository struct{ db *sqlx.DB }

func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

type orderRow struct {
	ID               string          `db:"id"`
	SessionID        string          `db:"session_id"`
	CustomerEmail    string          `db:"customer_email"`
	FullName         string          `db:"full_name"`
	Phone            string          `db:"phone"`
	AddressLine1     string          `db:"address_line_1"`
	AddressLine2     string          `db:"address_line_2"`
	City             string          `db:"city"`
	State            string          `db:"state"`
	PostalCode       string          `db:"postal_code"`
	Country          string          `db:"country"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	ShippingFee      decimal.Decimal `db:"shipping_fee"`
	TaxAmount        decimal.Decimal `db:"tax_amount"`
	PaymentMethod    string          `db:"payment_method"`
	Status           string          `db:"status"`
	PaymentStatus    string          `db:"payment_status"`
	PaymentReference string          `db:"payment_reference"`
	PaymentChannel   string          `db:"payment_channel"`
	CreatedAt        string          `db:"created_at"`
	UpdatedAt        string          `db:"updated_at"`
}

const orderColumns = `id, session_id, customer_email, full_name, phone, address_line_1, address_line_2,
	city, state, postal_code, country, total_amount, shipping_fee, tax_amount, payment_method,
	status, payment_status, payment_reference, payment_channel, created_at, updated_at`

// Insert stores the order header and its items in one transaction.
func (r *Repository) Insert(ctx context.Context, o models.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	a := o.ShippingAddress
	_, err = tx.ExecContext(ctx, `
	  INSERT INTO orders (`+orderColumns+`)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.SessionID, o.CustomerEmail, a.FullName, a.Phone, a.AddressLine1, a.AddressLine2,
		a.City, a.State, a.PostalCode, a.Country,
		o.TotalAmount.String(), o.ShippingFee.String(), o.TaxAmount.String(), o.PaymentMethod,
		string(o.Status), string(o.PaymentStatus), o.PaymentReference, o.PaymentChannel,
		formatTime(o.CreatedAt), formatTime(o.UpdatedAt))
	if isReferenceConflict(err) {
		return fmt.Errorf("%w: %s", ErrPaymentReferenceUsed, o.PaymentReference)
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		var variant sql.NullString
		if it.VariantInfo != nil {
			variant = sql.NullString{String: *it.VariantInfo, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, position, product_id, product_name, product_image, quantity, price, variant_info)
		  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		`, o.ID, i, it.ProductID, it.ProductName, it.ProductImage, it.Quantity, it.Price.String(), variant)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", it.ProductID, err)
		}
	}
	return tx.Commit()
}

// isReferenceConflict reports a hit on the unique payment_reference index.
func isReferenceConflict(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(serr.Error(), "payment_reference")
}

func (r *Repository) Get(ctx context.Context, id string) (models.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return r.hydrate(ctx, row)
}

func (r *Repository) FindByPaymentReference(ctx context.Context, reference string) (models.Order, error) {
	if reference == "" {
		return models.Order{}, ErrOrderNotFound
	}
	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE payment_reference = ? LIMIT 1`, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return r.hydrate(ctx, row)
}

// ListBySession returns the session's orders, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderColumns+` FROM orders
		WHERE session_id = ?
		ORDER BY created_at DESC
	`, sessionID); err != nil {
		return nil, err
	}

	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		o, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *Repository) UpdatePayment(ctx context.Context, id string, status models.PaymentStatus, orderStatus models.OrderStatus, reference, channel string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = ?, status = ?,
		    payment_reference = CASE WHEN ? = '' THEN payment_reference ELSE ? END,
		    payment_channel = CASE WHEN ? = '' THEN payment_channel ELSE ? END,
		    updated_at = ?
		WHERE id = ?
	`, string(status), string(orderStatus), reference, reference, channel, channel, formatTime(at), id)
	if isReferenceConflict(err) {
		return fmt.Errorf("%w: %s", ErrPaymentReferenceUsed, reference)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type itemRow struct {
	ProductID    string          `db:"product_id"`
	ProductName  string          `db:"product_name"`
	ProductImage string          `db:"product_image"`
	Quantity     int             `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
	VariantInfo  sql.NullString  `db:"variant_info"`
}

func (r *Repository) hydrate(ctx context.Context, row orderRow) (models.Order, error) {
	var items []itemRow
	if err := r.db.SelectContext(ctx, &items, `
		SELECT product_id, product_name, product_image, quantity, price, variant_info
		FROM order_items WHERE order_id = ?
		ORDER BY position
	`, row.ID); err != nil {
		return models.Order{}, err
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s created_at: %w", row.ID, err)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s updated_at: %w", row.ID, err)
	}

	o := models.Order{
		ID:        row.ID,
		SessionID: row.SessionID,
		Items:     make([]models.OrderItem, 0, len(items)),
		ShippingAddress: models.ShippingAddress{
			FullName:     row.FullName,
			Phone:        row.Phone,
			AddressLine1: row.AddressLine1,
			AddressLine2: row.AddressLine2,
			City:         row.City,
			State:        row.State,
			PostalCode:   row.PostalCode,
			Country:      row.Country,
		},
		TotalAmount:      row.TotalAmount,
		ShippingFee:      row.ShippingFee,
		TaxAmount:        row.TaxAmount,
		PaymentMethod:    row.PaymentMethod,
		CustomerEmail:    row.CustomerEmail,
		Status:           models.OrderStatus(row.Status),
		PaymentStatus:    models.PaymentStatus(row.PaymentStatus),
		PaymentReference: row.PaymentReference,
		PaymentChannel:   row.PaymentChannel,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
	for _, it := range items {
		item := models.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Quantity:     it.Quantity,
			Price:        it.Price,
		}
		if it.VariantInfo.Valid {
			v := it.VariantInfo.String
			item.VariantInfo = &v
		}
		o.Items = append(o.Items, item)
	}
	return o, nil
}

// fixed width so that text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
