// Package shipping manages the active delivery address of a checkout session.
package shipping

import (
	"errors"
	"strings"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/models"
)

var ErrUnknownField = errors.New("unknown address field")

type Field string

const (
	FieldFullName     Field = "full_name"
	FieldPhone        Field = "phone"
	FieldAddressLine1 Field = "address_line_1"
	FieldAddressLine2 Field = "address_line_2"
	FieldCity         Field = "city"
	FieldState        Field = "state"
	FieldPostalCode   Field = "postal_code"
	FieldCountry      Field = "country"
)

// Notifier receives user-facing validation messages.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// required fields in the order they are checked.
var required = []struct {
	field   Field
	message string
}{
	{FieldFullName, "Please enter your full name"},
	{FieldPhone, "Please enter your phone number"},
	{FieldAddressLine1, "Please enter your street address"},
	{FieldCity, "Please enter your city"},
	{FieldState, "Please select your state"},
}

// Manager holds the active address, the saved addresses and the new-address form flag.
// It is serialised as-is into the session store.
type Manager struct {
	Active      models.ShippingAddress   `json:"active"`
	Saved       []models.ShippingAddress `json:"saved"`
	ShowNewForm bool                     `json:"show_new_form"`
}

func NewManager(saved ...models.ShippingAddress) *Manager {
	m := &Manager{Saved: append([]models.ShippingAddress{}, saved...)}
	if len(saved) > 0 {
		m.Active = saved[0]
	} else {
		m.ShowNewForm = true
	}
	return m
}

// SelectSavedAddress copies saved[index] into the active address and leaves
// new-address mode. Out of range indexes are ignored.
func (m *Manager) SelectSavedAddress(index int) {
	if index < 0 || index >= len(m.Saved) {
		return
	}
	m.Active = m.Saved[index]
	m.ShowNewForm = false
}

func (m *Manager) UpdateField(field Field, value string) error {
	a := &m.Active
	switch field {
	case FieldFullName:
		a.FullName = value
	case FieldPhone:
		a.Phone = value
	case FieldAddressLine1:
		a.AddressLine1 = value
	case FieldAddressLine2:
		a.AddressLine2 = value
	case FieldCity:
		a.City = value
	case FieldState:
		a.State = value
	case FieldPostalCode:
		a.PostalCode = value
	case FieldCountry:
		a.Country = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (m *Manager) ToggleNewAddressForm(show bool) {
	m.ShowNewForm = show
}

// SaveAddress appends addr to the saved list and returns its index.
func (m *Manager) SaveAddress(addr models.ShippingAddress) int {
	m.Saved = append(m.Saved, addr)
	return len(m.Saved) - 1
}

// Validate checks the active address. On failure the first missing field's
// message goes to n and false is returned. n may be nil.
func (m *Manager) Validate(n Notifier) bool {
	ok, _, msg := Check(m.Active)
	if !ok && n != nil {
		n.Notify(msg)
	}
	return ok
}

// Check reports whether addr has every required field, and if not which one
// failed first together with its message.
func Check(addr models.ShippingAddress) (bool, Field, string) {
	for _, r := range required {
		if strings.TrimSpace(value(addr, r.field)) == "" {
			return false, r.field, r.message
		}
	}
	return true, "", ""
}

func value(a models.ShippingAddress, f Field) string {
	switch f {
	case FieldFullName:
		return a.FullName
	case FieldPhone:
		return a.Phone
	case FieldAddressLine1:
		return a.AddressLine1
	case FieldAddressLine2:
		return a.AddressLine2
	case FieldCity:
		return a.City
	case FieldState:
		return a.State
	case FieldPostalCode:
		return a.PostalCode
	case FieldCountry:
		return a.Country
	}
	return ""
}
