package checkout

import (
	"regexp"
	"strings"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
)

// FieldErrors maps a shipping field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	var b strings.Builder
	b.WriteString("invalid shipping info:")
	for field := range e {
		b.WriteString(" ")
		b.WriteString(field)
	}
	return b.String()
}

// ValidateShippingInfo checks the step-1 form fields. Returns nil when
// everything passes.
func ValidateShippingInfo(info order.ShippingInfo) FieldErrors {
	errs := FieldErrors{}
	if !emailPattern.MatchString(info.Email) {
		errs["email"] = "enter a valid email address"
	}
	if len(strings.TrimSpace(info.CustomerName)) < 2 {
		errs["customer_name"] = "name must be at least 2 characters"
	}
	if len(strings.TrimSpace(info.Address)) < 5 {
		errs["shipping_address"] = "address must be at least 5 characters"
	}
	if len(strings.TrimSpace(info.City)) < 2 {
		errs["shipping_city"] = "city must be at least 2 characters"
	}
	if len(strings.TrimSpace(info.State)) < 2 {
		errs["shipping_state"] = "state must be at least 2 characters"
	}
	if !zipPattern.MatchString(info.Zip) {
		errs["shipping_zip"] = "enter a 5-digit ZIP code"
	}
	if !phonePattern.MatchString(info.Phone) {
		errs["shipping_phone"] = "enter a 10-digit US phone number"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
