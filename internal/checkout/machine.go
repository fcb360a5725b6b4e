package checkout

import (
	"errors"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/pricing"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

var (
	ErrWrongStep       = errors.New("action not allowed on this checkout step")
	ErrUnknownMethod   = errors.New("unknown shipping method")
	ErrUnknownPayment  = errors.New("unknown payment method")
	ErrPaymentRequired = errors.New("card payment must be completed before confirming")
)

type Step int

const (
	StepShippingInfo Step = iota + 1
	StepShippingMethod
	StepPayment
	StepConfirmation
)

// Machine is the checkout flow as a value. Apply never mutates the receiver;
// every transition returns a new Machine, so a failed guard leaves the
// caller's state untouched.
type Machine struct {
	Step          Step                `json:"step"`
	Info          order.ShippingInfo  `json:"shipping_info"`
	Method        pricing.Method      `json:"shipping_method"`
	Payment       order.PaymentMethod `json:"payment_method"`
	PaymentToken  string              `json:"-"`
	CardAvailable bool                `json:"card_available"`
}

// New starts a checkout at the shipping-info step. Payment defaults to
// cash; card is only selectable when a provider is configured.
func New(cardAvailable bool) Machine {
	return Machine{
		Step:          StepShippingInfo,
		Method:        pricing.MethodStandard,
		Payment:       order.PaymentCash,
		CardAvailable: cardAvailable,
	}
}

type Event interface{ isEvent() }

// SubmitInfo advances 1→2 when the shipping fields validate.
type SubmitInfo struct{ Info order.ShippingInfo }

// SelectMethod picks a shipping method at step 2 or 3. At step 3 it also
// drops any issued payment token, since the chargeable amount changed.
type SelectMethod struct{ Method pricing.Method }

// Proceed advances 2→3. A method is always selected (standard by default).
type Proceed struct{}

// SelectPayment picks the payment method at step 3. Card is silently forced
// back to cash when no provider is configured.
type SelectPayment struct{ Method order.PaymentMethod }

// TokenIssued records a payment intent token at step 3.
type TokenIssued struct{ Token string }

// Placed advances 3→4 after order creation succeeded.
type Placed struct{}

// Back returns to the previous step without discarding entered data.
type Back struct{}

func (SubmitInfo) isEvent()    {}
func (SelectMethod) isEvent()  {}
func (Proceed) isEvent()       {}
func (SelectPayment) isEvent() {}
func (TokenIssued) isEvent()   {}
func (Placed) isEvent()        {}
func (Back) isEvent()          {}

// Apply runs one transition. On error the returned Machine equals the input.
func (m Machine) Apply(ev Event) (Machine, error) {
	switch e := ev.(type) {
	case SubmitInfo:
		if m.Step != StepShippingInfo {
			return m, ErrWrongStep
		}
		if errs := ValidateShippingInfo(e.Info); len(errs) > 0 {
			return m, errs
		}
		m.Info = e.Info
		m.Step = StepShippingMethod
		return m, nil

	case SelectMethod:
		if m.Step != StepShippingMethod && m.Step != StepPayment {
			return m, ErrWrongStep
		}
		if !e.Method.Valid() {
			return m, ErrUnknownMethod
		}
		if m.Step == StepPayment && e.Method != m.Method {
			// total changed, the old token authorizes the wrong amount
			m.PaymentToken = ""
		}
		m.Method = e.Method
		return m, nil

	case Proceed:
		if m.Step != StepShippingMethod {
			return m, ErrWrongStep
		}
		m.Step = StepPayment
		return m, nil

	case SelectPayment:
		if m.Step != StepPayment {
			return m, ErrWrongStep
		}
		switch e.Method {
		case order.PaymentCard, order.PaymentCash:
		default:
			return m, ErrUnknownPayment
		}
		if e.Method == order.PaymentCard && !m.CardAvailable {
			e.Method = order.PaymentCash
		}
		if e.Method != m.Payment {
			m.PaymentToken = ""
		}
		m.Payment = e.Method
		return m, nil

	case TokenIssued:
		if m.Step != StepPayment || m.Payment != order.PaymentCard {
			return m, ErrWrongStep
		}
		m.PaymentToken = e.Token
		return m, nil

	case Placed:
		if err := m.CanConfirm(); err != nil {
			return m, err
		}
		m.Step = StepConfirmation
		return m, nil

	case Back:
		switch m.Step {
		case StepShippingMethod:
			m.Step = StepShippingInfo
		case StepPayment:
			// abandoning the payment step discards any in-flight token
			m.PaymentToken = ""
			m.Step = StepShippingMethod
		default:
			return m, ErrWrongStep
		}
		return m, nil
	}
	return m, errors.New("unknown checkout event")
}

// CanConfirm reports whether placing the order is allowed from the current
// state: on the payment step, and for card payment only with a live token.
func (m Machine) CanConfirm() error {
	if m.Step != StepPayment {
		return ErrWrongStep
	}
	if m.Payment == order.PaymentCard && m.PaymentToken == "" {
		return ErrPaymentRequired
	}
	return nil
}
