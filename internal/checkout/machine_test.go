package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/pricing"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/order"
)

func validInfo() order.ShippingInfo {
	return order.ShippingInfo{
		Email:        "ann@example.com",
		CustomerName: "Ann Lee",
		Address:      "12 Printer Way",
		City:         "Austin",
		State:        "TX",
		Zip:          "73301",
		Phone:        "512-555-0101",
	}
}

func atPayment(t *testing.T, cardAvailable bool) Machine {
	t.Helper()
	m := New(cardAvailable)
	m, err := m.Apply(SubmitInfo{Info: validInfo()})
	require.NoError(t, err)
	m, err = m.Apply(Proceed{})
	require.NoError(t, err)
	return m
}

func TestSubmitInfoAdvances(t *testing.T) {
	m := New(true)
	next, err := m.Apply(SubmitInfo{Info: validInfo()})
	assert.NoError(t, err)
	assert.Equal(t, StepShippingMethod, next.Step)
	assert.Equal(t, "ann@example.com", next.Info.Email)
}

func TestSubmitInfoShortZipBlocked(t *testing.T) {
	m := New(true)
	info := validInfo()
	info.Zip = "1234"
	next, err := m.Apply(SubmitInfo{Info: info})

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "shipping_zip")
	assert.Equal(t, StepShippingInfo, next.Step)
}

func TestSubmitInfoCollectsAllFieldErrors(t *testing.T) {
	m := New(true)
	next, err := m.Apply(SubmitInfo{Info: order.ShippingInfo{Email: "not-an-email", Zip: "abcde"}})

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	for _, field := range []string{
		"email", "customer_name", "shipping_address",
		"shipping_city", "shipping_state", "shipping_zip", "shipping_phone",
	} {
		assert.Contains(t, fieldErrs, field)
	}
	assert.Equal(t, StepShippingInfo, next.Step)
}

func TestPhoneFormats(t *testing.T) {
	for _, phone := range []string{"5125550101", "512-555-0101", "(512) 555-0101", "512.555.0101"} {
		info := validInfo()
		info.Phone = phone
		assert.Nil(t, ValidateShippingInfo(info), "phone %q should validate", phone)
	}
	for _, phone := range []string{"555-0101", "512-555-01011", "phone"} {
		info := validInfo()
		info.Phone = phone
		assert.NotNil(t, ValidateShippingInfo(info), "phone %q should fail", phone)
	}
}

func TestZipPlusFourAccepted(t *testing.T) {
	info := validInfo()
	info.Zip = "73301-1234"
	assert.Nil(t, ValidateShippingInfo(info))
}

func TestBackRetainsData(t *testing.T) {
	m := atPayment(t, true)
	m, err := m.Apply(Back{})
	require.NoError(t, err)
	assert.Equal(t, StepShippingMethod, m.Step)
	assert.Equal(t, validInfo(), m.Info)

	m, err = m.Apply(Back{})
	require.NoError(t, err)
	assert.Equal(t, StepShippingInfo, m.Step)
	assert.Equal(t, validInfo(), m.Info)
}

func TestBackFromPaymentDropsToken(t *testing.T) {
	m := atPayment(t, true)
	m, err := m.Apply(SelectPayment{Method: order.PaymentCard})
	require.NoError(t, err)
	m, err = m.Apply(TokenIssued{Token: "tok_1"})
	require.NoError(t, err)

	m, err = m.Apply(Back{})
	require.NoError(t, err)
	assert.Empty(t, m.PaymentToken)
}

func TestMethodChangeAtPaymentClearsToken(t *testing.T) {
	m := atPayment(t, true)
	m, err := m.Apply(SelectPayment{Method: order.PaymentCard})
	require.NoError(t, err)
	m, err = m.Apply(TokenIssued{Token: "tok_1"})
	require.NoError(t, err)

	m, err = m.Apply(SelectMethod{Method: pricing.MethodExpress})
	require.NoError(t, err)
	assert.Empty(t, m.PaymentToken, "token must be re-requested after the total changed")

	// re-selecting the same method keeps the token
	m, err = m.Apply(TokenIssued{Token: "tok_2"})
	require.NoError(t, err)
	m, err = m.Apply(SelectMethod{Method: pricing.MethodExpress})
	require.NoError(t, err)
	assert.Equal(t, "tok_2", m.PaymentToken)
}

func TestCardForcedToCashWhenUnavailable(t *testing.T) {
	m := atPayment(t, false)
	m, err := m.Apply(SelectPayment{Method: order.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, order.PaymentCash, m.Payment)
}

func TestConfirmGuards(t *testing.T) {
	m := New(true)
	assert.ErrorIs(t, m.CanConfirm(), ErrWrongStep)

	m = atPayment(t, true)
	assert.NoError(t, m.CanConfirm(), "cash needs no token")

	m, err := m.Apply(SelectPayment{Method: order.PaymentCard})
	require.NoError(t, err)
	assert.ErrorIs(t, m.CanConfirm(), ErrPaymentRequired)

	m, err = m.Apply(TokenIssued{Token: "tok_1"})
	require.NoError(t, err)
	assert.NoError(t, m.CanConfirm())
}

func TestPlacedAdvancesToConfirmation(t *testing.T) {
	m := atPayment(t, true)
	m, err := m.Apply(Placed{})
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, m.Step)

	// no transitions out of confirmation
	_, err = m.Apply(Back{})
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	m := New(true)
	_, err := m.Apply(SubmitInfo{Info: validInfo()})
	require.NoError(t, err)
	assert.Equal(t, StepShippingInfo, m.Step)
	assert.Empty(t, m.Info.Email)
}

func TestUnknownMethodRejected(t *testing.T) {
	m := atPayment(t, true)
	next, err := m.Apply(SelectMethod{Method: pricing.Method("drone")})
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Equal(t, m, next)
}
