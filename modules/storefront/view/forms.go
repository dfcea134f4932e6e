package view

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Inline form messages.
const (
	ErrorAddress = "Необходимо указать адрес"
	ErrorPayment = "Необходимо выбрать способ оплаты"
	ErrorEmail   = "Некорректный email"
	ErrorPhone   = "Некорректный телефон"
)

// Form names, as rendered in the name attribute.
const (
	FormOrder    = "order"
	FormContacts = "contacts"
)

// form holds the state shared by the checkout forms: inline errors and the
// submit control.
type form struct {
	emitter
	errors        []string
	submitEnabled bool
	cleared       events.Subscription
}

// Errors returns a copy of the inline errors on display.
func (f *form) Errors() []string { return slices.Clone(f.errors) }

func (f *form) Dispose() {
	if f.cleared != nil {
		f.cleared.Unsubscribe()
		f.cleared = nil
	}
}

func (f *form) renderErrors() templ.Component {
	return el("span", attrs(class("form__errors")), text(strings.Join(f.errors, ", ")))
}

// field is a labelled text input posting to action on its own.
func field(action, label, name, placeholder, value string) templ.Component {
	return el("form", attrs(class("order__field"), a("method", "post"), urlAttr("action", action)),
		el("label", attrs(class("order__field")),
			el("span", attrs(class("form__label", "modal__title")), text(label)),
			el("input", attrs(a("name", name), class("form__input"), a("type", "text"), a("placeholder", placeholder), a("value", value))),
		),
	)
}

// onBuyerCleared subscribes reset to buyer:cleared.
func (f *form) onBuyerCleared(bus events.Bus, reset func()) error {
	sub, err := contracts.On(bus, func(ctx context.Context, e contracts.BuyerCleared) error {
		reset()
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribing form reset: %w", err)
	}
	f.cleared = sub
	return nil
}

// OrderForm collects the payment method and delivery address. The submit
// control is enabled once a payment method is chosen and the address
// validates.
type OrderForm struct {
	form
	payment        types.Payment
	address        string
	addressTouched bool
}

// NewOrderForm creates the form. It resets itself on buyer:cleared.
func NewOrderForm(bus events.Bus) (*OrderForm, error) {
	f := &OrderForm{form: form{emitter: emitter{bus}}}
	if err := f.onBuyerCleared(bus, f.Reset); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *OrderForm) Name() string { return FormOrder }

func (f *OrderForm) Payment() types.Payment { return f.payment }

func (f *OrderForm) Address() string { return f.address }

func (f *OrderForm) SubmitEnabled() bool { return f.submitEnabled }

// SelectPayment marks a payment button active and publishes order:change.
func (f *OrderForm) SelectPayment(ctx context.Context, payment types.Payment) error {
	if !payment.IsValid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownPayment, payment)
	}
	f.payment = payment
	return f.emit(ctx, contracts.OrderChange{Key: types.FieldPayment, Value: payment.String()})
}

// InputAddress records the address text and publishes order:change.
func (f *OrderForm) InputAddress(ctx context.Context, address string) error {
	f.address = address
	f.addressTouched = true
	return f.emit(ctx, contracts.OrderChange{Key: types.FieldAddress, Value: address})
}

// Validate applies a form:validate result.
func (f *OrderForm) Validate(v types.Validation) {
	f.submitEnabled = f.payment != "" && v.Address
	f.errors = f.errors[:0]
	if f.addressTouched && !v.Address {
		f.errors = append(f.errors, ErrorAddress)
	} else if f.addressTouched && f.payment == "" {
		f.errors = append(f.errors, ErrorPayment)
	}
}

// Submit publishes order:submit with the form fields. A disabled form
// publishes nothing.
func (f *OrderForm) Submit(ctx context.Context) error {
	if !f.submitEnabled {
		return nil
	}
	return f.emit(ctx, contracts.OrderSubmit{Fields: contracts.FormFields{
		types.FieldPayment.String(): f.payment.String(),
		types.FieldAddress.String(): f.address,
	}})
}

func (f *OrderForm) Reset() {
	f.payment = ""
	f.address = ""
	f.addressTouched = false
	f.errors = nil
	f.submitEnabled = false
}

var paymentButtons = []struct {
	payment types.Payment
	label   string
}{
	{types.PaymentCard, "Онлайн"},
	{types.PaymentCash, "При получении"},
}

func (f *OrderForm) Render(ctx context.Context, w io.Writer) error {
	buttons := make([]templ.Component, 0, len(paymentButtons))
	for _, p := range paymentButtons {
		active := f.payment == p.payment
		buttons = append(buttons, el("button", attrs(
			class("button", templ.KV("button_alt", !active), templ.KV("button_alt-active", active)),
			a("name", types.FieldPayment.String()),
			a("value", p.payment.String()),
			a("type", "submit"),
		), text(p.label)))
	}

	return el("div", attrs(class("form"), a("name", FormOrder)),
		el("div", attrs(class("order")),
			el("div", attrs(class("order__field")),
				el("h2", attrs(class("modal__title")), text("Способ оплаты")),
				el("form", attrs(class("order__buttons"), a("method", "post"), urlAttr("action", ActionOrderPayment)), buttons...),
			),
			field(ActionOrderAddress, "Адрес доставки", types.FieldAddress.String(), "Введите адрес", f.address),
		),
		el("div", attrs(class("modal__actions")),
			postButton(ActionOrderSubmit, attrs(class("button", "order__button"), a("disabled", !f.submitEnabled)), text("Далее")),
			f.renderErrors(),
		),
	).Render(ctx, w)
}

// ContactsForm collects email and phone. While an order request is in
// flight its submit control stays disabled.
type ContactsForm struct {
	form
	email        string
	phone        string
	emailTouched bool
	phoneTouched bool
	pending      bool
	submitError  string
}

// NewContactsForm creates the form. It resets itself on buyer:cleared.
func NewContactsForm(bus events.Bus) (*ContactsForm, error) {
	f := &ContactsForm{form: form{emitter: emitter{bus}}}
	if err := f.onBuyerCleared(bus, f.Reset); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *ContactsForm) Name() string { return FormContacts }

func (f *ContactsForm) Email() string { return f.email }

func (f *ContactsForm) Phone() string { return f.phone }

func (f *ContactsForm) Pending() bool { return f.pending }

func (f *ContactsForm) SubmitError() string { return f.submitError }

// SubmitEnabled reports whether both fields validate and no order request
// is in flight.
func (f *ContactsForm) SubmitEnabled() bool { return f.submitEnabled && !f.pending }

func (f *ContactsForm) InputEmail(ctx context.Context, email string) error {
	f.email = email
	f.emailTouched = true
	return f.emit(ctx, contracts.OrderChange{Key: types.FieldEmail, Value: email})
}

// InputPhone formats the typed phone and publishes the formatted value.
func (f *ContactsForm) InputPhone(ctx context.Context, phone string) error {
	f.phone = FormatPhone(phone)
	f.phoneTouched = true
	return f.emit(ctx, contracts.OrderChange{Key: types.FieldPhone, Value: f.phone})
}

// Validate applies a form:validate result.
func (f *ContactsForm) Validate(v types.Validation) {
	f.submitEnabled = v.Email && v.Phone
	f.errors = f.errors[:0]
	if f.emailTouched && !v.Email {
		f.errors = append(f.errors, ErrorEmail)
	}
	if f.phoneTouched && !v.Phone {
		f.errors = append(f.errors, ErrorPhone)
	}
}

// SetPending toggles the in-flight state of the order request.
func (f *ContactsForm) SetPending(pending bool) { f.pending = pending }

// SetSubmitError shows a failed submission. An empty message clears it.
func (f *ContactsForm) SetSubmitError(message string) { f.submitError = message }

// Submit publishes contacts:submit. It does nothing while the form is
// invalid or a request is in flight.
func (f *ContactsForm) Submit(ctx context.Context) error {
	if !f.SubmitEnabled() {
		return nil
	}
	f.submitError = ""
	return f.emit(ctx, contracts.ContactsSubmit{Fields: contracts.FormFields{
		types.FieldEmail.String(): f.email,
		types.FieldPhone.String(): f.phone,
	}})
}

func (f *ContactsForm) Reset() {
	f.email = ""
	f.phone = ""
	f.emailTouched = false
	f.phoneTouched = false
	f.pending = false
	f.submitError = ""
	f.errors = nil
	f.submitEnabled = false
}

func (f *ContactsForm) Render(ctx context.Context, w io.Writer) error {
	return el("div", attrs(class("form"), a("name", FormContacts)),
		el("div", attrs(class("order")),
			field(ActionContactsEmail, "Email", types.FieldEmail.String(), "Введите Email", f.email),
			field(ActionContactsPhone, "Телефон", types.FieldPhone.String(), "+7 (", f.phone),
		),
		el("div", attrs(class("modal__actions")),
			postButton(ActionContactsSubmit, attrs(class("button"), a("disabled", !f.SubmitEnabled())), text("Оплатить")),
			f.renderErrors(),
			when(f.submitError != "", el("span", attrs(class("form__errors", "form__errors_submit")), text(f.submitError))),
		),
	).Render(ctx, w)
}

var (
	_ Renderer = (*OrderForm)(nil)
	_ Renderer = (*ContactsForm)(nil)
	_ Disposer = (*OrderForm)(nil)
	_ Disposer = (*ContactsForm)(nil)
)
