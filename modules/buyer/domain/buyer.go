// Package domain contains the buyer profile model and its validation rules.
package domain

import (
	"context"
	"fmt"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Buyer owns the buyer profile. Fields hold plain text until validated.
type Buyer struct {
	profile   types.Profile
	publisher events.Publisher
}

func NewBuyer(publisher events.Publisher) *Buyer {
	return &Buyer{profile: types.DefaultProfile(), publisher: publisher}
}

func (b *Buyer) Data() types.Profile { return b.profile }

// SetData merges patch over the profile and publishes buyer:data-changed
// with the pre- and post-call snapshots.
func (b *Buyer) SetData(ctx context.Context, patch types.Patch) error {
	old := b.profile
	b.profile = old.Apply(patch)
	return b.publisher.Publish(ctx, contracts.BuyerDataChanged{OldData: old, NewData: b.profile})
}

// Change sets a single field from live form input. It publishes
// buyer:data-changed followed by form:validate.
func (b *Buyer) Change(ctx context.Context, field types.Field, value string) error {
	patch, err := fieldPatch(field, value)
	if err != nil {
		return err
	}
	if err := b.SetData(ctx, patch); err != nil {
		return err
	}
	return b.publishValidation(ctx, Validate(b.profile))
}

// Validate evaluates the profile and publishes form:validate so passive
// observers stay in sync.
func (b *Buyer) Validate(ctx context.Context) (types.Validation, error) {
	result := Validate(b.profile)
	return result, b.publishValidation(ctx, result)
}

func (b *Buyer) IsValid() bool {
	return Validate(b.profile).Valid()
}

// Clear resets the profile to its default and publishes buyer:cleared.
func (b *Buyer) Clear(ctx context.Context) error {
	old := b.profile
	b.profile = types.DefaultProfile()
	return b.publisher.Publish(ctx, contracts.BuyerCleared{OldData: old, NewData: b.profile})
}

func (b *Buyer) publishValidation(ctx context.Context, result types.Validation) error {
	return b.publisher.Publish(ctx, contracts.FormValidate{Validation: result})
}

// fieldPatch maps a form field to a single-field patch. An unrecognised
// payment value is stored as-is and fails validation.
func fieldPatch(field types.Field, value string) (types.Patch, error) {
	switch field {
	case types.FieldPayment:
		p := types.Payment(value)
		return types.Patch{Payment: &p}, nil
	case types.FieldEmail:
		return types.Patch{Email: &value}, nil
	case types.FieldPhone:
		return types.Patch{Phone: &value}, nil
	case types.FieldAddress:
		return types.Patch{Address: &value}, nil
	default:
		return types.Patch{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
