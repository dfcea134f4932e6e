package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0wem/weblarek/modules/buyer/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile types.Profile
		want    types.Validation
	}{
		{
			name: "short valid profile",
			profile: types.Profile{
				Payment: types.PaymentCash,
				Email:   "a@b.co",
				Phone:   "1234567890",
				Address: "123456",
			},
			want: types.Validation{Payment: true, Email: true, Phone: true, Address: true},
		},
		{
			name: "short invalid profile",
			profile: types.Profile{
				Payment: types.PaymentCard,
				Email:   "abc",
				Phone:   "123",
				Address: "abc",
			},
			want: types.Validation{Payment: true},
		},
		{
			name:    "only payment set",
			profile: types.Profile{Payment: types.PaymentCard},
			want:    types.Validation{Payment: true},
		},
		{
			name:    "empty payment",
			profile: types.Profile{},
			want:    types.Validation{},
		},
		{
			name: "all valid",
			profile: types.Profile{
				Payment: types.PaymentCash,
				Email:   "user@example.com",
				Phone:   "+7 (999) 123-45-67",
				Address: "Moscow, Tverskaya 1",
			},
			want: types.Validation{Payment: true, Email: true, Phone: true, Address: true},
		},
		{
			name:    "email without at sign",
			profile: types.Profile{Payment: types.PaymentCard, Email: "user.example.com"},
			want:    types.Validation{Payment: true},
		},
		{
			name:    "phone with nine digits",
			profile: types.Profile{Payment: types.PaymentCard, Phone: "+7 999 123-45-6"},
			want:    types.Validation{Payment: true},
		},
		{
			name:    "address of exactly five characters",
			profile: types.Profile{Payment: types.PaymentCard, Address: "Tomsk"},
			want:    types.Validation{Payment: true},
		},
		{
			name:    "cyrillic address counted in characters",
			profile: types.Profile{Payment: types.PaymentCard, Address: "Москва"},
			want:    types.Validation{Payment: true, Address: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Validate(tt.profile))
		})
	}
}

func TestValidAddress_CountsRunes(t *testing.T) {
	// "Омск" is 8 bytes but 4 characters.
	assert.False(t, domain.ValidAddress("Омск"))
	assert.False(t, domain.ValidAddress("Пермь"))
	assert.True(t, domain.ValidAddress("Самара"))
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 11, domain.CountDigits("+7 (999) 123-45-67"))
	assert.Zero(t, domain.CountDigits("no digits"))
	assert.Zero(t, domain.CountDigits("٩٩٩١٢٣٤٥٦٧"), "arabic-indic digits")
	assert.Zero(t, domain.CountDigits("９９９１２３４５６７"), "fullwidth digits")
	assert.False(t, domain.ValidPhone("+7 ９９９ １２３ ４５ ６７"))
}
