package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func newTestVendor(t *testing.T) *Vendor {
	t.Helper()
	v, err := NewVendor(uuid.New(), "Campus Gadgets", "08031234567")
	require.NoError(t, err)
	return v
}

func TestNewVendor(t *testing.T) {
	t.Run("creates pending vendor with slug", func(t *testing.T) {
		userID := uuid.New()
		v, err := NewVendor(userID, "  Mama's Kitchen  ", "+234 803 123 4567")

		require.NoError(t, err)
		assert.Equal(t, userID, v.UserID)
		assert.Equal(t, "Mama's Kitchen", v.BusinessName)
		assert.Equal(t, "mama-s-kitchen", v.Slug)
		assert.Equal(t, VendorStatusPending, v.Status)
		assert.False(t, v.IsApproved())
	})

	t.Run("rejects empty business name", func(t *testing.T) {
		_, err := NewVendor(uuid.New(), "   ", "08031234567")
		assertDomainCode(t, err, "INVALID_BUSINESS_NAME")
	})

	t.Run("rejects whatsapp number without digits", func(t *testing.T) {
		_, err := NewVendor(uuid.New(), "Campus Gadgets", "call me")
		assertDomainCode(t, err, "INVALID_WHATSAPP")
	})
}

func TestVendorApprovalTransitions(t *testing.T) {
	t.Run("pending to approved", func(t *testing.T) {
		v := newTestVendor(t)

		require.NoError(t, v.Approve(true))
		assert.Equal(t, VendorStatusApproved, v.Status)
		assert.True(t, v.IsApproved())
		assert.Equal(t, 2, v.GetVersion())
	})

	t.Run("approval requires verified email", func(t *testing.T) {
		v := newTestVendor(t)

		err := v.Approve(false)
		assertDomainCode(t, err, "EMAIL_NOT_VERIFIED")
		assert.Equal(t, VendorStatusPending, v.Status)
	})

	t.Run("approving twice fails", func(t *testing.T) {
		v := newTestVendor(t)
		require.NoError(t, v.Approve(true))

		err := v.Approve(true)
		assertDomainCode(t, err, "ALREADY_APPROVED")
	})

	t.Run("approved to suspended and back", func(t *testing.T) {
		v := newTestVendor(t)
		require.NoError(t, v.Approve(true))

		require.NoError(t, v.Suspend())
		assert.Equal(t, VendorStatusSuspended, v.Status)
		assert.True(t, v.IsSuspended())
		assert.False(t, v.IsApproved())

		require.NoError(t, v.Approve(true))
		assert.Equal(t, VendorStatusApproved, v.Status)
	})

	t.Run("pending vendor cannot be suspended", func(t *testing.T) {
		v := newTestVendor(t)

		err := v.Suspend()
		assertDomainCode(t, err, "NOT_APPROVED")
		assert.Equal(t, VendorStatusPending, v.Status)
	})

	t.Run("suspending twice fails", func(t *testing.T) {
		v := newTestVendor(t)
		require.NoError(t, v.Approve(true))
		require.NoError(t, v.Suspend())

		err := v.Suspend()
		assertDomainCode(t, err, "NOT_APPROVED")
	})
}

func TestVendorProfile(t *testing.T) {
	t.Run("update profile", func(t *testing.T) {
		v := newTestVendor(t)

		require.NoError(t, v.UpdateProfile("Campus Gadgets NG", "Phones and accessories"))
		assert.Equal(t, "Campus Gadgets NG", v.BusinessName)
		assert.Equal(t, "Phones and accessories", v.Description)
		// the public slug stays stable across renames
		assert.Equal(t, "campus-gadgets", v.Slug)
	})

	t.Run("set whatsapp number keeps encrypted copy", func(t *testing.T) {
		v := newTestVendor(t)

		require.NoError(t, v.SetWhatsAppNumber("07011112222", "ciphertext"))
		assert.Equal(t, "07011112222", v.WhatsAppNumber)
		assert.Equal(t, "ciphertext", v.EncryptedWhatsApp)
	})

	t.Run("social links", func(t *testing.T) {
		v := newTestVendor(t)

		v.SetSocialLinks("https://instagram.com/cg", "", "https://tiktok.com/@cg")
		assert.Equal(t, "https://instagram.com/cg", v.InstagramURL)
		assert.Empty(t, v.FacebookURL)
		assert.Equal(t, "https://tiktok.com/@cg", v.TiktokURL)
	})
}

func TestNormalizeWhatsAppNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"local format", "08031234567", "2348031234567", true},
		{"international with plus", "+2348031234567", "2348031234567", true},
		{"already normalized", "2348031234567", "2348031234567", true},
		{"spaces and dashes", "0803-123 4567", "2348031234567", true},
		{"foreign number passes through", "14155552671", "14155552671", true},
		{"empty", "", "", false},
		{"no digits", "call me", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeWhatsAppNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
