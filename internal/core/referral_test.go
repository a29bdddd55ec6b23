package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumbay/aurumbay/internal/helpers"
	"github.com/aurumbay/aurumbay/internal/models"
)

func TestGenerateCodeAdminOnly(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")
	_, err := c.GenerateCode(ctx, cust.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	admin := signupAdmin(t, c)
	rc, err := c.GenerateCode(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, rc.Code, helpers.PromoCodeLength)
	assert.False(t, rc.IsUsed)
	assert.Equal(t, rc.CreatedAt.Add(models.PromoCodeValidity), rc.ExpiresAt)
}

func TestApplyCodeGrantsPremium(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	admin := signupAdmin(t, c)
	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")

	rc, err := c.GenerateCode(ctx, admin.ID)
	require.NoError(t, err)

	require.NoError(t, c.ApplyCode(ctx, cust.ID, rc.Code))

	u, err := c.GetUser(cust.ID)
	require.NoError(t, err)
	assert.True(t, u.IsPremium)

	codes, err := c.ListReferralCodes(admin.ID)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.True(t, codes[0].IsUsed)
	require.NotNil(t, codes[0].UsedBy)
	assert.Equal(t, cust.ID, *codes[0].UsedBy)
	require.NotNil(t, codes[0].UsedAt)

	last := c.snap.Notifications[len(c.snap.Notifications)-1]
	assert.Equal(t, models.NotificationReferral, last.Type)
	assert.Nil(t, last.RecipientID)

	// Single use.
	other := signupUser(t, c, models.RoleCustomer, "o@x.test", "other", "")
	err = c.ApplyCode(ctx, other.ID, rc.Code)
	require.Error(t, err)
	assert.Equal(t, models.CodeAlreadyUsed, models.CodeOf(err))
}

func TestApplyCodeUnknownAndExpired(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	admin := signupAdmin(t, c)
	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")

	err := c.ApplyCode(ctx, cust.ID, "NOPE1234")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))

	rc, err := c.GenerateCode(ctx, admin.ID)
	require.NoError(t, err)

	advance(c, models.PromoCodeValidity+time.Hour)

	err = c.ApplyCode(ctx, cust.ID, rc.Code)
	require.Error(t, err)
	assert.Equal(t, models.CodeExpired, models.CodeOf(err))

	u, err := c.GetUser(cust.ID)
	require.NoError(t, err)
	assert.False(t, u.IsPremium, "expired redemption must not upgrade")
}

func TestSellerReferralCodeIdempotent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	// A seller who signed up by phone keeps the phone-derived code.
	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+91 98765-43210")
	code, err := c.GenerateSellerReferralCode(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", code)

	again, err := c.GenerateSellerReferralCode(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestSellerReferralCodeMintedWhenMissing(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+91 98765-43210")
	// Simulate a legacy seller without a code.
	c.userByID(seller.ID).ReferralCode = ""

	code, err := c.GenerateSellerReferralCode(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, code, helpers.SellerCodeLength)

	again, err := c.GenerateSellerReferralCode(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestFollowSellerBound(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")

	for i := 0; i < models.MaxSellerReferrals; i++ {
		seller := signupUser(t, c, models.RoleSeller,
			fmt.Sprintf("s%d@x.test", i), fmt.Sprintf("seller%d", i), fmt.Sprintf("+1 555 000 %04d", i))
		_, err := c.AddSellerReferral(ctx, cust.ID, seller.ID, seller.ReferralCode)
		require.NoError(t, err)
	}
	require.Len(t, c.ListSellerReferrals(cust.ID), models.MaxSellerReferrals)

	extra := signupUser(t, c, models.RoleSeller, "extra@x.test", "extraseller", "+1 555 999 0000")
	_, err := c.AddSellerReferral(ctx, cust.ID, extra.ID, extra.ReferralCode)
	require.Error(t, err)
	assert.Equal(t, models.CodeLimitReached, models.CodeOf(err))

	// The linked set is unchanged by the failed attempt.
	assert.Len(t, c.ListSellerReferrals(cust.ID), models.MaxSellerReferrals)
}

func TestFollowSellerValidation(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")
	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+1 555 010 2020")

	_, err := c.AddSellerReferral(ctx, cust.ID, seller.ID, "WRONG")
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))

	sr, err := c.AddSellerReferral(ctx, cust.ID, seller.ID, seller.ReferralCode)
	require.NoError(t, err)

	last := c.snap.Notifications[len(c.snap.Notifications)-1]
	assert.Equal(t, models.NotificationSellerReferral, last.Type)
	require.NotNil(t, last.RecipientID)
	assert.Equal(t, seller.ID, *last.RecipientID)

	_, err = c.AddSellerReferral(ctx, cust.ID, seller.ID, seller.ReferralCode)
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.CodeOf(err))

	// Un-following frees the slot.
	require.NoError(t, c.RemoveSellerReferral(ctx, cust.ID, sr.ID))
	assert.Empty(t, c.ListSellerReferrals(cust.ID))

	_, err = c.AddSellerReferral(ctx, cust.ID, seller.ID, seller.ReferralCode)
	require.NoError(t, err)
}

func TestRemoveSellerReferralOwnership(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")
	mallory := signupUser(t, c, models.RoleCustomer, "m@x.test", "mallory", "")
	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+1 555 010 2020")

	sr, err := c.AddSellerReferral(ctx, cust.ID, seller.ID, seller.ReferralCode)
	require.NoError(t, err)

	err = c.RemoveSellerReferral(ctx, mallory.ID, sr.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))
}
