package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumbay/aurumbay/internal/helpers"
	"github.com/aurumbay/aurumbay/internal/models"
)

func TestSignupRejectsDuplicateEmailAndUsername(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	signupUser(t, c, models.RoleCustomer, "alice@x.test", "alice", "")

	_, err := c.Signup(ctx, models.SignupRequest{
		Email: "alice@x.test", Username: "alice2", Password: testPassword,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.CodeOf(err))

	_, err = c.Signup(ctx, models.SignupRequest{
		Email: "alice2@x.test", Username: "alice", Password: testPassword,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.CodeOf(err))
}

func TestReservedAdminUsernameSingleton(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	signupAdmin(t, c)

	_, err := c.Signup(ctx, models.SignupRequest{
		Email: "other@x.test", Username: models.ReservedAdminUsername, Password: testPassword,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	admins := 0
	for _, u := range c.snap.Users {
		if u.Username == models.ReservedAdminUsername {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestAdminSignupIsSilent(t *testing.T) {
	c, _ := newTestCore(t)

	signupAdmin(t, c)
	assert.Empty(t, c.snap.Notifications)

	signupUser(t, c, models.RoleCustomer, "bob@x.test", "bob", "")
	require.Len(t, c.snap.Notifications, 1)
	assert.Equal(t, models.NotificationCustomerSignup, c.snap.Notifications[0].Type)
	assert.Nil(t, c.snap.Notifications[0].RecipientID)
}

func TestSellerSignupDerivesCodeFromPhone(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	seller := signupUser(t, c, models.RoleSeller, "s1@x.test", "seller1", "+91 98765-43210")
	assert.Equal(t, "9876543210", seller.ReferralCode)

	// Same normalized phone, different formatting: the derived code collides.
	_, err := c.Signup(ctx, models.SignupRequest{
		Email: "s2@x.test", Username: "seller2", Password: testPassword,
		Role: models.RoleSeller, PhoneNumber: "98765 43210",
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.CodeOf(err))
	assert.Contains(t, err.Error(), "different phone number")
}

func TestSellerSignupRequiresPhone(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	_, err := c.Signup(ctx, models.SignupRequest{
		Email: "s@x.test", Username: "seller", Password: testPassword, Role: models.RoleSeller,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	signupUser(t, c, models.RoleCustomer, "carol@x.test", "carol", "")

	user, err := c.Login(ctx, models.LoginRequest{Email: "carol@x.test", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = c.Login(ctx, models.LoginRequest{Email: "carol@x.test", Password: "WrongPass1"})
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidCredential, models.CodeOf(err))

	// Unknown email fails the same way, never revealing which field was wrong.
	_, err = c.Login(ctx, models.LoginRequest{Email: "nobody@x.test", Password: testPassword})
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidCredential, models.CodeOf(err))
}

func TestUpgradeToSellerMintsStableCode(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "dan@x.test", "dan", "")

	role := models.RoleSeller
	upgraded, err := c.UpdateUser(ctx, cust.ID, cust.ID, models.UserPatch{Role: &role})
	require.NoError(t, err)
	require.NotEmpty(t, upgraded.ReferralCode)

	var found *models.Notification
	for i := range c.snap.Notifications {
		if c.snap.Notifications[i].Type == models.NotificationRoleChange {
			found = &c.snap.Notifications[i]
		}
	}
	require.NotNil(t, found, "role change must be announced")
	assert.Nil(t, found.RecipientID)

	// Patching the role again never regenerates the code.
	customer := models.RoleCustomer
	_, err = c.UpdateUser(ctx, cust.ID, cust.ID, models.UserPatch{Role: &customer})
	require.NoError(t, err)
	again, err := c.UpdateUser(ctx, cust.ID, cust.ID, models.UserPatch{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, upgraded.ReferralCode, again.ReferralCode)
}

func TestUpdateUserRejectsTakenIdentity(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	signupUser(t, c, models.RoleCustomer, "eve@x.test", "eve", "")
	frank := signupUser(t, c, models.RoleCustomer, "frank@x.test", "frank", "")

	email := "eve@x.test"
	_, err := c.UpdateUser(ctx, frank.ID, frank.ID, models.UserPatch{Email: &email})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.CodeOf(err))

	reserved := models.ReservedAdminUsername
	_, err = c.UpdateUser(ctx, frank.ID, frank.ID, models.UserPatch{Username: &reserved})
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))
}

func TestUpdateUserRejectedPatchLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	signupUser(t, c, models.RoleCustomer, "eve@x.test", "eve", "")
	frank := signupUser(t, c, models.RoleCustomer, "frank@x.test", "frank", "")

	// The email is free but the username is taken: the whole patch must fail
	// without leaving the email change behind.
	email := "frank-new@x.test"
	username := "eve"
	_, err := c.UpdateUser(ctx, frank.ID, frank.ID, models.UserPatch{Email: &email, Username: &username})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicate, models.CodeOf(err))

	u, err := c.GetUser(frank.ID)
	require.NoError(t, err)
	assert.Equal(t, "frank@x.test", u.Email)
	assert.Equal(t, "frank", u.Username)
	assert.Nil(t, c.userByEmail("frank-new@x.test"))
}

func TestUpgradeCodeCollisionFallsBackToMinted(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "dan@x.test", "dan", "")
	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+1 555 010 2020")

	// Plant the code the upgrade would derive on another seller.
	derived := helpers.UpgradeReferralCode(cust.BrandName, cust.Username, cust.ID)
	c.userByID(seller.ID).ReferralCode = derived

	role := models.RoleSeller
	upgraded, err := c.UpdateUser(ctx, cust.ID, cust.ID, models.UserPatch{Role: &role})
	require.NoError(t, err)
	require.NotEmpty(t, upgraded.ReferralCode)
	assert.NotEqual(t, derived, upgraded.ReferralCode)
	assert.Len(t, upgraded.ReferralCode, helpers.SellerCodeLength)
}

func TestDeleteUserRules(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	admin := signupAdmin(t, c)
	bob := signupUser(t, c, models.RoleCustomer, "bob@x.test", "bob", "")

	// Admins are never deleted.
	err := c.DeleteUser(ctx, bob.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	// Self-deletion while acting as the session user is forbidden.
	err = c.DeleteUser(ctx, bob.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	require.NoError(t, c.DeleteUser(ctx, admin.ID, bob.ID))
	_, err = c.GetUser(bob.ID)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))

	last := c.snap.Notifications[len(c.snap.Notifications)-1]
	assert.Equal(t, models.NotificationUserDeletion, last.Type)
	assert.Nil(t, last.RecipientID)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	admin := signupAdmin(t, c)
	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+1 555 010 2020")
	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")

	item, err := c.AddItem(ctx, seller.ID, models.InventoryItem{
		ProductName: "Gold Coin", Price: 800, Quantity: 1, ProductType: models.ProductGold,
	})
	require.NoError(t, err)
	req, err := c.CreateBuyRequest(ctx, item.ID, cust.ID, seller.ID)
	require.NoError(t, err)
	_, err = c.AddSellerReferral(ctx, cust.ID, seller.ID, seller.ReferralCode)
	require.NoError(t, err)
	_, err = c.ContactDealer(ctx, cust.ID, seller.ID)
	require.NoError(t, err)

	require.NoError(t, c.DeleteUser(ctx, admin.ID, seller.ID))

	// Nothing the seller owned or was party to survives.
	assert.Empty(t, c.ListItemsForSeller(seller.ID))
	_, err = c.GetBuyRequest(req.ID)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	assert.Empty(t, c.RequestStatusHistory(req.ID))
	assert.Empty(t, c.ListSellerReferrals(cust.ID))
	assert.Empty(t, c.CustomersForSeller(seller.ID))
}
