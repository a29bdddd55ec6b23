package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumbay/aurumbay/internal/models"
)

func TestContactDealer(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+1 555 010 2020")
	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")
	c.ClearAll(ctx)

	rec, err := c.ContactDealer(ctx, cust.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, cust.Email, rec.CustomerEmail)

	// One targeted event for the seller, one global for admins.
	require.Len(t, c.snap.Notifications, 2)
	targeted := c.snap.Notifications[0]
	global := c.snap.Notifications[1]
	require.NotNil(t, targeted.RecipientID)
	assert.Equal(t, seller.ID, *targeted.RecipientID)
	assert.Nil(t, global.RecipientID)

	// Repeat contact is a no-op returning the original record.
	again, err := c.ContactDealer(ctx, cust.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, again.ID)
	assert.Len(t, c.snap.Contacts, 1)
	assert.Len(t, c.snap.Notifications, 2)
}

func TestContactDealerValidation(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	cust := signupUser(t, c, models.RoleCustomer, "c@x.test", "cust", "")
	other := signupUser(t, c, models.RoleCustomer, "o@x.test", "other", "")

	// Contacting a non-seller is a miss.
	_, err := c.ContactDealer(ctx, cust.ID, other.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestCustomersForSeller(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCore(t)

	seller := signupUser(t, c, models.RoleSeller, "s@x.test", "seller", "+1 555 010 2020")
	rival := signupUser(t, c, models.RoleSeller, "r@x.test", "rival", "+1 555 030 4040")
	a := signupUser(t, c, models.RoleCustomer, "a@x.test", "alice", "")
	b := signupUser(t, c, models.RoleCustomer, "b@x.test", "bobby", "")

	_, err := c.ContactDealer(ctx, a.ID, seller.ID)
	require.NoError(t, err)
	_, err = c.ContactDealer(ctx, b.ID, seller.ID)
	require.NoError(t, err)
	_, err = c.ContactDealer(ctx, a.ID, rival.ID)
	require.NoError(t, err)

	customers := c.CustomersForSeller(seller.ID)
	require.Len(t, customers, 2)
	assert.Equal(t, a.ID, customers[0].CustomerID)
	assert.Equal(t, b.ID, customers[1].CustomerID)

	assert.Len(t, c.CustomersForSeller(rival.ID), 1)
}
