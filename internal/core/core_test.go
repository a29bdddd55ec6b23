package core

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aurumbay/aurumbay/internal/models"
	"github.com/aurumbay/aurumbay/internal/store"
)

const testPassword = "Str0ngPassword"

func newTestCore(t *testing.T) (*Core, *store.MemStore) {
	t.Helper()
	ms := store.NewMemStore()
	c, err := New(context.Background(), ms, zerolog.Nop())
	require.NoError(t, err)
	return c, ms
}

func signupUser(t *testing.T, c *Core, role models.UserRole, email, username, phone string) *models.User {
	t.Helper()
	user, err := c.Signup(context.Background(), models.SignupRequest{
		Email:       email,
		Username:    username,
		Password:    testPassword,
		Role:        role,
		FullName:    username,
		PhoneNumber: phone,
	})
	require.NoError(t, err)
	return user
}

func signupAdmin(t *testing.T, c *Core) *models.User {
	t.Helper()
	admin, err := c.Signup(context.Background(), models.SignupRequest{
		Email:    "root@aurumbay.test",
		Username: models.ReservedAdminUsername,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
	return admin
}

func TestStateSurvivesRehydration(t *testing.T) {
	ctx := context.Background()
	c, ms := newTestCore(t)

	seller := signupUser(t, c, models.RoleSeller, "seller@x.test", "goldsmith", "+1 (555) 010-2233")
	item, err := c.AddItem(ctx, seller.ID, models.InventoryItem{
		ProductName: "1oz Gold Bar",
		Price:       2450,
		Quantity:    3,
		ProductType: models.ProductGold,
	})
	require.NoError(t, err)

	// A fresh core over the same store must see the identical state.
	c2, err := New(ctx, ms, zerolog.Nop())
	require.NoError(t, err)

	got, err := c2.GetItem(item.ID)
	require.NoError(t, err)
	require.Equal(t, item.ProductName, got.ProductName)
	require.Equal(t, seller.ID, got.SellerID)

	u, err := c2.GetUser(seller.ID)
	require.NoError(t, err)
	require.Equal(t, "goldsmith", u.Username)
	require.Empty(t, u.PasswordHash)
}

func TestPersistHappensPerMutation(t *testing.T) {
	c, ms := newTestCore(t)

	before := ms.Saves
	signupUser(t, c, models.RoleCustomer, "cust@x.test", "cust", "")
	require.Equal(t, before+1, ms.Saves)
}

// advance moves the core's clock forward.
func advance(c *Core, d time.Duration) {
	base := c.now()
	c.now = func() time.Time { return base.Add(d) }
}
