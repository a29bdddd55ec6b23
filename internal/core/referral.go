package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/helpers"
	"github.com/aurumbay/aurumbay/internal/models"
)

// GenerateCode mints a single-use promotional code with a 30-day redemption
// window. Admin-only.
func (c *Core) GenerateCode(ctx context.Context, actingUserID uuid.UUID) (*models.ReferralCode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor := c.userByID(actingUserID)
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.NewError(models.CodeForbidden, "only admins can generate promotional codes")
	}

	code, err := c.mintUniqueCode(helpers.PromoCodeLength, c.promoCodeTaken)
	if err != nil {
		return nil, err
	}

	now := c.now()
	rc := models.ReferralCode{
		ID:        uuid.New(),
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(models.PromoCodeValidity),
	}
	c.snap.ReferralCodes = append(c.snap.ReferralCodes, rc)

	c.persist(ctx)
	return &rc, nil
}

// ApplyCode redeems a promotional code for the given user, flipping them to
// premium. Marking the code used and upgrading the user happen in the same
// transition.
func (c *Core) ApplyCode(ctx context.Context, userID uuid.UUID, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user := c.userByID(userID)
	if user == nil {
		return models.NewError(models.CodeNotFound, "user not found")
	}

	var rc *models.ReferralCode
	for i := range c.snap.ReferralCodes {
		if c.snap.ReferralCodes[i].Code == code {
			rc = &c.snap.ReferralCodes[i]
			break
		}
	}
	if rc == nil {
		return models.NewError(models.CodeNotFound, "unknown referral code")
	}
	if rc.IsUsed {
		return models.NewError(models.CodeAlreadyUsed, "referral code was already redeemed")
	}
	now := c.now()
	if rc.Expired(now) {
		return models.NewError(models.CodeExpired, "referral code has expired")
	}

	rc.IsUsed = true
	rc.UsedBy = &user.ID
	rc.UsedAt = &now
	user.IsPremium = true
	user.UpdatedAt = now

	c.notify(models.NotificationReferral, "Premium upgrade",
		fmt.Sprintf("%s redeemed a referral code and is now premium", displayName(*user)), nil,
		map[string]string{"user_id": user.ID.String(), "code": code})

	c.persist(ctx)
	c.logger.Info().Str("user_id", userID.String()).Msg("referral code redeemed")
	return nil
}

// GenerateSellerReferralCode is idempotent: a seller's code, once set, is
// stable for life.
func (c *Core) GenerateSellerReferralCode(ctx context.Context, sellerID uuid.UUID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seller := c.userByID(sellerID)
	if seller == nil {
		return "", models.NewError(models.CodeNotFound, "seller not found")
	}
	if seller.Role != models.RoleSeller {
		return "", models.NewError(models.CodeForbidden, "only sellers have referral codes")
	}
	if seller.ReferralCode != "" {
		return seller.ReferralCode, nil
	}

	code, err := c.mintUniqueCode(helpers.SellerCodeLength, c.sellerCodeTaken)
	if err != nil {
		return "", err
	}
	seller.ReferralCode = code
	seller.UpdatedAt = c.now()

	c.persist(ctx)
	return code, nil
}

// AddSellerReferral links a customer to a seller they follow, bounded at
// MaxSellerReferrals per customer.
func (c *Core) AddSellerReferral(ctx context.Context, customerID, sellerID uuid.UUID, code string) (*models.SellerReferral, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	customer := c.userByID(customerID)
	if customer == nil {
		return nil, models.NewError(models.CodeNotFound, "customer not found")
	}
	seller := c.userByID(sellerID)
	if seller == nil || seller.Role != models.RoleSeller {
		return nil, models.NewError(models.CodeNotFound, "seller not found")
	}
	if seller.ReferralCode == "" || seller.ReferralCode != code {
		return nil, models.NewError(models.CodeInvalidInput, "referral code does not match this seller")
	}

	count := 0
	for _, sr := range c.snap.SellerReferrals {
		if sr.CustomerID == customerID {
			if sr.SellerID == sellerID {
				return nil, models.NewError(models.CodeDuplicate, "already following this seller")
			}
			count++
		}
	}
	if count >= models.MaxSellerReferrals {
		return nil, models.NewError(models.CodeLimitReached, "cannot follow more than %d sellers", models.MaxSellerReferrals)
	}

	sr := models.SellerReferral{
		ID:           uuid.New(),
		CustomerID:   customerID,
		SellerID:     sellerID,
		ReferralCode: code,
		AddedAt:      c.now(),
	}
	c.snap.SellerReferrals = append(c.snap.SellerReferrals, sr)

	c.notify(models.NotificationSellerReferral, "New follower",
		fmt.Sprintf("%s is now following your inventory", displayName(*customer)),
		&sellerID, map[string]string{"customer_id": customerID.String()})

	c.persist(ctx)
	return &sr, nil
}

// RemoveSellerReferral un-follows: the link is removed outright.
func (c *Core) RemoveSellerReferral(ctx context.Context, customerID, referralID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.snap.SellerReferrals {
		sr := c.snap.SellerReferrals[i]
		if sr.ID == referralID {
			if sr.CustomerID != customerID {
				return models.NewError(models.CodeForbidden, "referral belongs to another customer")
			}
			c.snap.SellerReferrals = append(c.snap.SellerReferrals[:i], c.snap.SellerReferrals[i+1:]...)
			c.persist(ctx)
			return nil
		}
	}
	return models.NewError(models.CodeNotFound, "seller referral not found")
}

func (c *Core) ListSellerReferrals(customerID uuid.UUID) []models.SellerReferral {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.SellerReferral
	for _, sr := range c.snap.SellerReferrals {
		if sr.CustomerID == customerID {
			out = append(out, sr)
		}
	}
	return out
}

// ListReferralCodes is admin-only.
func (c *Core) ListReferralCodes(actingUserID uuid.UUID) ([]models.ReferralCode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor := c.userByID(actingUserID)
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.NewError(models.CodeForbidden, "only admins can list promotional codes")
	}
	out := make([]models.ReferralCode, len(c.snap.ReferralCodes))
	copy(out, c.snap.ReferralCodes)
	return out, nil
}

func (c *Core) promoCodeTaken(code string) bool {
	for i := range c.snap.ReferralCodes {
		if c.snap.ReferralCodes[i].Code == code {
			return true
		}
	}
	return false
}

// mintUniqueCode draws random codes until one misses the taken set, giving up
// after a bounded number of attempts.
func (c *Core) mintUniqueCode(length int, taken func(string) bool) (string, error) {
	for attempt := 0; attempt < helpers.MaxCodeMintAttempts; attempt++ {
		code, err := helpers.RandomCode(length)
		if err != nil {
			return "", fmt.Errorf("failed to mint code: %w", err)
		}
		if !taken(code) {
			return code, nil
		}
	}
	return "", models.NewError(models.CodeInternal, "could not mint a unique code after %d attempts", helpers.MaxCodeMintAttempts)
}
