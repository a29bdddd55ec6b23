package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aurumbay/aurumbay/internal/helpers"
	"github.com/aurumbay/aurumbay/internal/models"
)

// Signup registers a new user. The reserved admin username can be claimed
// exactly once; sellers get a referral code derived from their phone number
// and are rejected when that code collides with another seller's.
func (c *Core) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, models.NewError(models.CodeInvalidInput, "invalid signup data: %v", err)
	}
	if !helpers.IsPasswordStrong(req.Password) {
		return nil, models.NewError(models.CodeInvalidInput, "password must be at least 8 characters with upper, lower and digit")
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) {
		return nil, models.NewError(models.CodeInvalidInput, "unknown role %q", role)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Username == models.ReservedAdminUsername {
		if c.userByUsername(req.Username) != nil {
			return nil, models.NewError(models.CodeForbidden, "the %q username is reserved", models.ReservedAdminUsername)
		}
		// First claim of the reserved username is the administrator.
		role = models.RoleAdmin
	} else if role == models.RoleAdmin {
		return nil, models.NewError(models.CodeForbidden, "admin accounts use the reserved username")
	}

	if c.userByEmail(req.Email) != nil {
		return nil, models.NewError(models.CodeDuplicate, "email %s is already registered", req.Email)
	}
	if c.userByUsername(req.Username) != nil {
		return nil, models.NewError(models.CodeDuplicate, "username %s is already taken", req.Username)
	}

	var referralCode string
	if role == models.RoleSeller {
		referralCode = helpers.NormalizePhone(req.PhoneNumber)
		if referralCode == "" {
			return nil, models.NewError(models.CodeInvalidInput, "sellers must provide a phone number")
		}
		if c.sellerCodeTaken(referralCode) {
			return nil, models.NewError(models.CodeDuplicate, "this phone number is already linked to another seller, please use a different phone number")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := c.now()
	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Location:     req.Location,
		BrandName:    req.BrandName,
		BrandTagline: req.BrandTagline,
		ReferralCode: referralCode,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	c.snap.Users = append(c.snap.Users, user)

	// The administrator's own signup is silent; everyone else announces.
	switch role {
	case models.RoleSeller:
		c.notify(models.NotificationSellerSignup, "New seller joined",
			fmt.Sprintf("%s is now selling on the marketplace", displayName(user)), nil,
			map[string]string{"user_id": user.ID.String()})
	case models.RoleCustomer, models.RoleBuyer:
		c.notify(models.NotificationCustomerSignup, "New customer joined",
			fmt.Sprintf("%s joined the marketplace", displayName(user)), nil,
			map[string]string{"user_id": user.ID.String()})
	}

	c.persist(ctx)

	c.logger.Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user registered")
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Login checks credentials and returns the sanitized user. Mismatches never
// reveal which field was wrong.
func (c *Core) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, models.NewError(models.CodeInvalidInput, "invalid login data: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	user := c.userByEmail(req.Email)
	if user == nil {
		return nil, models.NewError(models.CodeInvalidCredential, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.logger.Warn().Str("email", req.Email).Msg("failed login attempt")
		return nil, models.NewError(models.CodeInvalidCredential, "invalid email or password")
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// UpdateUser merges the patch into the target user. A customer upgrading to
// seller is minted a referral code (if they have none) and announced.
func (c *Core) UpdateUser(ctx context.Context, actingUserID, targetID uuid.UUID, patch models.UserPatch) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor := c.userByID(actingUserID)
	if actor == nil {
		return nil, models.NewError(models.CodeNotFound, "acting user not found")
	}
	user := c.userByID(targetID)
	if user == nil {
		return nil, models.NewError(models.CodeNotFound, "user not found")
	}
	if actor.ID != user.ID && actor.Role != models.RoleAdmin {
		return nil, models.NewError(models.CodeForbidden, "cannot modify another user's profile")
	}

	// Stage every change on a copy; a rejected patch must leave the stored
	// record untouched.
	staged := *user

	if patch.Email != nil && *patch.Email != user.Email {
		if err := models.Validate.Var(*patch.Email, "required,email"); err != nil {
			return nil, models.NewError(models.CodeInvalidInput, "invalid email format")
		}
		if c.userByEmail(*patch.Email) != nil {
			return nil, models.NewError(models.CodeDuplicate, "email %s is already registered", *patch.Email)
		}
		staged.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != user.Username {
		if *patch.Username == models.ReservedAdminUsername {
			return nil, models.NewError(models.CodeForbidden, "the %q username is reserved", models.ReservedAdminUsername)
		}
		if c.userByUsername(*patch.Username) != nil {
			return nil, models.NewError(models.CodeDuplicate, "username %s is already taken", *patch.Username)
		}
		staged.Username = *patch.Username
	}
	if patch.FullName != nil {
		staged.FullName = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		staged.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Location != nil {
		staged.Location = *patch.Location
	}
	if patch.BrandName != nil {
		staged.BrandName = *patch.BrandName
	}
	if patch.BrandTagline != nil {
		staged.BrandTagline = *patch.BrandTagline
	}
	if patch.IsActive != nil {
		staged.IsActive = *patch.IsActive
	}

	from := user.Role
	upgraded := false
	if patch.Role != nil && *patch.Role != user.Role {
		if !models.ValidRole(*patch.Role) {
			return nil, models.NewError(models.CodeInvalidInput, "unknown role %q", *patch.Role)
		}
		if *patch.Role == models.RoleAdmin {
			return nil, models.NewError(models.CodeForbidden, "cannot promote to admin")
		}
		staged.Role = *patch.Role

		if from == models.RoleCustomer && *patch.Role == models.RoleSeller {
			upgraded = true
			// A referral code, once set, is stable; never regenerate.
			if staged.ReferralCode == "" {
				code := helpers.UpgradeReferralCode(staged.BrandName, staged.Username, staged.ID)
				if c.sellerCodeTaken(code) {
					minted, err := c.mintUniqueCode(helpers.SellerCodeLength, c.sellerCodeTaken)
					if err != nil {
						return nil, err
					}
					code = minted
				}
				staged.ReferralCode = code
			}
		}
	}

	staged.UpdatedAt = c.now()
	*user = staged

	if upgraded {
		c.notify(models.NotificationRoleChange, "Seller upgrade",
			fmt.Sprintf("%s upgraded from customer to seller", displayName(*user)), nil,
			map[string]string{"user_id": user.ID.String(), "from": string(from), "to": string(user.Role)})
	}

	c.persist(ctx)

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// DeleteUser removes a user. Admins are never deleted and a user cannot
// delete themselves while acting as the session user.
func (c *Core) DeleteUser(ctx context.Context, actingUserID, targetID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.userByID(targetID)
	if target == nil {
		return models.NewError(models.CodeNotFound, "user not found")
	}
	if target.Role == models.RoleAdmin {
		return models.NewError(models.CodeForbidden, "admin accounts cannot be deleted")
	}
	if target.ID == actingUserID {
		return models.NewError(models.CodeForbidden, "cannot delete your own account while logged in")
	}

	name := displayName(*target)
	for i := range c.snap.Users {
		if c.snap.Users[i].ID == targetID {
			c.snap.Users = append(c.snap.Users[:i], c.snap.Users[i+1:]...)
			break
		}
	}
	c.removeUserRecords(targetID)

	c.notify(models.NotificationUserDeletion, "Account removed",
		fmt.Sprintf("%s's account was removed", name), nil,
		map[string]string{"user_id": targetID.String()})

	c.persist(ctx)
	c.logger.Info().Str("user_id", targetID.String()).Msg("user deleted")
	return nil
}

// removeUserRecords cascades a user deletion: their inventory, buy requests
// (with the matching status-ledger entries), follows and contacts go with
// them. The notification log is an event history and is left intact. Called
// with the lock held.
func (c *Core) removeUserRecords(userID uuid.UUID) {
	items := c.snap.Items[:0]
	for _, it := range c.snap.Items {
		if it.SellerID != userID {
			items = append(items, it)
		}
	}
	c.snap.Items = items

	removed := map[uuid.UUID]bool{}
	requests := c.snap.BuyRequests[:0]
	for _, r := range c.snap.BuyRequests {
		if r.CustomerID == userID || r.SellerID == userID {
			removed[r.ID] = true
			continue
		}
		requests = append(requests, r)
	}
	c.snap.BuyRequests = requests

	log := c.snap.RequestStatusLog[:0]
	for _, e := range c.snap.RequestStatusLog {
		if !removed[e.RequestID] {
			log = append(log, e)
		}
	}
	c.snap.RequestStatusLog = log

	referrals := c.snap.SellerReferrals[:0]
	for _, sr := range c.snap.SellerReferrals {
		if sr.CustomerID != userID && sr.SellerID != userID {
			referrals = append(referrals, sr)
		}
	}
	c.snap.SellerReferrals = referrals

	contacts := c.snap.Contacts[:0]
	for _, cr := range c.snap.Contacts {
		if cr.CustomerID != userID && cr.SellerID != userID {
			contacts = append(contacts, cr)
		}
	}
	c.snap.Contacts = contacts
}

func (c *Core) GetUser(id uuid.UUID) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user := c.userByID(id)
	if user == nil {
		return nil, models.NewError(models.CodeNotFound, "user not found")
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ListUsers is admin-only.
func (c *Core) ListUsers(actingUserID uuid.UUID) ([]models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor := c.userByID(actingUserID)
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.NewError(models.CodeForbidden, "only admins can list users")
	}

	users := make([]models.User, 0, len(c.snap.Users))
	for _, u := range c.snap.Users {
		users = append(users, u.Sanitized())
	}
	return users, nil
}

func displayName(u models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
