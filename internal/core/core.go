// Package core is the transactional state container behind the marketplace:
// users, inventory, buy requests, referral codes, seller referrals, contacts
// and notifications live in one snapshot guarded by a single mutex. Every
// public operation validates first, mutates the in-memory snapshot as one
// step, then mirrors the snapshot to the configured store.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aurumbay/aurumbay/internal/models"
	"github.com/aurumbay/aurumbay/internal/store"
)

type Core struct {
	mu     sync.Mutex
	snap   *store.Snapshot
	store  store.Store
	logger zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// New rehydrates the snapshot from st and returns a ready core.
func New(ctx context.Context, st store.Store, logger zerolog.Logger) (*Core, error) {
	snap, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state snapshot: %w", err)
	}

	return &Core{
		snap:   snap,
		store:  st,
		logger: logger.With().Str("component", "core").Logger(),
		now:    time.Now,
	}, nil
}

// persist mirrors the already-mutated snapshot. The in-memory state is the
// source of truth; a failed write is logged and retried on the next mutation,
// never rolled back.
func (c *Core) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.snap); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist state snapshot")
	}
}

func (c *Core) userByID(id uuid.UUID) *models.User {
	for i := range c.snap.Users {
		if c.snap.Users[i].ID == id {
			return &c.snap.Users[i]
		}
	}
	return nil
}

func (c *Core) userByEmail(email string) *models.User {
	for i := range c.snap.Users {
		if c.snap.Users[i].Email == email {
			return &c.snap.Users[i]
		}
	}
	return nil
}

func (c *Core) userByUsername(username string) *models.User {
	for i := range c.snap.Users {
		if c.snap.Users[i].Username == username {
			return &c.snap.Users[i]
		}
	}
	return nil
}

func (c *Core) itemByID(id uuid.UUID) *models.InventoryItem {
	for i := range c.snap.Items {
		if c.snap.Items[i].ID == id {
			return &c.snap.Items[i]
		}
	}
	return nil
}

func (c *Core) requestByID(id uuid.UUID) *models.BuyRequest {
	for i := range c.snap.BuyRequests {
		if c.snap.BuyRequests[i].ID == id {
			return &c.snap.BuyRequests[i]
		}
	}
	return nil
}

func (c *Core) sellerCodeTaken(code string) bool {
	for i := range c.snap.Users {
		if c.snap.Users[i].ReferralCode == code {
			return true
		}
	}
	return false
}

// notify appends an event to the notification log. Called with the lock held,
// inside the same state transition as the mutation it describes.
func (c *Core) notify(typ models.NotificationType, title, message string, recipientID *uuid.UUID, data map[string]string) {
	n := models.Notification{
		ID:          uuid.New(),
		Type:        typ,
		Title:       title,
		Message:     message,
		RecipientID: recipientID,
		Data:        data,
		Read:        false,
		CreatedAt:   c.now(),
	}
	c.snap.Notifications = append(c.snap.Notifications, n)
}
