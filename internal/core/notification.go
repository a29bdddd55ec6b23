package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/models"
)

// AddNotification appends an externally produced event to the log. Most
// notifications are emitted inside other operations; this is the escape hatch
// for collaborators that feed the same bus.
func (c *Core) AddNotification(ctx context.Context, typ models.NotificationType, title, message string, recipientID *uuid.UUID, data map[string]string) (*models.Notification, error) {
	if title == "" {
		return nil, models.NewError(models.CodeInvalidInput, "notification title is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.notify(typ, title, message, recipientID, data)
	c.persist(ctx)

	n := c.snap.Notifications[len(c.snap.Notifications)-1]
	return &n, nil
}

// ListForUser returns global plus targeted notifications for the viewer, most
// recent first.
func (c *Core) ListForUser(viewerID uuid.UUID) []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.Notification
	for i := len(c.snap.Notifications) - 1; i >= 0; i-- {
		if c.snap.Notifications[i].VisibleTo(viewerID) {
			out = append(out, c.snap.Notifications[i])
		}
	}
	return out
}

// UnreadCount recomputes the viewer's unread total from the full log. The
// count is never cached, so it always matches the visible unread set.
func (c *Core) UnreadCount(viewerID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unreadLocked(viewerID)
}

func (c *Core) unreadLocked(viewerID uuid.UUID) int {
	count := 0
	for i := range c.snap.Notifications {
		n := &c.snap.Notifications[i]
		if !n.Read && n.VisibleTo(viewerID) {
			count++
		}
	}
	return count
}

// MarkAsRead flips the read flag on one notification visible to the viewer.
// Read-state is shared: a global notification marked read is read for every
// viewer.
func (c *Core) MarkAsRead(ctx context.Context, viewerID, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.snap.Notifications {
		n := &c.snap.Notifications[i]
		if n.ID == id {
			if !n.VisibleTo(viewerID) {
				return models.NewError(models.CodeNotFound, "notification not found")
			}
			n.Read = true
			c.persist(ctx)
			return nil
		}
	}
	return models.NewError(models.CodeNotFound, "notification not found")
}

// MarkAllAsRead flips every notification currently visible to the viewer.
func (c *Core) MarkAllAsRead(ctx context.Context, viewerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for i := range c.snap.Notifications {
		n := &c.snap.Notifications[i]
		if !n.Read && n.VisibleTo(viewerID) {
			n.Read = true
			changed = true
		}
	}
	if changed {
		c.persist(ctx)
	}
	return nil
}

func (c *Core) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.snap.Notifications {
		if c.snap.Notifications[i].ID == id {
			c.snap.Notifications = append(c.snap.Notifications[:i], c.snap.Notifications[i+1:]...)
			c.persist(ctx)
			return nil
		}
	}
	return models.NewError(models.CodeNotFound, "notification not found")
}

// ClearAll purges the whole notification log.
func (c *Core) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap.Notifications = nil
	c.persist(ctx)
	return nil
}
