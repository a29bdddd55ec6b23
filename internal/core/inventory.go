package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/models"
)

// AddItem appends a new inventory item owned by the acting seller.
func (c *Core) AddItem(ctx context.Context, actingSellerID uuid.UUID, item models.InventoryItem) (*models.InventoryItem, error) {
	if err := models.Validate.Struct(item); err != nil {
		return nil, models.NewError(models.CodeInvalidInput, "invalid item data: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seller := c.userByID(actingSellerID)
	if seller == nil {
		return nil, models.NewError(models.CodeNotFound, "seller not found")
	}
	if seller.Role != models.RoleSeller {
		return nil, models.NewError(models.CodeForbidden, "only sellers can list inventory")
	}

	now := c.now()
	item.ID = uuid.New()
	item.SellerID = actingSellerID
	item.IsVisible = true
	item.CreatedAt = now
	item.UpdatedAt = now
	c.snap.Items = append(c.snap.Items, item)

	c.persist(ctx)
	c.logger.Info().Str("item_id", item.ID.String()).Str("seller_id", actingSellerID.String()).Msg("inventory item added")
	return &item, nil
}

// UpdateItem merges the patch into the item. Only the owning seller may
// update.
func (c *Core) UpdateItem(ctx context.Context, actingSellerID, itemID uuid.UUID, patch models.ItemPatch) (*models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.itemByID(itemID)
	if item == nil {
		return nil, models.NewError(models.CodeNotFound, "item not found")
	}
	if item.SellerID != actingSellerID {
		return nil, models.NewError(models.CodeForbidden, "item belongs to another seller")
	}

	// Stage every change on a copy; a rejected patch must leave the stored
	// record untouched.
	staged := *item

	if patch.ProductName != nil {
		staged.ProductName = *patch.ProductName
	}
	if patch.Description != nil {
		staged.Description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, models.NewError(models.CodeInvalidInput, "price cannot be negative")
		}
		staged.Price = *patch.Price
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, models.NewError(models.CodeInvalidInput, "quantity cannot be negative")
		}
		staged.Quantity = *patch.Quantity
	}
	if patch.ProductType != nil {
		staged.ProductType = *patch.ProductType
	}
	if patch.BuyPremium != nil {
		staged.BuyPremium = *patch.BuyPremium
	}
	if patch.SellPremium != nil {
		staged.SellPremium = *patch.SellPremium
	}

	staged.UpdatedAt = c.now()
	*item = staged
	c.persist(ctx)

	updated := staged
	return &updated, nil
}

func (c *Core) DeleteItem(ctx context.Context, actingSellerID, itemID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.itemByID(itemID)
	if item == nil {
		return models.NewError(models.CodeNotFound, "item not found")
	}
	if item.SellerID != actingSellerID {
		return models.NewError(models.CodeForbidden, "item belongs to another seller")
	}

	for i := range c.snap.Items {
		if c.snap.Items[i].ID == itemID {
			c.snap.Items = append(c.snap.Items[:i], c.snap.Items[i+1:]...)
			break
		}
	}
	c.persist(ctx)
	return nil
}

// ToggleVisibility flips whether customers can see the item.
func (c *Core) ToggleVisibility(ctx context.Context, actingSellerID, itemID uuid.UUID) (*models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.itemByID(itemID)
	if item == nil {
		return nil, models.NewError(models.CodeNotFound, "item not found")
	}
	if item.SellerID != actingSellerID {
		return nil, models.NewError(models.CodeForbidden, "item belongs to another seller")
	}

	item.IsVisible = !item.IsVisible
	item.UpdatedAt = c.now()
	c.persist(ctx)

	updated := *item
	return &updated, nil
}

// ListItemsForSeller returns every item the seller owns, hidden included.
func (c *Core) ListItemsForSeller(sellerID uuid.UUID) []models.InventoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.InventoryItem
	for _, it := range c.snap.Items {
		if it.SellerID == sellerID {
			out = append(out, it)
		}
	}
	return out
}

// ListAllItems returns the catalogue; with includeHidden false only items
// visible to customers are returned.
func (c *Core) ListAllItems(includeHidden bool) []models.InventoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.InventoryItem
	for _, it := range c.snap.Items {
		if includeHidden || it.IsVisible {
			out = append(out, it)
		}
	}
	return out
}

func (c *Core) GetItem(id uuid.UUID) (*models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.itemByID(id)
	if item == nil {
		return nil, models.NewError(models.CodeNotFound, "item not found")
	}
	found := *item
	return &found, nil
}
