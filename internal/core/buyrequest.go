package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/models"
)

// CreateBuyRequest opens a pending request from customer to seller for one
// item. At most one pending request per (item, customer) pair; non-premium
// customers are charged against their lifetime quota at creation, not on the
// seller's response.
func (c *Core) CreateBuyRequest(ctx context.Context, itemID, customerID, sellerID uuid.UUID) (*models.BuyRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	customer := c.userByID(customerID)
	if customer == nil {
		return nil, models.NewError(models.CodeNotFound, "customer not found")
	}
	item := c.itemByID(itemID)
	if item == nil {
		return nil, models.NewError(models.CodeNotFound, "item not found")
	}
	if item.SellerID != sellerID {
		return nil, models.NewError(models.CodeInvalidInput, "item does not belong to the given seller")
	}
	seller := c.userByID(sellerID)
	if seller == nil {
		return nil, models.NewError(models.CodeNotFound, "seller not found")
	}

	for i := range c.snap.BuyRequests {
		r := &c.snap.BuyRequests[i]
		if r.ItemID == itemID && r.CustomerID == customerID && r.Status == models.RequestPending {
			return nil, models.NewError(models.CodeDuplicate, "a pending request for this item already exists")
		}
	}

	if !customer.IsPremium && customer.BuyRequestCount >= models.MaxBuyRequests {
		return nil, models.NewError(models.CodeLimitReached, "buy request limit of %d reached, upgrade to premium for unlimited requests", models.MaxBuyRequests)
	}

	now := c.now()
	req := models.BuyRequest{
		ID:         uuid.New(),
		ItemID:     itemID,
		CustomerID: customerID,
		SellerID:   sellerID,
		Status:     models.RequestPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	c.snap.BuyRequests = append(c.snap.BuyRequests, req)
	c.snap.RequestStatusLog = append(c.snap.RequestStatusLog, models.RequestStatusEntry{
		RequestID: req.ID,
		Status:    models.RequestPending,
		ChangedAt: now,
	})

	if !customer.IsPremium {
		customer.BuyRequestCount++
	}

	c.notify(models.NotificationBuyRequest, "New buy request",
		fmt.Sprintf("%s wants to buy %s", displayName(*customer), item.ProductName),
		&sellerID, map[string]string{
			"request_id":    req.ID.String(),
			"item_id":       itemID.String(),
			"customer_id":   customerID.String(),
			"customer_name": displayName(*customer),
			"product_name":  item.ProductName,
			"price":         fmt.Sprintf("%.2f", item.Price),
		})

	c.persist(ctx)
	c.logger.Info().Str("request_id", req.ID.String()).Str("customer_id", customerID.String()).Msg("buy request created")
	return &req, nil
}

// AcceptBuyRequest moves a pending request to its accepted terminal state.
func (c *Core) AcceptBuyRequest(ctx context.Context, actingSellerID, requestID uuid.UUID) (*models.BuyRequest, error) {
	return c.decideRequest(ctx, actingSellerID, requestID, models.RequestAccepted)
}

// DeclineBuyRequest moves a pending request to its declined terminal state.
func (c *Core) DeclineBuyRequest(ctx context.Context, actingSellerID, requestID uuid.UUID) (*models.BuyRequest, error) {
	return c.decideRequest(ctx, actingSellerID, requestID, models.RequestDeclined)
}

func (c *Core) decideRequest(ctx context.Context, actingSellerID, requestID uuid.UUID, status models.RequestStatus) (*models.BuyRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := c.requestByID(requestID)
	if req == nil {
		return nil, models.NewError(models.CodeNotFound, "buy request not found")
	}
	if req.SellerID != actingSellerID {
		return nil, models.NewError(models.CodeForbidden, "request belongs to another seller")
	}
	if req.Terminal() {
		return nil, models.NewError(models.CodeAlreadyProcessed, "request was already %s", req.Status)
	}

	now := c.now()
	req.Status = status
	req.UpdatedAt = now
	c.snap.RequestStatusLog = append(c.snap.RequestStatusLog, models.RequestStatusEntry{
		RequestID: requestID,
		Status:    status,
		ChangedAt: now,
	})

	item := c.itemByID(req.ItemID)
	productName := "the item"
	if item != nil {
		productName = item.ProductName
	}

	typ := models.NotificationBuyRequestAccepted
	verb := "accepted"
	if status == models.RequestDeclined {
		typ = models.NotificationBuyRequestDeclined
		verb = "declined"
	}
	customerID := req.CustomerID
	c.notify(typ, fmt.Sprintf("Buy request %s", verb),
		fmt.Sprintf("Your request for %s was %s", productName, verb),
		&customerID, map[string]string{
			"request_id": requestID.String(),
			"item_id":    req.ItemID.String(),
			"status":     string(status),
		})

	c.persist(ctx)
	c.logger.Info().Str("request_id", requestID.String()).Str("status", string(status)).Msg("buy request decided")
	decided := *req
	return &decided, nil
}

func (c *Core) GetBuyRequest(id uuid.UUID) (*models.BuyRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := c.requestByID(id)
	if req == nil {
		return nil, models.NewError(models.CodeNotFound, "buy request not found")
	}
	found := *req
	return &found, nil
}

func (c *Core) ListRequestsForSeller(sellerID uuid.UUID) []models.BuyRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.BuyRequest
	for _, r := range c.snap.BuyRequests {
		if r.SellerID == sellerID {
			out = append(out, r)
		}
	}
	return out
}

func (c *Core) ListRequestsForCustomer(customerID uuid.UUID) []models.BuyRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.BuyRequest
	for _, r := range c.snap.BuyRequests {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out
}

// RequestStatusHistory returns the transition ledger for one request, oldest
// first.
func (c *Core) RequestStatusHistory(requestID uuid.UUID) []models.RequestStatusEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.RequestStatusEntry
	for _, e := range c.snap.RequestStatusLog {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out
}
