package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/models"
)

// ContactDealer records a customer reaching out to a seller. Repeat contacts
// with the same seller are a no-op returning the original record. The
// customer's details are snapshotted so the seller's customer list survives
// later profile edits.
func (c *Core) ContactDealer(ctx context.Context, customerID, dealerID uuid.UUID) (*models.ContactRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	customer := c.userByID(customerID)
	if customer == nil {
		return nil, models.NewError(models.CodeNotFound, "customer not found")
	}
	dealer := c.userByID(dealerID)
	if dealer == nil || dealer.Role != models.RoleSeller {
		return nil, models.NewError(models.CodeNotFound, "dealer not found")
	}

	for i := range c.snap.Contacts {
		rec := c.snap.Contacts[i]
		if rec.CustomerID == customerID && rec.SellerID == dealerID {
			return &rec, nil
		}
	}

	rec := models.ContactRecord{
		ID:            uuid.New(),
		SellerID:      dealerID,
		CustomerID:    customerID,
		CustomerName:  displayName(*customer),
		CustomerEmail: customer.Email,
		CustomerPhone: customer.PhoneNumber,
		ContactedAt:   c.now(),
	}
	c.snap.Contacts = append(c.snap.Contacts, rec)

	// One event for the seller, one global for administrative visibility.
	c.notify(models.NotificationContact, "New customer enquiry",
		fmt.Sprintf("%s wants to get in touch", rec.CustomerName),
		&dealerID, map[string]string{"customer_id": customerID.String()})
	c.notify(models.NotificationContact, "Customer contacted a seller",
		fmt.Sprintf("%s contacted %s", rec.CustomerName, displayName(*dealer)),
		nil, map[string]string{"customer_id": customerID.String(), "seller_id": dealerID.String()})

	c.persist(ctx)
	return &rec, nil
}

// CustomersForSeller derives the seller's customer list from the contact
// ledger, in contact order.
func (c *Core) CustomersForSeller(sellerID uuid.UUID) []models.ContactRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.ContactRecord
	for _, rec := range c.snap.Contacts {
		if rec.SellerID == sellerID {
			out = append(out, rec)
		}
	}
	return out
}
