package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// MaxBuyRequests is the lifetime request quota for non-premium customers.
const MaxBuyRequests = 15

type BuyRequest struct {
	ID         uuid.UUID     `bson:"id" json:"id"`
	ItemID     uuid.UUID     `bson:"item_id" json:"item_id"`
	CustomerID uuid.UUID     `bson:"customer_id" json:"customer_id"`
	SellerID   uuid.UUID     `bson:"seller_id" json:"seller_id"`
	Status     RequestStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}

// Terminal reports whether the request has been decided. Decided requests
// never transition again.
func (r BuyRequest) Terminal() bool {
	return r.Status != RequestPending
}

// RequestStatusEntry records one state transition in the auxiliary status
// ledger, so status queries stay answerable independently of the request row.
type RequestStatusEntry struct {
	RequestID uuid.UUID     `bson:"request_id" json:"request_id"`
	Status    RequestStatus `bson:"status" json:"status"`
	ChangedAt time.Time     `bson:"changed_at" json:"changed_at"`
}
