package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactRecord is one customer-to-seller contact event. The customer fields
// are captured at contact time so seller customer lists survive later profile
// edits.
type ContactRecord struct {
	ID            uuid.UUID `bson:"id" json:"id"`
	SellerID      uuid.UUID `bson:"seller_id" json:"seller_id"`
	CustomerID    uuid.UUID `bson:"customer_id" json:"customer_id"`
	CustomerName  string    `bson:"customer_name" json:"customer_name"`
	CustomerEmail string    `bson:"customer_email" json:"customer_email"`
	CustomerPhone string    `bson:"customer_phone" json:"customer_phone"`
	ContactedAt   time.Time `bson:"contacted_at" json:"contacted_at"`
}
