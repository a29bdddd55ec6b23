package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationSellerSignup       NotificationType = "seller_signup"
	NotificationCustomerSignup     NotificationType = "customer_signup"
	NotificationRoleChange         NotificationType = "role_change"
	NotificationUserDeletion       NotificationType = "user_deletion"
	NotificationBuyRequest         NotificationType = "buy_request"
	NotificationBuyRequestAccepted NotificationType = "buy_request_accepted"
	NotificationBuyRequestDeclined NotificationType = "buy_request_declined"
	NotificationReferral           NotificationType = "referral"
	NotificationSellerReferral     NotificationType = "seller_referral"
	NotificationContact            NotificationType = "contact"
)

// Notification is an append-only event. RecipientID nil means the event is
// global and visible to every viewer; read-state is shared across viewers.
type Notification struct {
	ID          uuid.UUID         `bson:"id" json:"id"`
	Type        NotificationType  `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Message     string            `bson:"message" json:"message"`
	RecipientID *uuid.UUID        `bson:"recipient_id,omitempty" json:"recipient_id,omitempty"`
	Data        map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool              `bson:"read" json:"read"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
}

// VisibleTo reports whether viewerID may see n (global or targeted at them).
func (n Notification) VisibleTo(viewerID uuid.UUID) bool {
	return n.RecipientID == nil || *n.RecipientID == viewerID
}
